package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything hubctl reads from the environment.
type Config struct {
	API       APIConfig
	Server    ServerConfig
	Logger    LoggerConfig
	Export    ExportConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	MongoDB   MongoDBConfig
}

// APIConfig describes how the console reaches the inventory REST backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	TokenFile string
}

// ServerConfig holds options for the console gateway.
type ServerConfig struct {
	Port string
}

// LoggerConfig selects the zap encoder and an optional rotated log file.
type LoggerConfig struct {
	Mode  string
	Level string
	File  string
}

// ExportConfig controls where exported files land and who is recorded as the actor.
type ExportConfig struct {
	Dir   string
	Actor string
}

// ReportingConfig drives the scheduled inventory snapshot.
type ReportingConfig struct {
	Enabled      bool
	CronSchedule string
	Timezone     string
}

// SheetsConfig names a service account and the spreadsheet it may edit.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether a spreadsheet sink was configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// MongoDBConfig points at the optional snapshot database.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Enabled reports whether snapshot persistence was configured.
func (m MongoDBConfig) Enabled() bool {
	return m.URI != ""
}

// Load applies envFile (or ./.env when empty) on top of the process
// environment, then builds and validates a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("API_TIMEOUT: %w", err)
	}

	reportEnabled, err := strconv.ParseBool(getenvWithDefault("REPORT_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_ENABLED: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:   strings.TrimSuffix(getenvWithDefault("API_BASE_URL", "http://localhost:8000/api"), "/"),
			Timeout:   timeout,
			TokenFile: getenvWithDefault("TOKEN_FILE", defaultTokenFile()),
		},
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Logger: LoggerConfig{
			Mode:  getenvWithDefault("LOG_MODE", "development"),
			Level: getenvWithDefault("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Export: ExportConfig{
			Dir:   getenvWithDefault("EXPORT_DIR", "."),
			Actor: getenvWithDefault("EXPORT_ACTOR", os.Getenv("USER")),
		},
		Reporting: ReportingConfig{
			Enabled:      reportEnabled,
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "inventory_hub"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects missing or malformed settings.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.API.BaseURL == "" {
		return errors.New("API_BASE_URL must be provided")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}
	if c.API.TokenFile == "" {
		return errors.New("TOKEN_FILE must not be empty")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Logger.Mode {
	case "production", "development":
	default:
		return fmt.Errorf("LOG_MODE must be production or development, got %q", c.Logger.Mode)
	}

	if c.Reporting.Enabled {
		if c.Reporting.CronSchedule == "" {
			return errors.New("REPORT_CRON_SCHEDULE must be provided")
		}
		if c.Reporting.Timezone == "" {
			return errors.New("TIMEZONE must be provided")
		}
	}

	// Sheets is optional, but half a configuration is a mistake.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.MongoDB.Enabled() && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must not be empty")
	}

	return nil
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hubctl_token.json"
	}
	return filepath.Join(dir, "hubctl", "token.json")
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
