package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://inventory.example.com/api/")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("LOG_MODE", "")
	t.Setenv("REPORT_ENABLED", "")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")
	t.Setenv("GOOGLE_SHEET_DATABASE_ID", "")
	t.Setenv("MONGODB_URI", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.API.BaseURL != "https://inventory.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("expected 15s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Logger.Mode != "development" {
		t.Errorf("expected development log mode, got %q", cfg.Logger.Mode)
	}
	if cfg.Sheets.Enabled() || cfg.MongoDB.Enabled() {
		t.Errorf("expected optional sinks disabled")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	os.Unsetenv("API_BASE_URL")
	t.Setenv("APP_PORT", "")
	os.Unsetenv("APP_PORT")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "API_BASE_URL=http://backend.local/api\nAPP_PORT=9090\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("API_BASE_URL")
		os.Unsetenv("APP_PORT")
	})

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://backend.local/api" {
		t.Errorf("expected base URL from env file, got %q", cfg.API.BaseURL)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "http://localhost/api", Timeout: time.Second, TokenFile: "token.json"},
			Server:  ServerConfig{Port: "8080"},
			Logger:  LoggerConfig{Mode: "production"},
			MongoDB: MongoDBConfig{DBName: "inventory_hub"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing base url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "non http base url", mutate: func(c *Config) { c.API.BaseURL = "ftp://x" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.API.Timeout = 0 }, wantErr: true},
		{name: "bad log mode", mutate: func(c *Config) { c.Logger.Mode = "verbose" }, wantErr: true},
		{name: "reporting without schedule", mutate: func(c *Config) {
			c.Reporting = ReportingConfig{Enabled: true, Timezone: "UTC"}
		}, wantErr: true},
		{name: "half sheets config", mutate: func(c *Config) { c.Sheets.SpreadsheetID = "abc" }, wantErr: true},
		{name: "full sheets config", mutate: func(c *Config) {
			c.Sheets = SheetsConfig{CredentialsPath: "creds.json", SpreadsheetID: "abc"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
