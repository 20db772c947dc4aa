package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/config"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/logger"
)

// app is built once per invocation by the root command's pre-run hook.
type app struct {
	envFile   string
	baseURL   string
	assumeYes bool
	color     bool

	cfg      *config.Config
	logger   *zap.Logger
	tokens   *inventory.FileTokenStore
	client   *inventory.Client
	notifier console.Notifier
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "hubctl",
		Short:         "Operate the Green Haven inventory hub from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "path to a .env file")
	flags.StringVar(&a.baseURL, "base-url", "", "inventory API base URL (overrides API_BASE_URL)")
	flags.BoolVarP(&a.assumeYes, "yes", "y", false, "answer yes to confirmations")
	flags.BoolVar(&a.color, "color", true, "colour status badges")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newServeCmd(a),
		newReportCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newCRMCmd(a),
		newSettingsCmd(a),
		newShopifyCmd(a),
		newCartCmd(a),
	)
	root.AddCommand(entityCommands(a)...)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.baseURL != "" {
		cfg.API.BaseURL = strings.TrimSuffix(a.baseURL, "/")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log, err := logger.New(logger.Options{Mode: cfg.Logger.Mode, Level: cfg.Logger.Level, File: cfg.Logger.File})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	a.cfg = cfg
	a.logger = log
	a.tokens = inventory.NewFileTokenStore(cfg.API.TokenFile)
	a.notifier = console.NewWriterNotifier(cmd.ErrOrStderr(), log.Named("notify"))
	a.client = inventory.NewClient(cfg.API,
		inventory.WithTokenStore(a.tokens),
		inventory.WithNavigator(newTerminalNavigator(commandPath(cmd), cmd.ErrOrStderr())),
		inventory.WithLogger(log.Named("client.inventory")),
	)
	return nil
}

func (a *app) deps(cmd *cobra.Command) console.Deps {
	var confirmer console.Confirmer = console.AlwaysConfirm{}
	if !a.assumeYes {
		confirmer = console.NewPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	return console.Deps{
		Client:    a.client,
		Notifier:  a.notifier,
		Confirmer: confirmer,
		Logger:    a.logger,
	}
}

// commandPath maps "hubctl crm stats" to "/crm/stats".
func commandPath(cmd *cobra.Command) string {
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) <= 1 {
		return "/"
	}
	return "/" + strings.Join(parts[1:], "/")
}

// terminalNavigator tells the operator to sign in again instead of moving a page.
type terminalNavigator struct {
	*inventory.PageNavigator
	out io.Writer
}

func newTerminalNavigator(location string, out io.Writer) *terminalNavigator {
	return &terminalNavigator{PageNavigator: inventory.NewPageNavigator(location), out: out}
}

func (n *terminalNavigator) Navigate(path string) {
	n.PageNavigator.Navigate(path)
	if path == inventory.LoginPath {
		fmt.Fprintln(n.out, "Session expired. Run `hubctl login` to sign in again.")
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errorMessage prefers the backend's message over a generic fallback.
func errorMessage(err error, fallback string) string {
	if msg, ok := inventory.ServerMessage(err); ok {
		return msg
	}
	return fallback
}
