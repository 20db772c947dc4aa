package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/scheduler"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/server/handlers"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/server/router"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the console gateway and the snapshot scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			baseLogger := a.logger
			zap.ReplaceGlobals(baseLogger)

			if a.cfg.Reporting.Enabled {
				reports, _, closeFn, err := a.reporting(ctx)
				if err != nil {
					return err
				}
				defer closeFn()

				sched, err := scheduler.NewScheduler(a.cfg.Reporting, reports, baseLogger.Named("scheduler"))
				if err != nil {
					return err
				}
				if err := sched.Start(); err != nil {
					return err
				}
				defer sched.Stop()
				baseLogger.Info("next inventory snapshot", zap.Time("at", sched.Next()))
			}

			consoleHandler := handlers.NewConsoleHandler(a.client, baseLogger.Named("handlers.console"))
			engine := router.New(consoleHandler, baseLogger.Named("router"))

			srv := &http.Server{
				Addr:         ":" + a.cfg.Server.Port,
				Handler:      engine,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 30 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			serveErr := make(chan error, 1)
			go func() {
				baseLogger.Info("server starting", zap.String("port", a.cfg.Server.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			select {
			case err := <-serveErr:
				if err != nil {
					baseLogger.Error("http server crashed", zap.Error(err))
					return err
				}
			case <-ctx.Done():
				baseLogger.Info("shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				baseLogger.Error("graceful shutdown failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
