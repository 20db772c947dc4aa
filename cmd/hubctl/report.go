package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/repository/mongodb"
	reportingsvc "github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/service/reporting"
)

// reporting builds the reporting service with whichever sinks are configured.
// The returned func closes them.
func (a *app) reporting(ctx context.Context) (*reportingsvc.Service, *mongodb.MongoDBRepository, func(), error) {
	var (
		snapshots reportingsvc.SnapshotStore
		sheet     reportingsvc.RowWriter
		mongoRepo *mongodb.MongoDBRepository
	)

	if a.cfg.Sheets.Enabled() {
		sheetsRepo, err := a.sheetRepository(ctx)
		if err != nil {
			return nil, nil, nil, err
		}
		sheet = sheetsRepo
	}

	if a.cfg.MongoDB.Enabled() {
		repo, err := mongodb.NewMongoDBRepository(ctx, a.cfg.MongoDB.URI, a.cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, nil, err
		}
		mongoRepo, snapshots = repo, repo
	}

	closeFn := func() {
		if mongoRepo == nil {
			return
		}
		if err := mongoRepo.Close(context.Background()); err != nil {
			a.logger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}

	svc := reportingsvc.NewService(reportingsvc.ClientSource{Client: a.client}, snapshots, sheet, a.logger.Named("svc.reporting"))
	return svc, mongoRepo, closeFn, nil
}

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "Dashboard figures and inventory snapshots"}

	var days int
	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Show stock metrics and recent movements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := reportingsvc.NewService(reportingsvc.ClientSource{Client: a.client}, nil, nil, a.logger.Named("svc.reporting"))
			dash, err := svc.Dashboard(cmd.Context(), days)
			if err != nil {
				a.notifier.Error("Error", errorMessage(err, "Failed to load dashboard"))
				return err
			}

			out := cmd.OutOrStdout()
			m := dash.Metrics
			fmt.Fprintf(out, "products %d  units %d  low %d  out %d\n", m.TotalProducts, m.TotalUnits, m.LowStockCount, m.OutOfStockCount)
			fmt.Fprintf(out, "cost %.2f  value %.2f\n\n", m.InventoryCost, m.InventoryValue)
			for _, slice := range dash.StockStatus {
				fmt.Fprintf(out, "%-14s %d\n", slice.Label, slice.Value)
			}
			fmt.Fprintln(out)
			for _, slice := range dash.Categories {
				fmt.Fprintf(out, "%-14s %d\n", slice.Label, slice.Value)
			}
			fmt.Fprintln(out)
			for _, point := range dash.Movements {
				fmt.Fprintf(out, "%s  +%d  -%d\n", point.Date, point.In, point.Out)
			}
			return nil
		},
	}
	dashboard.Flags().IntVar(&days, "days", 7, "days of movement history")

	snapshot := &cobra.Command{
		Use:   "snapshot",
		Short: "Take an inventory snapshot and store it in the configured sinks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, closeFn, err := a.reporting(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reportingsvc.Summary(snap))
			return nil
		},
	}

	var limit int64
	history := &cobra.Command{
		Use:   "history",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.cfg.MongoDB.Enabled() {
				return errors.New("MONGODB_URI is not set")
			}
			_, repo, closeFn, err := a.reporting(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			snaps, err := repo.RecentSnapshots(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, snap := range snaps {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", snap.TakenAt.Local().Format(time.DateTime), reportingsvc.Summary(snap))
			}
			return nil
		},
	}
	history.Flags().Int64Var(&limit, "limit", 10, "number of snapshots")

	cmd.AddCommand(dashboard, snapshot, history)
	return cmd
}
