package scheduler

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/config"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

type countingSnapshotter struct{ calls int }

func (c *countingSnapshotter) Snapshot(context.Context) (models.InventorySnapshot, error) {
	c.calls++
	return models.InventorySnapshot{TotalProducts: 3, TakenAt: time.Now()}, nil
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "Mars/Olympus"}, &countingSnapshotter{}, nil)
	if err == nil {
		t.Fatal("expected timezone error")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every evening", Timezone: "UTC"}, &countingSnapshotter{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Start(); err == nil {
		t.Fatal("expected schedule parse error")
	}
}

func TestStartSchedulesSnapshot(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"}, &countingSnapshotter{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(s.Stop)

	next := s.Next()
	if next.IsZero() || next.Hour() != 20 || next.Minute() != 0 {
		t.Errorf("expected next run at 20:00, got %v", next)
	}
}

func TestTakeSnapshotLogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	reports := &countingSnapshotter{}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "@daily", Timezone: "UTC"}, reports, zap.New(core))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.takeSnapshot()

	if reports.calls != 1 {
		t.Errorf("expected one snapshot, got %d", reports.calls)
	}
	if logs.FilterMessage("inventory snapshot stored").Len() != 1 {
		t.Errorf("expected stored log entry, got %v", logs.All())
	}
}
