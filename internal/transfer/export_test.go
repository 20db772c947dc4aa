package transfer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

type auditFunc func(ctx context.Context, event models.ExportEvent) error

func (f auditFunc) RecordExport(ctx context.Context, event models.ExportEvent) error {
	return f(ctx, event)
}

func sampleRows() []Row {
	return []Row{
		{"id": float64(1), "name": "Basil", "sku": "B-1", "quantity": float64(4)},
		{"id": float64(2), "name": "Mint", "quantity": float64(0)},
	}
}

func TestProjectAllowList(t *testing.T) {
	rows := Project(sampleRows(), []string{"name", "sku"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		for key := range row {
			if key != "name" && key != "sku" {
				t.Errorf("unexpected key %q in projected row", key)
			}
		}
	}
	if _, ok := rows[1]["sku"]; ok {
		t.Errorf("expected missing source field to stay absent")
	}
}

func TestToRowsUsesWireNames(t *testing.T) {
	rows, err := ToRows([]models.Product{{ID: 3, Name: "Sage", CostPrice: 1.5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0]["costPrice"] != 1.5 {
		t.Errorf("expected costPrice key, got %v", rows[0])
	}
}

func TestEncodeCSVFollowsFieldOrder(t *testing.T) {
	data, err := Encode(FormatCSV, Project(sampleRows(), []string{"sku", "name"}), []string{"sku", "name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "sku,name\nB-1,Basil\n,Mint\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, data)
	}
}

func TestEncodeXLSXReadsBack(t *testing.T) {
	fields := []string{"name", "quantity"}
	data, err := Encode(FormatXLSX, Project(sampleRows(), fields), fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := FormatXLSX.decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode spreadsheet: %v", err)
	}
	if len(rows) != 2 || rows[0]["name"] != "Basil" || rows[1]["quantity"] != "0" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	if got := FileName("products", FormatXLSX, at); got != "products_2024-03-09.xlsx" {
		t.Errorf("unexpected file name %q", got)
	}
}

func newTestExporter(t *testing.T, auditor Auditor) (*Exporter, *console.Recorder) {
	t.Helper()
	recorder := &console.Recorder{}
	exporter := NewExporter(t.TempDir(), "ops@example.com", auditor, recorder, nil)
	exporter.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }
	return exporter, recorder
}

func TestExportWritesFile(t *testing.T) {
	exporter, recorder := newTestExporter(t, nil)

	path, err := exporter.Export(Request{Name: "sellers", Format: FormatJSON, Rows: sampleRows(), Fields: []string{"name"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "sellers_2024-03-09.json" {
		t.Errorf("unexpected path %s", path)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "sku") || !strings.Contains(string(data), `"name": "Mint"`) {
		t.Errorf("unexpected export content %s", data)
	}
	notes := recorder.Notifications()
	if len(notes) != 1 || notes[0].Kind != "success" {
		t.Errorf("expected one success notification, got %+v", notes)
	}
}

func TestExportWithAuditSeparatesOutcomes(t *testing.T) {
	var recorded models.ExportEvent
	exporter, recorder := newTestExporter(t, auditFunc(func(ctx context.Context, event models.ExportEvent) error {
		recorded = event
		return errors.New("backend down")
	}))

	outcome := exporter.ExportWithAudit(context.Background(), Request{Name: "products", Format: FormatCSV, Rows: sampleRows()})

	if outcome.DownloadErr != nil {
		t.Fatalf("expected the file write to succeed, got %v", outcome.DownloadErr)
	}
	if outcome.AuditErr == nil {
		t.Fatal("expected audit error")
	}
	if _, err := os.Stat(outcome.Path); err != nil {
		t.Errorf("expected exported file on disk: %v", err)
	}
	if recorded.Count != 2 || recorded.Filename != "products_2024-03-09.csv" || recorded.Actor != "ops@example.com" {
		t.Errorf("unexpected audit event %+v", recorded)
	}

	notes := recorder.Notifications()
	if len(notes) != 2 {
		t.Fatalf("expected two notifications, got %+v", notes)
	}
	if notes[0].Kind != "success" || notes[0].Title != "Export complete" {
		t.Errorf("expected export success first, got %+v", notes[0])
	}
	if notes[1].Kind != "error" || notes[1].Title == "Export failed" {
		t.Errorf("expected a distinct audit failure, got %+v", notes[1])
	}
}

func TestExportWithAuditSkipsAuditOnWriteFailure(t *testing.T) {
	called := false
	exporter, _ := newTestExporter(t, auditFunc(func(ctx context.Context, event models.ExportEvent) error {
		called = true
		return nil
	}))

	outcome := exporter.ExportWithAudit(context.Background(), Request{Name: "products", Rows: sampleRows()})
	if outcome.DownloadErr == nil {
		t.Fatal("expected an error for an unset format")
	}
	if called {
		t.Error("expected no audit call when the file was not written")
	}
}
