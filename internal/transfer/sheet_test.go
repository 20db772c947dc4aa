package transfer

import (
	"context"
	"testing"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
)

type capturedSheet struct {
	sheetRange string
	rows       [][]interface{}
}

func (c *capturedSheet) WriteRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	c.sheetRange, c.rows = sheetRange, rows
	return nil
}

func TestExportToSheet(t *testing.T) {
	sink := &capturedSheet{}
	exporter := NewExporter(t.TempDir(), "ops", nil, &console.Recorder{}, nil)

	err := exporter.ExportToSheet(context.Background(), sink, "Products!A1", Request{
		Name: "products", Rows: sampleRows(), Fields: []string{"name", "quantity"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.rows) != 3 || sink.rows[0][0] != "name" || sink.rows[2][1] != "0" {
		t.Errorf("unexpected rows %v", sink.rows)
	}
}

func TestGridRows(t *testing.T) {
	rows := GridRows([][]interface{}{
		{"name", " sku "},
		{"Basil", "B-1"},
		{"", ""},
		{"Mint"},
		{1000000.0, nil},
	})
	if len(rows) != 3 {
		t.Fatalf("expected blank line skipped, got %v", rows)
	}
	if rows[0]["sku"] != "B-1" || rows[1]["sku"] != "" {
		t.Errorf("unexpected rows %v", rows)
	}
	if rows[2]["name"] != "1000000" || rows[2]["sku"] != "" {
		t.Errorf("expected unformatted numbers kept plain, got %v", rows[2])
	}
}
