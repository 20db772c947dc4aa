package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// RowsWriter appends rows to a spreadsheet range.
type RowsWriter interface {
	WriteRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// SheetValues lays rows out as a header line followed by one line per row.
func SheetValues(rows []Row, fields []string) [][]interface{} {
	header := columns(rows, fields)
	out := make([][]interface{}, 0, len(rows)+1)

	line := make([]interface{}, len(header))
	for i, field := range header {
		line[i] = field
	}
	out = append(out, line)

	for _, row := range rows {
		line := make([]interface{}, len(header))
		for i, field := range header {
			line[i] = cell(row[field])
		}
		out = append(out, line)
	}
	return out
}

// GridRows turns a sheet range whose first line is a header into rows.
func GridRows(grid [][]interface{}) []Row {
	if len(grid) == 0 {
		return []Row{}
	}
	header := make([]string, len(grid[0]))
	for i, v := range grid[0] {
		header[i] = strings.TrimSpace(cast.ToString(v))
	}

	rows := make([]Row, 0, len(grid)-1)
	for _, line := range grid[1:] {
		row := make(Row, len(header))
		empty := true
		for i, key := range header {
			if key == "" {
				continue
			}
			value := ""
			if i < len(line) {
				value = cast.ToString(line[i])
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			row[key] = value
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

// ExportToSheet appends the projected rows, header first, to sheetRange.
func (e *Exporter) ExportToSheet(ctx context.Context, sink RowsWriter, sheetRange string, req Request) error {
	projected := Project(req.Rows, req.Fields)
	if err := sink.WriteRows(ctx, sheetRange, SheetValues(projected, req.Fields)); err != nil {
		e.notifier.Error("Export failed", fmt.Sprintf("Could not write %s to the spreadsheet", req.Name))
		return fmt.Errorf("export %s to sheet: %w", req.Name, err)
	}
	e.notifier.Success("Export complete", fmt.Sprintf("%d %s written to %s", len(projected), req.Name, sheetRange))
	return nil
}
