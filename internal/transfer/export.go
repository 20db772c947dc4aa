package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

const fileDateLayout = "2006-01-02"

// ToRows converts entities into rows keyed by their wire field names.
func ToRows[T any](items []T) ([]Row, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal rows: %w", err)
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal rows: %w", err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// Project keeps only the allowed fields of each row. Fields missing from a
// source row stay absent. An empty allow-list keeps every field.
func Project(rows []Row, fields []string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		projected := make(Row, len(fields))
		if len(fields) == 0 {
			for key, value := range row {
				projected[key] = value
			}
		}
		for _, field := range fields {
			if value, ok := row[field]; ok {
				projected[field] = value
			}
		}
		out = append(out, projected)
	}
	return out
}

// Encode serialises rows. CSV and spreadsheet columns follow fields.
func Encode(format Format, rows []Row, fields []string) ([]byte, error) {
	if !format.Valid() {
		return nil, ErrUnsupportedFormat
	}
	var buf bytes.Buffer
	if err := format.encode(&buf, rows, fields); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName builds "{name}_{YYYY-MM-DD}.{ext}".
func FileName(name string, format Format, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", name, at.Format(fileDateLayout), format.Extension())
}

// Request describes one export.
type Request struct {
	Name   string
	Format Format
	Rows   []Row
	Fields []string
}

// ExportOutcome reports the file write and the audit call separately.
type ExportOutcome struct {
	Path        string
	Count       int
	DownloadErr error
	AuditErr    error
}

// Auditor records that an export happened.
type Auditor interface {
	RecordExport(ctx context.Context, event models.ExportEvent) error
}

// Exporter writes export files into a directory.
type Exporter struct {
	dir      string
	actor    string
	auditor  Auditor
	notifier console.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewExporter(dir, actor string, auditor Auditor, notifier console.Notifier, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		dir = "."
	}
	return &Exporter{
		dir:      dir,
		actor:    actor,
		auditor:  auditor,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Export writes the file and notifies the outcome. It returns the written path.
func (e *Exporter) Export(req Request) (string, error) {
	path, count, err := e.write(req)
	if err != nil {
		e.logger.Error("export failed", zap.String("name", req.Name), zap.Error(err))
		e.notifier.Error("Export failed", fmt.Sprintf("Could not export %s", req.Name))
		return "", err
	}
	e.notifier.Success("Export complete", fmt.Sprintf("%d %s exported to %s", count, req.Name, filepath.Base(path)))
	return path, nil
}

// ExportWithAudit writes the file, then records the audit event. The two
// results are reported and notified independently.
func (e *Exporter) ExportWithAudit(ctx context.Context, req Request) ExportOutcome {
	var outcome ExportOutcome

	path, count, err := e.write(req)
	if err != nil {
		outcome.DownloadErr = err
		e.logger.Error("export failed", zap.String("name", req.Name), zap.Error(err))
		e.notifier.Error("Export failed", fmt.Sprintf("Could not export %s", req.Name))
		return outcome
	}
	outcome.Path, outcome.Count = path, count
	e.notifier.Success("Export complete", fmt.Sprintf("%d %s exported to %s", count, req.Name, filepath.Base(path)))

	if e.auditor == nil {
		return outcome
	}
	event := models.ExportEvent{
		Type:      req.Name,
		Filename:  filepath.Base(path),
		Actor:     e.actor,
		Timestamp: e.now().UTC(),
		Count:     count,
	}
	if err := e.auditor.RecordExport(ctx, event); err != nil {
		outcome.AuditErr = err
		e.logger.Warn("record export notification", zap.String("file", event.Filename), zap.Error(err))
		e.notifier.Error("Export notification failed", "The file was saved but the export could not be recorded")
	}
	return outcome
}

func (e *Exporter) write(req Request) (string, int, error) {
	projected := Project(req.Rows, req.Fields)
	data, err := Encode(req.Format, projected, req.Fields)
	if err != nil {
		return "", 0, fmt.Errorf("encode %s: %w", req.Name, err)
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.dir, FileName(req.Name, req.Format, e.now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("write export file: %w", err)
	}

	e.logger.Info("export written",
		zap.String("path", path),
		zap.String("format", req.Format.String()),
		zap.Int("count", len(projected)),
	)
	return path, len(projected), nil
}
