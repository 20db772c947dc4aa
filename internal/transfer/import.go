package transfer

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/console"
)

// Source is an uploaded or local file awaiting import.
type Source struct {
	Name   string
	MIME   string
	Reader io.Reader
}

// ImportResult lists how many rows were read and what went wrong.
type ImportResult struct {
	Rows   int
	Errors []string
}

// OK reports whether the import produced no errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0
}

// Validator inspects parsed rows and returns human-readable problems.
type Validator func(rows []Row) []string

// ImportFunc receives rows that parsed and validated cleanly.
type ImportFunc func(ctx context.Context, rows []Row) error

// Importer parses files and hands valid rows to a callback.
type Importer struct {
	notifier console.Notifier
	logger   *zap.Logger
}

func NewImporter(notifier console.Notifier, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{notifier: notifier, logger: logger}
}

// Import classifies, decodes and validates src. onImport runs only when there
// are no errors; its own failure is added to the result.
func (i *Importer) Import(ctx context.Context, src Source, validate Validator, onImport ImportFunc) ImportResult {
	format, err := Classify(src.Name, src.MIME)
	if err != nil {
		return i.fail(src, ImportResult{Errors: []string{err.Error()}})
	}

	rows, err := format.decode(src.Reader)
	if err != nil {
		i.logger.Warn("parse import file", zap.String("file", src.Name), zap.Error(err))
		return i.fail(src, ImportResult{Errors: []string{fmt.Sprintf("Failed to parse %s: %v", src.Name, err)}})
	}

	return i.ImportRows(ctx, src.Name, rows, validate, onImport)
}

// ImportRows runs validation and the callback over rows that were already
// decoded, such as a spreadsheet range.
func (i *Importer) ImportRows(ctx context.Context, name string, rows []Row, validate Validator, onImport ImportFunc) ImportResult {
	src := Source{Name: name}
	result := ImportResult{Rows: len(rows)}
	if validate != nil {
		result.Errors = append(result.Errors, validate(rows)...)
	}
	if !result.OK() {
		return i.fail(src, result)
	}

	if onImport != nil {
		if err := onImport(ctx, rows); err != nil {
			i.logger.Error("import rows", zap.String("file", src.Name), zap.Error(err))
			result.Errors = append(result.Errors, err.Error())
			return i.fail(src, result)
		}
	}

	i.logger.Info("import complete", zap.String("file", src.Name), zap.Int("rows", result.Rows))
	i.notifier.Success("Import complete", fmt.Sprintf("%d rows imported from %s", result.Rows, src.Name))
	return result
}

func (i *Importer) fail(src Source, result ImportResult) ImportResult {
	i.notifier.Error("Import failed", fmt.Sprintf("%d error(s) in %s", len(result.Errors), src.Name))
	return result
}

// DecodeRows converts rows into typed entities. Scalars are coerced loosely
// and dates may use any common layout, zone-less ones read as UTC. Failing
// rows are reported as "row N: ..." with the header counted as row 1.
func DecodeRows[T any](rows []Row) ([]T, []string) {
	items := make([]T, 0, len(rows))
	var problems []string
	for idx, row := range rows {
		var item T
		if err := decodeRow(row, &item); err != nil {
			problems = append(problems, fmt.Sprintf("row %d: %v", idx+2, err))
			continue
		}
		items = append(items, item)
	}
	return items, problems
}

// DecodeRow converts a single row, such as one built from command-line flags.
func DecodeRow[T any](row Row) (T, error) {
	var item T
	if err := decodeRow(row, &item); err != nil {
		return item, fmt.Errorf("decode %s: %w", reflect.TypeOf(item).Name(), err)
	}
	return item, nil
}

func decodeRow(row Row, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToTimeHook,
			mapstructure.StringToSliceHookFunc(","),
			blankToZeroHook,
		),
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	return decoder.Decode(map[string]any(row))
}

var timeType = reflect.TypeOf(time.Time{})

func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}
	value := reflect.ValueOf(data).String()
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", value, err)
	}
	return parsed, nil
}

// blankToZeroHook maps empty spreadsheet cells to the target's zero value.
func blankToZeroHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || reflect.ValueOf(data).String() != "" {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return reflect.Zero(to).Interface(), nil
	case reflect.Ptr:
		return nil, nil
	}
	return data, nil
}
