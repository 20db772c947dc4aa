package main

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/repository/sheets"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/server/handlers"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/transfer"
	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/pkg/clients/inventory"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		formatName string
		fields     []string
		dir        string
		audit      bool
		sheetRange string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:       "export TYPE",
		Short:     "Export an entity list to a file or a spreadsheet",
		Args:      cobra.ExactArgs(1),
		ValidArgs: handlers.ExportTypes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entity := args[0]

			format, err := transfer.ParseFormat(formatName)
			if err != nil {
				return err
			}
			rows, err := handlers.LoadRows(ctx, a.client, entity)
			if err != nil {
				a.notifier.Error("Export failed", errorMessage(err, fmt.Sprintf("Failed to load %s", entity)))
				return err
			}

			if dir == "" {
				dir = a.cfg.Export.Dir
			}
			exporter := transfer.NewExporter(dir, a.cfg.Export.Actor, a.client, a.notifier, a.logger.Named("transfer.export"))
			req := transfer.Request{Name: entity, Format: format, Rows: rows, Fields: fields}

			if sheetRange != "" {
				repo, err := a.sheetRepository(ctx)
				if err != nil {
					return err
				}
				var sink transfer.RowsWriter = repo
				if replace {
					sink = sheets.Overwriter{Repository: repo}
				}
				return exporter.ExportToSheet(ctx, sink, sheetRange, req)
			}

			if !audit {
				path, err := exporter.Export(req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			outcome := exporter.ExportWithAudit(ctx, req)
			if outcome.DownloadErr != nil {
				return outcome.DownloadErr
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "csv", "json, csv or xlsx")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "column to include (repeatable, default all)")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default EXPORT_DIR)")
	cmd.Flags().BoolVar(&audit, "audit", true, "record the export with the backend")
	cmd.Flags().StringVar(&sheetRange, "sheet", "", "append to this Google Sheets range instead of writing a file")
	cmd.Flags().BoolVar(&replace, "replace", false, "with --sheet, clear the range before writing")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var (
		remote     bool
		sheetRange string
	)

	cmd := &cobra.Command{
		Use:   "import TYPE [FILE]",
		Short: "Import records from a JSON, CSV or XLSX file or a spreadsheet range",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entity := args[0]

			if remote {
				if len(args) != 2 {
					return errors.New("--remote needs a FILE")
				}
				return a.uploadImport(cmd, entity, args[1])
			}

			newTarget, ok := importTargets[entity]
			if !ok {
				return fmt.Errorf("cannot import %q, expected one of %s", entity, strings.Join(importTypes(), ", "))
			}
			target := newTarget(a.client)
			importer := transfer.NewImporter(a.notifier, a.logger.Named("transfer.import"))

			var result transfer.ImportResult
			switch {
			case sheetRange != "":
				repo, err := a.sheetRepository(ctx)
				if err != nil {
					return err
				}
				grid, err := repo.ReadRange(ctx, sheetRange)
				if err != nil {
					return err
				}
				result = importer.ImportRows(ctx, sheetRange, transfer.GridRows(grid), target.validate, target.create)
			case len(args) == 2:
				file, err := os.Open(args[1])
				if err != nil {
					return fmt.Errorf("open import file: %w", err)
				}
				defer file.Close()
				src := transfer.Source{
					Name:   filepath.Base(args[1]),
					MIME:   mime.TypeByExtension(filepath.Ext(args[1])),
					Reader: file,
				}
				result = importer.Import(ctx, src, target.validate, target.create)
			default:
				return errors.New("pass a FILE or --sheet RANGE")
			}

			for _, problem := range result.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), problem)
			}
			if !result.OK() {
				return fmt.Errorf("import of %s failed with %d error(s)", entity, len(result.Errors))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s imported\n", result.Rows, entity)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "let the backend parse the file")
	cmd.Flags().StringVar(&sheetRange, "sheet", "", "read rows from this Google Sheets range")
	return cmd
}

func (a *app) uploadImport(cmd *cobra.Command, entity, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()

	summary, err := a.client.UploadImport(cmd.Context(), entity, filepath.Base(path), file)
	if err != nil {
		a.notifier.Error("Import failed", errorMessage(err, fmt.Sprintf("Failed to import %s", entity)))
		return err
	}
	for _, problem := range summary.Errors {
		fmt.Fprintln(cmd.ErrOrStderr(), problem)
	}
	a.notifier.Success("Import complete", fmt.Sprintf("%d %s imported", summary.Imported, entity))
	return nil
}

func (a *app) sheetRepository(ctx context.Context) (*sheets.GoogleSheetRepository, error) {
	if !a.cfg.Sheets.Enabled() {
		return nil, errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID are not set")
	}
	return sheets.NewGoogleSheetRepository(ctx, a.cfg.Sheets, a.logger.Named("repository.sheets"))
}

// rowTarget validates rows as one entity type and creates them through the API.
type rowTarget struct {
	validate transfer.Validator
	create   transfer.ImportFunc
}

func targetFor[T models.Entity](resource func(*inventory.Client) *inventory.Resource[T]) func(*inventory.Client) rowTarget {
	return func(c *inventory.Client) rowTarget {
		check := validator.New()
		return rowTarget{
			validate: func(rows []transfer.Row) []string {
				var problems []string
				for idx, row := range rows {
					item, err := transfer.DecodeRow[T](row)
					if err == nil {
						err = check.Struct(item)
					}
					if err != nil {
						problems = append(problems, fmt.Sprintf("row %d: %v", idx+2, err))
					}
				}
				return problems
			},
			create: func(ctx context.Context, rows []transfer.Row) error {
				items, problems := transfer.DecodeRows[T](rows)
				if len(problems) > 0 {
					return errors.New(problems[0])
				}
				for idx, item := range items {
					if _, err := resource(c).Create(ctx, item); err != nil {
						return fmt.Errorf("row %d: %w", idx+2, err)
					}
				}
				return nil
			},
		}
	}
}

var importTargets = map[string]func(*inventory.Client) rowTarget{
	"products":   targetFor((*inventory.Client).Products),
	"sellers":    targetFor((*inventory.Client).Sellers),
	"clients":    targetFor((*inventory.Client).Clients),
	"customers":  targetFor((*inventory.Client).Customers),
	"rooms":      targetFor((*inventory.Client).Rooms),
	"units":      targetFor((*inventory.Client).Units),
	"bins":       targetFor((*inventory.Client).Bins),
	"vendors":    targetFor((*inventory.Client).Vendors),
	"categories": targetFor((*inventory.Client).Categories),
	"promotions": targetFor((*inventory.Client).Promotions),
	"locations":  targetFor((*inventory.Client).Locations),
	"warehouses": targetFor((*inventory.Client).Warehouses),
}

func importTypes() []string {
	types := make([]string, 0, len(importTargets))
	for name := range importTargets {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
