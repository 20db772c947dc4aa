package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/spf13/cast"
)

func encodeJSON(w io.Writer, rows []Row, _ []string) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func decodeJSON(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("decode json: empty document")
	}

	if data[0] == '{' {
		var envelope struct {
			Data []Row `json:"data"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Data != nil {
			return envelope.Data, nil
		}
		var single Row
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return []Row{single}, nil
	}

	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return rows, nil
}

func encodeCSV(w io.Writer, rows []Row, fields []string) error {
	header := columns(rows, fields)
	writer := gocsv.DefaultCSVWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, field := range header {
			record[i] = cell(row[field])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func decodeCSV(r io.Reader) ([]Row, error) {
	records, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(record))
		for key, value := range record {
			row[strings.TrimSpace(key)] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

const sheetName = "Sheet1"

func encodeXLSX(w io.Writer, rows []Row, fields []string) error {
	header := columns(rows, fields)
	book := excelize.NewFile()
	for col, field := range header {
		book.SetCellValue(sheetName, axis(col, 1), field)
	}
	for i, row := range rows {
		for col, field := range header {
			value, ok := row[field]
			if !ok || value == nil {
				continue
			}
			book.SetCellValue(sheetName, axis(col, i+2), xlsxValue(value))
		}
	}
	if err := book.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func decodeXLSX(r io.Reader) ([]Row, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}

	sheets := book.GetSheetMap()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open spreadsheet: no sheets")
	}
	first := -1
	for idx := range sheets {
		if first == -1 || idx < first {
			first = idx
		}
	}

	grid := book.GetRows(sheets[first])
	if len(grid) == 0 {
		return []Row{}, nil
	}

	header := make([]string, len(grid[0]))
	for i, name := range grid[0] {
		header[i] = strings.TrimSpace(name)
	}

	rows := make([]Row, 0, len(grid)-1)
	for _, line := range grid[1:] {
		if blank(line) {
			continue
		}
		row := make(Row, len(header))
		for i, key := range header {
			if key == "" {
				continue
			}
			if i < len(line) {
				row[key] = line[i]
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// columns returns fields when given, otherwise the sorted union of row keys.
func columns(rows []Row, fields []string) []string {
	if len(fields) > 0 {
		return fields
	}
	seen := map[string]struct{}{}
	for _, row := range rows {
		for key := range row {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func axis(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}

func cell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format(time.RFC3339)
	case []any, map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
	return cast.ToString(value)
}

func xlsxValue(value any) any {
	switch value.(type) {
	case float64, float32, int, int64, int32, bool, string:
		return value
	}
	return cell(value)
}

func blank(line []string) bool {
	for _, v := range line {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
