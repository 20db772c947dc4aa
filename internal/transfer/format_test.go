package transfer

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mime     string
		want     Format
		wantErr  bool
	}{
		{name: "json mime", filename: "upload", mime: "application/json", want: FormatJSON},
		{name: "csv mime with params", filename: "x.bin", mime: "text/csv; charset=utf-8", want: FormatCSV},
		{name: "xlsx mime", filename: "x", mime: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", want: FormatXLSX},
		{name: "legacy excel mime", filename: "x", mime: "application/vnd.ms-excel", want: FormatXLSX},
		{name: "generic mime falls back to extension", filename: "products.CSV", mime: "application/octet-stream", want: FormatCSV},
		{name: "xls extension", filename: "old.xls", want: FormatXLSX},
		{name: "json extension", filename: "sellers.json", want: FormatJSON},
		{name: "unknown", filename: "notes.txt", mime: "text/plain", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.filename, tt.mime)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("XLSX"); err != nil || f.String() != FormatXLSX.String() {
		t.Errorf("expected xlsx, got %s, %v", f, err)
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}
