package transfer

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files that are neither JSON, CSV nor a spreadsheet.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Row is one record keyed by field name.
type Row map[string]any

type formatKind int

const (
	kindJSON formatKind = iota + 1
	kindCSV
	kindXLSX
)

// Format is one of the three supported file kinds together with its codec.
// The only values are FormatJSON, FormatCSV and FormatXLSX.
type Format struct {
	kind   formatKind
	name   string
	ext    string
	mime   string
	encode func(w io.Writer, rows []Row, fields []string) error
	decode func(r io.Reader) ([]Row, error)
}

var (
	FormatJSON = Format{kind: kindJSON, name: "json", ext: "json", mime: "application/json", encode: encodeJSON, decode: decodeJSON}
	FormatCSV  = Format{kind: kindCSV, name: "csv", ext: "csv", mime: "text/csv", encode: encodeCSV, decode: decodeCSV}
	FormatXLSX = Format{
		kind:   kindXLSX,
		name:   "xlsx",
		ext:    "xlsx",
		mime:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		encode: encodeXLSX,
		decode: decodeXLSX,
	}
)

func (f Format) String() string    { return f.name }
func (f Format) Extension() string { return f.ext }
func (f Format) MIME() string      { return f.mime }
func (f Format) Valid() bool       { return f.kind != 0 }

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "xls", "excel":
		return FormatXLSX, nil
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

func byMIME(media string) (Format, bool) {
	switch strings.ToLower(media) {
	case "application/json", "text/json":
		return FormatJSON, true
	case "text/csv", "application/csv", "text/comma-separated-values":
		return FormatCSV, true
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "application/vnd.ms-excel":
		return FormatXLSX, true
	}
	return Format{}, false
}

func byExtension(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON, true
	case ".csv":
		return FormatCSV, true
	case ".xlsx", ".xls":
		return FormatXLSX, true
	}
	return Format{}, false
}

// Classify picks a format from the declared MIME type, falling back to the
// file extension when the MIME type is absent or generic.
func Classify(filename, mimeType string) (Format, error) {
	if mimeType != "" {
		if media, _, err := mime.ParseMediaType(mimeType); err == nil {
			if f, ok := byMIME(media); ok {
				return f, nil
			}
		}
	}
	if f, ok := byExtension(filename); ok {
		return f, nil
	}
	return Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}
