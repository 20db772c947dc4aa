package models

import "time"

// ExportEvent is the audit record posted after an export.
type ExportEvent struct {
	Type      string    `json:"type"`
	Filename  string    `json:"filename"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count"`
}

// ImportSummary is returned by backend-mediated imports.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}
