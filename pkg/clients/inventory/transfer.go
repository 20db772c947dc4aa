package inventory

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/FirstEngineer1980/green-haven-inventory-hub-sub002/internal/domain/models"
)

// RecordExport posts the export audit event.
func (c *Client) RecordExport(ctx context.Context, event models.ExportEvent) error {
	return c.execute(ctx, http.MethodPost, "/export-notifications", event, nil, nil)
}

// UploadImport sends a file to the backend importer for entityType as the
// multipart field "file".
func (c *Client) UploadImport(ctx context.Context, entityType, filename string, r io.Reader) (models.ImportSummary, error) {
	var summary models.ImportSummary

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		Post("/import/" + entityType)
	if err != nil {
		return summary, fmt.Errorf("upload import: %w", err)
	}
	if resp.IsError() {
		return summary, &APIError{
			Status:  resp.StatusCode(),
			Message: messageFrom(resp.Body()),
			URL:     resolvedURL(resp),
		}
	}
	if _, err := decodeEnvelope(resp.Body(), &summary); err != nil {
		return summary, fmt.Errorf("decode import summary: %w", err)
	}
	return summary, nil
}
