// Package transfer layers the spreadsheet export/import capability on top of
// a resource list. Workbook generation itself is the leave API's job; the
// panel projects rows, forwards files and hands back download URLs.
package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"leavepanel/internal/upstream"

	"github.com/xuri/excelize/v2"
)

// OpenDelay is how long the destination page waits before opening the
// generated file in a new browsing context.
const OpenDelay = 3 * time.Second

// Projection maps one resource record onto the spreadsheet columns it
// exports as.
type Projection[T any] func(T) map[string]any

// ExportResult tells the page where the generated file lives and when to
// open it.
type ExportResult struct {
	FileURL     string `json:"file_url"`
	OpenAfterMS int64  `json:"open_after_ms"`
}

// Export ships the currently loaded items through the projection to the
// export endpoint and resolves the returned path against the API origin.
func Export[T any](ctx context.Context, api *upstream.Client, items []T, project Projection[T], filename string) (ExportResult, error) {
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, project(item))
	}

	path, err := api.ExportExcel(ctx, rows, filename)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{
		FileURL:     api.FileURL(path),
		OpenAfterMS: OpenDelay.Milliseconds(),
	}, nil
}

// ValidateWorkbook rejects uploads that are not a readable workbook with at
// least a header row, before any bytes reach the import endpoint.
func ValidateWorkbook(r io.Reader) error {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return fmt.Errorf("unreadable workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return fmt.Errorf("read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("worksheet is empty")
	}
	return nil
}

// Import validates the upload, forwards it into the named table and, on
// success, refreshes the owning list so it reflects the imported rows.
// The caller resets its file input after every attempt, success or failure.
func Import(ctx context.Context, api *upstream.Client, file upstream.FilePart, raw []byte, table string, uniqueBy []string, refresh func(context.Context) error) error {
	if table == "" {
		return fmt.Errorf("import target table is required")
	}
	if err := ValidateWorkbook(bytes.NewReader(raw)); err != nil {
		return err
	}

	file.Reader = bytes.NewReader(raw)
	if err := api.ImportExcel(ctx, file, table, uniqueBy); err != nil {
		return err
	}
	if refresh != nil {
		return refresh(ctx)
	}
	return nil
}
