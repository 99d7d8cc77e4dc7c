// Package docs renders the currently loaded list as a downloadable PDF, a
// local companion to the spreadsheet export handled by the leave API.
package docs

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

type Column struct {
	Header string
	Width  float64
}

// ListPDF describes one resource table's print layout.
type ListPDF struct {
	Title   string
	Columns []Column
}

// Render produces the PDF bytes and a download filename for the given rows.
// Rows shorter than the column set are padded; longer ones are truncated.
func (l ListPDF) Render(rows [][]string) ([]byte, string, error) {
	if len(l.Columns) == 0 {
		return nil, "", fmt.Errorf("list pdf needs at least one column")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(l.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, strings.ToUpper(safe(l.Title, "LIST")))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range l.Columns {
		pdf.CellFormat(col.Width, 8, col.Header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, col := range l.Columns {
			val := "-"
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				val = row[i]
			}
			pdf.CellFormat(col.Width, 7, clip(val, col.Width), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(rows) == 0 {
		pdf.Cell(0, 7, "No data on the current page.")
		pdf.Ln(7)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_%s.pdf", safeFilenamePart(l.Title), time.Now().Format("20060102_1504"))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// clip keeps cell text inside its column, roughly 2mm per character.
// Truncation counts runes so multi-byte text is never split mid-character.
func clip(s string, width float64) string {
	max := int(width / 2)
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "list"
	}
	return out
}
