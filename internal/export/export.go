// Package export renders filtered lists as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is one sheet of an export.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
	// Widths sets column widths by zero-based column index.
	Widths map[int]float64
}

// Build renders t into a new workbook.
func Build(t Table) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if len(t.Headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("failed to create header style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return nil, fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	for i, row := range t.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	for col, width := range t.Widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		_ = f.SetColWidth(sheet, name, name, width)
	}
	return f, nil
}

// Write renders t and writes the workbook to w.
func Write(w io.Writer, t Table) error {
	f, err := Build(t)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// FileName returns "<prefix>_<date>.xlsx".
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("2006-01-02"))
}

// Respond streams t as an attachment.
func Respond(c *gin.Context, prefix string, t Table) error {
	f, err := Build(t)
	if err != nil {
		return err
	}
	defer f.Close()

	c.Header("Content-Type", ContentType)
	c.Header("Content-Disposition", "attachment; filename="+FileName(prefix, time.Now()))
	c.Status(http.StatusOK)
	return f.Write(c.Writer)
}
