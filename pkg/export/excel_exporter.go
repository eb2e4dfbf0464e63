package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Report"

// ExcelExporter renders datasets into a single-sheet xlsx workbook.
type ExcelExporter struct{}

// NewExcelExporter constructs an Excel exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// ContentType implements Renderer.
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Renderer.
func (e *ExcelExporter) Extension() string { return "xlsx" }

// Render writes one header row followed by one row per record.
func (e *ExcelExporter) Render(w io.Writer, data Dataset) error {
	if err := validate(data, "excel"); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	widths := make([]int, len(data.Headers))
	header := make([]interface{}, len(data.Headers))
	for i, h := range data.Headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for r, row := range data.Rows {
		record := data.Record(row)
		values := make([]interface{}, len(record))
		for i, v := range record {
			values[i] = v
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(excelSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(data.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(excelSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if width > 60 {
			width = 60
		}
		if err := f.SetColWidth(excelSheet, col, col, float64(width+2)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ReadExcel loads a workbook produced by ExcelExporter back into a Dataset.
func ReadExcel(r io.Reader) (Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Dataset{}, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return Dataset{}, fmt.Errorf("workbook has no header row")
	}

	data := Dataset{Title: sheet, Headers: rows[0]}
	for _, raw := range rows[1:] {
		row := make(map[string]string, len(data.Headers))
		for i, header := range data.Headers {
			if i < len(raw) {
				row[header] = raw[i]
			} else {
				row[header] = ""
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}
