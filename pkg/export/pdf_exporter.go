package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth   = 277.0 // A4 landscape minus margins
	pdfLineHeight  = 6.0
	pdfCharWidthMM = 1.9
)

// PDFExporter renders datasets into a paginated landscape document.
type PDFExporter struct {
	rowsPerPage int
}

// NewPDFExporter constructs a PDF exporter; rowsPerPage <= 0 defaults to 30.
func NewPDFExporter(rowsPerPage int) *PDFExporter {
	if rowsPerPage <= 0 {
		rowsPerPage = 30
	}
	return &PDFExporter{rowsPerPage: rowsPerPage}
}

// ContentType implements Renderer.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension implements Renderer.
func (e *PDFExporter) Extension() string { return "pdf" }

// RowsPerPage returns the fixed number of records per page.
func (e *PDFExporter) RowsPerPage() int { return e.rowsPerPage }

// Render writes the header block on every page and one line per record.
func (e *PDFExporter) Render(w io.Writer, data Dataset) error {
	if err := validate(data, "pdf"); err != nil {
		return err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	colWidth := pdfPageWidth / float64(len(data.Headers))
	budget := int(colWidth/pdfCharWidthMM) - 1

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	addPage := func() {
		pdf.AddPage()
		if data.Title != "" {
			pdf.SetFont("Arial", "B", 14)
			pdf.CellFormat(0, 8, tr(data.Title), "", 1, "L", false, 0, "")
		}
		if data.GeneratedAt != "" {
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 5, tr("Generated: "+data.GeneratedAt), "", 1, "L", false, 0, "")
		}
		if len(data.Summary) > 0 {
			parts := make([]string, 0, len(data.Summary))
			for _, item := range data.Summary {
				parts = append(parts, fmt.Sprintf("%s: %s", item.Label, item.Value))
			}
			pdf.SetFont("Arial", "", 9)
			pdf.CellFormat(0, 5, tr(strings.Join(parts, "   ")), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 9)
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, tr(Truncate(header, budget)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	addPage()
	for i, row := range data.Rows {
		if i > 0 && i%e.rowsPerPage == 0 {
			addPage()
		}
		for _, value := range data.Record(row) {
			pdf.CellFormat(colWidth, pdfLineHeight, tr(Truncate(value, budget)), "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(data.Rows) == 0 {
		pdf.CellFormat(0, pdfLineHeight, "No records", "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// PageCount returns how many pages a dataset with n rows occupies.
func (e *PDFExporter) PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + e.rowsPerPage - 1) / e.rowsPerPage
}
