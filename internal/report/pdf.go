package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/phpdave11/gofpdf"
)

// WritePDF writes the report as a one-page PDF
func WritePDF(r *Report, w io.Writer) error {
	return buildPDF(r).Output(w)
}

// SavePDF writes the report as a PDF file at path
func SavePDF(r *Report, path string) error {
	return buildPDF(r).OutputFileAndClose(path)
}

func buildPDF(r *Report) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(r.Title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", r.Generated.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	table := func(title string, entries []Entry) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, e := range entries {
			pdf.CellFormat(70, 6, tr(e.Name), "B", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, formatValue(e.Value), "B", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, tr(e.Unit), "B", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}
	table("INPUT DATA", r.Inputs)
	table("RESULTS", r.Outputs)

	for _, note := range r.Notes {
		pdf.MultiCell(0, 6, tr(note), "", "L", false)
	}

	if len(r.Steps) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "ITERATIONS")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 10)
		for _, h := range []string{"k", "Re", "f", "V (m/s)"} {
			pdf.CellFormat(40, 6, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, st := range r.Steps {
			pdf.CellFormat(40, 6, strconv.Itoa(st.Iteration), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", st.Reynolds), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.6f", st.FrictionFactor), "1", 0, "R", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.6f", st.Velocity), "1", 1, "R", false, 0, "")
		}
	}

	return pdf
}

func formatValue(v float64) string {
	if v != 0 && (v < 1e-3 || v >= 1e6) {
		return fmt.Sprintf("%.4e", v)
	}
	return fmt.Sprintf("%.6g", v)
}
