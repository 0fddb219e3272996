package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	iterationsSheet = "Iterations"
)

// WriteXLSX writes the report as an Excel workbook
func WriteXLSX(r *Report, w io.Writer) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveXLSX writes the report as an Excel workbook at path
func SaveXLSX(r *Report, path string) error {
	f, err := buildWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// sheetWriter keeps the first excelize error so the workbook layout
// below reads as a straight sequence of writes
type sheetWriter struct {
	f    *excelize.File
	bold int
	err  error
}

func (w *sheetWriter) set(sheet string, col, row int, value interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(sheet, cell, value)
}

func (w *sheetWriter) heading(sheet string, row int, text string) {
	w.set(sheet, 1, row, text)
	if w.err != nil {
		return
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	w.err = w.f.SetCellStyle(sheet, cell, cell, w.bold)
}

func (w *sheetWriter) width(sheet, col string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(sheet, col, col, width)
}

func (w *sheetWriter) style(sheet, from, to string) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, from, to, w.bold)
}

func buildWorkbook(r *Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeWorkbook(&sheetWriter{f: f, bold: bold}, r); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeWorkbook(w *sheetWriter, r *Report) error {
	row := 1
	w.heading(summarySheet, row, r.Title)
	row++
	w.set(summarySheet, 1, row, "Generated")
	w.set(summarySheet, 2, row, r.Generated.Format("2006-01-02 15:04:05"))
	row += 2

	for _, block := range []struct {
		title   string
		entries []Entry
	}{
		{"INPUT DATA", r.Inputs},
		{"RESULTS", r.Outputs},
	} {
		w.heading(summarySheet, row, block.title)
		row++
		for _, e := range block.entries {
			w.set(summarySheet, 1, row, e.Name)
			w.set(summarySheet, 2, row, e.Value)
			w.set(summarySheet, 3, row, e.Unit)
			row++
		}
		row++
	}
	for _, note := range r.Notes {
		w.set(summarySheet, 1, row, note)
		row++
	}
	w.width(summarySheet, "A", 28)
	w.width(summarySheet, "B", 18)

	if w.err != nil || (len(r.Steps) == 0 && len(r.FrictionHistory) == 0) {
		return w.err
	}

	if _, err := w.f.NewSheet(iterationsSheet); err != nil {
		return err
	}
	if len(r.Steps) > 0 {
		for col, h := range []string{"Iteration", "Reynolds", "Friction factor", "Velocity (m/s)", "Colebrook converged"} {
			w.set(iterationsSheet, col+1, 1, h)
		}
		for i, st := range r.Steps {
			w.set(iterationsSheet, 1, i+2, st.Iteration)
			w.set(iterationsSheet, 2, i+2, st.Reynolds)
			w.set(iterationsSheet, 3, i+2, st.FrictionFactor)
			w.set(iterationsSheet, 4, i+2, st.Velocity)
			w.set(iterationsSheet, 5, i+2, st.InnerConverged)
		}
	} else {
		w.set(iterationsSheet, 1, 1, "Iteration")
		w.set(iterationsSheet, 2, 1, "Friction factor")
		for i, v := range r.FrictionHistory {
			w.set(iterationsSheet, 1, i+2, i+1)
			w.set(iterationsSheet, 2, i+2, v)
		}
	}
	w.style(iterationsSheet, "A1", "E1")
	return w.err
}
