package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gopipe/internal/moody"
)

// Series is a named sequence of iterates
type Series struct {
	Name   string
	Values []float64
}

// ExportConvergence exports iterate-versus-iteration line charts to an image file
func ExportConvergence(title string, series []Series, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Estimate"
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(s.Values))
		for k, v := range s.Values {
			pts[k] = plotter.XY{X: float64(k + 1), Y: v}
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Radius = vg.Points(2.5)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}
	p.Legend.Top = true

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportMoodyDiagram exports a log-log Moody chart of the given curves
func ExportMoodyDiagram(curves []moody.Curve, laminar []moody.Point, filename string) error {
	if len(curves) == 0 {
		return fmt.Errorf("no curves to plot")
	}

	p := plot.New()
	p.Title.Text = "Moody Diagram (Colebrook)"
	p.X.Label.Text = "Reynolds number Re"
	p.Y.Label.Text = "Darcy friction factor f"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		pts := make(plotter.XYs, len(c.Points))
		for k, pt := range c.Points {
			pts[k] = plotter.XY{X: pt.Reynolds, Y: pt.FrictionFactor}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.2)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(c.Label(), line)
	}

	if len(laminar) > 0 {
		pts := make(plotter.XYs, len(laminar))
		for k, pt := range laminar {
			pts[k] = plotter.XY{X: pt.Reynolds, Y: pt.FrictionFactor}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = color.Black
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
		p.Legend.Add("laminar 64/Re", line)
	}
	p.Legend.Top = true

	return save(p, 10*vg.Inch, 7*vg.Inch, filename)
}

// save writes the plot, choosing the format from the file extension
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
