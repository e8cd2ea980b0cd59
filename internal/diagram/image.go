package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	barColor       = color.RGBA{R: 100, G: 149, B: 237, A: 255}
	governingColor = color.RGBA{R: 200, G: 30, B: 30, A: 255}
)

// ExportBarChart exports a combination bar chart to an image file. The
// format follows the extension (.png, .svg or .pdf); anything else is saved
// as PNG with .png appended. It returns the path written.
func ExportBarChart(title, yLabel string, bars []Bar, filename string) (string, error) {
	if len(bars) == 0 {
		return "", fmt.Errorf("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Y.Min = 0

	values := make(plotter.Values, len(bars))
	governing := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		if b.Highlight {
			governing[i] = b.Value
		}
		labels[i] = b.Label
	}

	all, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return "", err
	}
	all.Color = barColor
	all.LineStyle.Width = vg.Length(0)
	p.Add(all)

	gov, err := plotter.NewBarChart(governing, vg.Points(30))
	if err != nil {
		return "", err
	}
	gov.Color = governingColor
	gov.LineStyle.Width = vg.Length(0)
	p.Add(gov)

	p.Legend.Add("combination", all)
	p.Legend.Add("governs", gov)
	p.Legend.Top = true
	p.NominalX(labels...)

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportDriftProfile exports the accumulation factor along a lower roof.
func ExportDriftProfile(points []ProfilePoint, filename string) (string, error) {
	if len(points) == 0 {
		return "", fmt.Errorf("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = "Multi-level Roof Drift"
	p.X.Label.Text = "Distance from step (m)"
	p.Y.Label.Text = "Ca"
	p.Y.Min = 0

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Value}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return "", err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	p.Add(line)

	// Ca = 1 reference line
	ref, err := plotter.NewLine(plotter.XYs{{X: points[0].X, Y: 1}, {X: points[len(points)-1].X, Y: 1}})
	if err != nil {
		return "", err
	}
	ref.LineStyle.Color = color.Gray{Y: 128}
	ref.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(ref)

	peak, err := plotter.NewScatter(plotter.XYs{xys[0]})
	if err != nil {
		return "", err
	}
	peak.GlyphStyle.Color = governingColor
	peak.GlyphStyle.Radius = vg.Points(4)
	peak.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(peak)

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

func save(p *plot.Plot, width, height vg.Length, filename string) (string, error) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if err := p.Save(width, height, filename); err != nil {
		return "", err
	}
	return filename, nil
}
