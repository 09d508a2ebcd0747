package presenter

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fabsim/model"
)

// Chart image formats.
const (
	SVG = "svg"
	PNG = "png"
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// ChartFormat maps a file name or format name to a chart format.
func ChartFormat(name string) (string, error) {
	name = strings.ToLower(name)
	switch {
	case name == SVG || strings.HasSuffix(name, ".svg"):
		return SVG, nil
	case name == PNG || strings.HasSuffix(name, ".png"):
		return PNG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", name)
}

// Chart draws the curve of res as a line plot with a grid.
func Chart(w io.Writer, res *model.Result, format string) error {
	format, err := ChartFormat(format)
	if err != nil {
		return err
	}
	style := StyleFor(res.Request.Process)

	p := plot.New()
	p.Title.Text = Title(res.Request)
	p.X.Label.Text = XLabel
	p.Y.Label.Text = style.YLabel
	p.X.Min = 0
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(res.Curve))
	for i, s := range res.Curve {
		pts[i].X = s.Time
		pts[i].Y = s.Value
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart line: %w", err)
	}
	line.LineStyle.Color = style.Color
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	wt, err := p.WriterTo(chartWidth, chartHeight, format)
	if err != nil {
		return fmt.Errorf("chart %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
