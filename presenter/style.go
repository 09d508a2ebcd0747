// Package presenter turns simulation results into the summary line, charts
// and machine readable encodings.
package presenter

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"fabsim/model"
)

// Style is how one process is drawn.
type Style struct {
	Title  string
	YLabel string
	Color  color.RGBA
	Hex    string
}

// XLabel is shared by every chart.
const XLabel = "Time (min)"

var styles = map[model.Process]Style{
	model.Oxidation: {
		Title:  "Oxide thickness (Deal-Grove model)",
		YLabel: "Oxide Thickness (nm)",
		Color:  color.RGBA{R: 0x00, G: 0x80, B: 0x00, A: 0xff},
		Hex:    "#008000",
	},
	model.Etch: {
		Title:  "Etch depth",
		YLabel: "Etched Depth (nm)",
		Color:  color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
		Hex:    "#ff0000",
	},
	model.Deposition: {
		Title:  "Deposited film thickness",
		YLabel: "Deposited Thickness (nm)",
		Color:  color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
		Hex:    "#0000ff",
	},
}

// StyleFor falls back to the oxidation style for an unknown process.
func StyleFor(p model.Process) Style {
	if s, ok := styles[p]; ok {
		return s
	}
	return styles[model.Oxidation]
}

// Title is the chart title, tagged with the variant.
func Title(req model.SimulationRequest) string {
	s := StyleFor(req.Process)
	if req.Variant == model.Realistic && req.Process == model.Oxidation {
		return "Oxide thickness (saturation model)"
	}
	if req.Variant == model.Realistic {
		return s.Title + " (saturation model)"
	}
	return s.Title
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary is the one line numeric answer for a result.
func Summary(res *model.Result) string {
	req := res.Request
	return fmt.Sprintf("%s (%s) at %s°C for %s min: expected %s %s %s",
		req.Process, req.Variant,
		formatNumber(req.Temperature), formatNumber(req.Duration),
		res.Quantity, formatNumber(Round2(res.Final)), res.Unit)
}

// formatNumber drops trailing zeros so 600 prints as 600 and 7.5 as 7.5.
func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
