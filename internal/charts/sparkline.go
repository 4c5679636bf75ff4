// Package charts renders small inline SVG charts for the dashboard, such as
// the CPU and memory sparklines next to the system status.
package charts

import (
	"fmt"
	"html/template"
	"strings"
)

// PercentSparkline renders a sparkline for percentage values on a fixed
// 0-100 scale. Fewer than two points yields an empty string.
func PercentSparkline(values []float64, width, height int, stroke string) template.HTML {
	if len(values) < 2 {
		return ""
	}

	svg := fmt.Sprintf(
		`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="none">`+
			`<polyline fill="none" stroke="%s" stroke-width="2" points="%s" /></svg>`,
		width, height, width, height, stroke, polylinePoints(values, width, height, 0, 100),
	)
	return template.HTML(svg)
}

// Sparkline renders a sparkline scaled to the data's own min/max range.
func Sparkline(values []float64, width, height int, stroke string) template.HTML {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		hi = lo + 1
	}

	svg := fmt.Sprintf(
		`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="none">`+
			`<polyline fill="none" stroke="%s" stroke-width="2" points="%s" /></svg>`,
		width, height, width, height, stroke, polylinePoints(values, width, height, lo, hi),
	)
	return template.HTML(svg)
}

// polylinePoints spaces the values evenly across the width and maps them onto
// the inverted SVG y-axis with a 10% vertical padding.
func polylinePoints(values []float64, width, height int, lo, hi float64) string {
	var b strings.Builder
	for i, v := range values {
		x := float64(i) / float64(len(values)-1) * float64(width)
		normalized := (v - lo) / (hi - lo)
		y := float64(height) - normalized*float64(height)
		y = float64(height)*0.1 + y*0.8

		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f,%.2f", x, y)
	}
	return b.String()
}
