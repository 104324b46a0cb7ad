package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	chartWidth     = 600.0
	chartHeight    = 220.0
	chartPadding   = 32.0
	chartGridlines = 5
	chartMaxPoints = 24

	axisFloorKnots   = 5.0
	axisCeilingKnots = 25.0
)

// Gridline is one horizontal axis line with its knot label.
type Gridline struct {
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Chart is the hourly wind line chart mapped to pixel space.
type Chart struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Min       float64    `json:"min"`
	Max       float64    `json:"max"`
	Values    []float64  `json:"values"`
	Points    []Point    `json:"points"`
	Gridlines []Gridline `json:"gridlines"`
}

// AxisRange widens the data range so the axis always covers at least
// 5..25 knots.
func AxisRange(knots []float64) (lo, hi float64) {
	lo, hi = axisFloorKnots, axisCeilingKnots
	for _, v := range knots {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// NewChart lays out up to 24 hourly wind speeds (knots, chronological).
func NewChart(knots []float64) Chart {
	if len(knots) > chartMaxPoints {
		knots = knots[:chartMaxPoints]
	}
	lo, hi := AxisRange(knots)
	c := Chart{
		Width:  chartWidth,
		Height: chartHeight,
		Min:    lo,
		Max:    hi,
		Values: append([]float64(nil), knots...),
	}

	plotW := chartWidth - 2*chartPadding
	plotH := chartHeight - 2*chartPadding
	y := func(v float64) float64 {
		return chartHeight - chartPadding - (v-lo)/(hi-lo)*plotH
	}

	for i := 0; i < chartGridlines; i++ {
		v := lo + float64(i)*(hi-lo)/(chartGridlines-1)
		c.Gridlines = append(c.Gridlines, Gridline{Y: y(v), Value: v, Label: fmt.Sprintf("%.0f kt", v)})
	}

	step := 0.0
	if len(knots) > 1 {
		step = plotW / float64(len(knots)-1)
	}
	c.Points = make([]Point, 0, len(knots))
	for i, v := range knots {
		c.Points = append(c.Points, Point{X: chartPadding + float64(i)*step, Y: y(v)})
	}
	return c
}

// SVG renders the chart with gridlines, labels and the wind line.
func (c Chart) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`,
		c.Width, c.Height, c.Width, c.Height)

	for _, g := range c.Gridlines {
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.2f" x2="%.1f" y2="%.2f" stroke="#e2e8f0" stroke-width="1"/>`,
			chartPadding, g.Y, c.Width-chartPadding, g.Y)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.2f" font-size="10" text-anchor="end" fill="#64748b">%s</text>`,
			chartPadding-4, g.Y+3, g.Label)
	}

	if len(c.Points) > 0 {
		pts := make([]string, 0, len(c.Points))
		for _, p := range c.Points {
			pts = append(pts, fmt.Sprintf("%.2f,%.2f", p.X, p.Y))
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#0ea5e9" stroke-width="2"/>`, strings.Join(pts, " "))
		for _, p := range c.Points {
			fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="#0ea5e9"/>`, p.X, p.Y)
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}
