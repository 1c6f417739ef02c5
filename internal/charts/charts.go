// Package charts renders dashboard sections as PNG images.
package charts

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"salarydash/internal/models"
)

// ErrNoData is returned when a section has nothing to draw. Callers skip the
// section instead of rendering an empty image.
var ErrNoData = errors.New("charts: no data")

const (
	chartHeight  = 400
	countHeight  = 520
	minWidth     = 800
	barSlot      = 48
	histBarSlot  = 22
	sidePadding  = 120
	labelMaxRune = 18
)

var (
	steelBlue = drawing.ColorFromHex("4682B4")
	black     = drawing.ColorFromHex("000000")

	// RdYlGn endpoints for the country deviation scale.
	divergingLow  = drawing.ColorFromHex("D73027")
	divergingMid  = drawing.ColorFromHex("FFFFBF")
	divergingHigh = drawing.ColorFromHex("1A9850")

	pieColors = []drawing.Color{
		drawing.ColorFromHex("4682B4"),
		drawing.ColorFromHex("F59E0B"),
		drawing.ColorFromHex("10B981"),
		drawing.ColorFromHex("EF4444"),
		drawing.ColorFromHex("8B5CF6"),
		drawing.ColorFromHex("06B6D4"),
	}
)

// barStyle returns a filled bar with a thin outline
func barStyle(fill drawing.Color) chart.Style {
	return chart.Style{
		FillColor:   fill,
		StrokeColor: black,
		StrokeWidth: 1.2,
	}
}

func usdFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return compactUSD(f)
	}
	return ""
}

// compactUSD renders 123456 as "$123k".
func compactUSD(v float64) string {
	switch {
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case math.Abs(v) >= 1e3:
		return fmt.Sprintf("$%.0fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func widthFor(bars, slot int) int {
	w := bars*slot + sidePadding
	if w < minWidth {
		return minWidth
	}
	return w
}

// yRange pins the axis at zero and leaves headroom above the tallest bar.
func yRange(values []float64) *chart.ContinuousRange {
	hi := 0.0
	for _, v := range values {
		if v > hi {
			hi = v
		}
	}
	if hi <= 0 {
		hi = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: hi * 1.1}
}

// TopRoles draws the mean salary of each role, in the given order.
func TopRoles(w io.Writer, rows []models.RoleMean) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(rows))
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, chart.Value{
			Label: truncate(r.Role, labelMaxRune),
			Value: r.MeanUSD,
			Style: barStyle(steelBlue),
		})
		values = append(values, r.MeanUSD)
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Top %d roles by mean salary", len(rows)),
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50}},
		Width:      widthFor(len(rows), barSlot*2),
		Height:     chartHeight,
		BarWidth:   barSlot,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{
			Name:           "Mean annual salary (USD)",
			Range:          yRange(values),
			ValueFormatter: usdFormatter,
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

// Histogram draws the salary distribution.
func Histogram(w io.Writer, bins []models.HistogramBin) error {
	if len(bins) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(bins))
	values := make([]float64, 0, len(bins))
	for _, b := range bins {
		bars = append(bars, chart.Value{
			Label: compactUSD(b.Lower),
			Value: float64(b.Count),
			Style: barStyle(steelBlue),
		})
		values = append(values, float64(b.Count))
	}

	graph := chart.BarChart{
		Title:      "Annual salary distribution",
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50}},
		Width:      widthFor(len(bins), histBarSlot+4),
		Height:     chartHeight,
		BarWidth:   histBarSlot,
		BarSpacing: 2,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{Name: "Records", Range: yRange(values)},
		Bars:       bars,
	}
	return graph.Render(chart.PNG, w)
}

// Remote draws the proportion of each remote-work mode.
func Remote(w io.Writer, shares []models.RemoteShare) error {
	if len(shares) == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(shares))
	for i, s := range shares {
		c := pieColors[i%len(pieColors)]
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Mode, s.Percent),
			Value: float64(s.Count),
			Style: chart.Style{FillColor: c, StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}

	graph := chart.PieChart{
		Title:  "Work arrangement share",
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

// Countries draws one animation frame: the mean salary per residence
// country for a single year. Bars are colored by their deviation from the
// year mean on a diverging scale spanning ±scale.
func Countries(w io.Writer, role string, frame models.CountryFrame, scale float64) error {
	if len(frame.Rows) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(frame.Rows))
	values := make([]float64, 0, len(frame.Rows))
	for _, r := range frame.Rows {
		bars = append(bars, chart.Value{
			Label: r.Abbrev,
			Value: r.MeanUSD,
			Style: barStyle(DivergingColor(r.Deviation, scale)),
		})
		values = append(values, r.MeanUSD)
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("%s mean salary by country, %d", role, frame.Year),
		Background: chart.Style{Padding: chart.Box{Top: 80, Left: 50, Right: 50, Bottom: 50}},
		Width:      widthFor(len(bars), 30),
		Height:     countHeight,
		BarWidth:   26,
		BarSpacing: 4,
		YAxis:      chart.YAxis{
			Name:           "Mean salary (USD)",
			Range:          yRange(values),
			ValueFormatter: usdFormatter,
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

// DeviationScale returns the largest absolute deviation across frames, used
// to keep colors comparable between years.
func DeviationScale(frames []models.CountryFrame) float64 {
	scale := 0.0
	for _, f := range frames {
		for _, r := range f.Rows {
			if a := math.Abs(r.Deviation); a > scale {
				scale = a
			}
		}
	}
	return scale
}

// DivergingColor maps dev in [-scale, scale] onto red-yellow-green.
func DivergingColor(dev, scale float64) drawing.Color {
	if scale <= 0 {
		return divergingMid
	}
	t := dev / scale
	if t > 1 {
		t = 1
	}
	if t < -1 {
		t = -1
	}
	if t < 0 {
		return lerp(divergingMid, divergingLow, -t)
	}
	return lerp(divergingMid, divergingHigh, t)
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
