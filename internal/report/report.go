// Package report renders a lightness series as a text table or an SVG chart.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
)

// Chart geometry.
const (
	ChartWidth  = 640
	ChartHeight = 480
	ChartTitle  = "Lightness Curve"

	// rangePad is the share of the value range added above and below.
	rangePad = 0.1
	// flatPad is used instead when every value is equal.
	flatPad = 0.05
)

// Text formats series as one "index<TAB>value" line per item, 0-based,
// without a trailing newline. Values use the shortest float32 form.
func Text(series []float32) string {
	lines := make([]string, len(series))
	for i, v := range series {
		lines[i] = strconv.Itoa(i) + "\t" + strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return strings.Join(lines, "\n")
}

// WriteText writes Text(series) to w.
func WriteText(w io.Writer, series []float32) error {
	_, err := io.WriteString(w, Text(series))
	return err
}

// WriteChart renders series as an SVG line chart to w.
//
// Parameters:
//   - w: destination of the SVG document.
//   - series: values in item order; item i is plotted at x = i+1.
//
// The chart is ChartWidth x ChartHeight and titled ChartTitle. The y axis
// spans the value range padded by a tenth of it on both sides; a flat
// series gets a fixed pad instead.
//
// # Errors
//
//   - the series is empty or holds NaN or infinite values
//   - the renderer or w fails
func WriteChart(w io.Writer, series []float32) error {
	if len(series) == 0 {
		return fmt.Errorf("chart: empty series")
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range series {
		xs[i] = float64(i + 1)
		ys[i] = float64(v)
		lo = math.Min(lo, ys[i])
		hi = math.Max(hi, ys[i])
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("chart: series contains non-finite values")
	}
	pad := (hi - lo) * rangePad
	if pad == 0 {
		pad = flatPad
	}

	graph := chart.Chart{
		Title:  ChartTitle,
		Width:  ChartWidth,
		Height: ChartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Right: 12, Bottom: 24, Left: 8},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 1, Max: math.Max(float64(len(series)), 2)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(math.Round(f)))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Lightness",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("chart: render: %w", err)
	}
	return nil
}
