package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

// ExportFormat selects the static image encoding
type ExportFormat string

const (
	ExportPNG ExportFormat = "png"
	ExportSVG ExportFormat = "svg"
)

// ContentType is the HTTP media type of the format
func (f ExportFormat) ContentType() string {
	if f == ExportSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// markerStyle renders points only, no connecting line
func markerStyle() chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    MarkerRadius,
		DotColor:    chart.ColorBlue.WithAlpha(uint8(math.Round(255 * MarkerOpacity))),
	}
}

func chartTicks(a AxisHandle) []chart.Tick {
	out := make([]chart.Tick, 0, len(a.Ticks))
	for _, t := range a.Ticks {
		if t.Exiting {
			continue
		}
		out = append(out, chart.Tick{Value: t.Value, Label: t.Label})
	}
	return out
}

func chartRange(d [2]float64) *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: math.Min(d[0], d[1]), Max: math.Max(d[0], d[1])}
}

// Export renders a static, non-interactive image of the view's final state
func Export(w io.Writer, v View, format ExportFormat) error {
	var provider chart.RendererProvider
	switch format {
	case ExportPNG:
		provider = chart.PNG
	case ExportSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}

	xs := make([]float64, 0, len(v.Markers))
	ys := make([]float64, 0, len(v.Markers))
	annotations := make([]chart.Value2, 0, len(v.Markers))
	for _, m := range v.Markers {
		x, y := m.Row.Value(v.Selection.X), m.Row.Value(v.Selection.Y)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
		annotations = append(annotations, chart.Value2{XValue: x, YValue: y, Label: m.Row.Abbr})
	}
	if len(xs) == 0 {
		return fmt.Errorf("no plottable rows for %s/%s", v.Selection.X, v.Selection.Y)
	}

	m := v.Layout.Margin
	graph := chart.Chart{
		Width:  int(v.Layout.Width),
		Height: int(v.Layout.Height),
		Background: chart.Style{Padding: chart.Box{
			Top: int(m.Top), Left: int(m.Left), Right: int(m.Right), Bottom: int(m.Bottom),
		}},
		XAxis: chart.XAxis{
			Name:  v.Selection.X.ControlLabel(),
			Range: chartRange(v.XScale.Domain),
			Ticks: chartTicks(v.XAxis),
		},
		YAxis: chart.YAxis{
			Name:  v.Selection.Y.ControlLabel(),
			Range: chartRange(v.YScale.Domain),
			Ticks: chartTicks(v.YAxis),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "states", Style: markerStyle(), XValues: xs, YValues: ys},
			chart.AnnotationSeries{Name: "abbr", Annotations: annotations},
		},
	}
	return graph.Render(provider, w)
}
