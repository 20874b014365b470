// Package chart owns the interactive scatter chart: its scales, the visual
// elements positioned by them and the axis selection that drives both.
package chart

// Margin is the space between the SVG edge and the plot area
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout fixes the canvas size and margins
type Layout struct {
	Width  float64
	Height float64
	Margin Margin
}

// DefaultLayout is the 900x600 canvas the page embeds
func DefaultLayout() Layout {
	return Layout{
		Width:  900,
		Height: 600,
		Margin: Margin{Top: 20, Right: 40, Bottom: 80, Left: 100},
	}
}

// PlotWidth is the horizontal extent of the plot area
func (l Layout) PlotWidth() float64 {
	return l.Width - l.Margin.Left - l.Margin.Right
}

// PlotHeight is the vertical extent of the plot area
func (l Layout) PlotHeight() float64 {
	return l.Height - l.Margin.Top - l.Margin.Bottom
}

// AxisLength is the pixel range of an axis: width for x, height for y
func (l Layout) AxisLength(horizontal bool) float64 {
	if horizontal {
		return l.PlotWidth()
	}
	return l.PlotHeight()
}
