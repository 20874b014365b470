package chart

import (
	"time"

	"datajournal/internal/models"
	"datajournal/internal/scale"
)

// Marker styling and the offset that centers an abbreviation in its circle
const (
	MarkerRadius  = 15
	MarkerFill    = "blue"
	MarkerOpacity = 0.75
	LabelDX       = -5
	LabelDY       = 5
	LabelFontSize = "10px"
	LabelFill     = "white"
)

// Marker is the circle drawn for one row
type Marker struct {
	Row     models.Row
	CX, CY  Transition
	Tooltip string
}

// Label is the abbreviation text drawn over a marker
type Label struct {
	Text string
	Row  models.Row
	X, Y Transition
}

func position(r models.Row, xs scale.Linear, xField models.Field, ys scale.Linear, yField models.Field) (float64, float64) {
	return xs.Map(r.Value(xField)), ys.Map(r.Value(yField))
}

// NewMarkers places one circle per row at its current scale position
func NewMarkers(rows []models.Row, xs scale.Linear, xField models.Field, ys scale.Linear, yField models.Field) []Marker {
	out := make([]Marker, len(rows))
	for i, r := range rows {
		cx, cy := position(r, xs, xField, ys, yField)
		out[i] = Marker{Row: r, CX: Fixed(cx), CY: Fixed(cy)}
	}
	return out
}

// NewLabels places one abbreviation per row, offset into its circle
func NewLabels(rows []models.Row, xs scale.Linear, xField models.Field, ys scale.Linear, yField models.Field) []Label {
	out := make([]Label, len(rows))
	for i, r := range rows {
		cx, cy := position(r, xs, xField, ys, yField)
		out[i] = Label{Text: r.Abbr, Row: r, X: Fixed(cx + LabelDX), Y: Fixed(cy + LabelDY)}
	}
	return out
}

// RenderMarkers animates every circle to its position under the new scales
func RenderMarkers(markers []Marker, xs scale.Linear, xField models.Field, ys scale.Linear, yField models.Field, now time.Time) []Marker {
	out := make([]Marker, len(markers))
	for i, m := range markers {
		cx, cy := position(m.Row, xs, xField, ys, yField)
		m.CX = m.CX.Retarget(cx, now)
		m.CY = m.CY.Retarget(cy, now)
		out[i] = m
	}
	return out
}

// RenderLabels animates every abbreviation along with its circle
func RenderLabels(labels []Label, xs scale.Linear, xField models.Field, ys scale.Linear, yField models.Field, now time.Time) []Label {
	out := make([]Label, len(labels))
	for i, l := range labels {
		cx, cy := position(l.Row, xs, xField, ys, yField)
		l.X = l.X.Retarget(cx+LabelDX, now)
		l.Y = l.Y.Retarget(cy+LabelDY, now)
		out[i] = l
	}
	return out
}
