package chart

import (
	"datajournal/internal/formatter"
	"datajournal/internal/models"
)

// TooltipOffset is the [top, left] displacement of the tooltip box from the
// hovered marker, in pixels
var TooltipOffset = [2]int{80, -60}

// BindTooltips replaces the hover text of every marker for the selection
func BindTooltips(markers []Marker, sel models.Selection) []Marker {
	out := make([]Marker, len(markers))
	for i, m := range markers {
		m.Tooltip = formatter.Tooltip(m.Row, sel)
		out[i] = m
	}
	return out
}
