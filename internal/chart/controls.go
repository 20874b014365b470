package chart

import "datajournal/internal/models"

// Control is one clickable axis label
type Control struct {
	Axis   models.Axis
	Field  models.Field
	Text   string
	Active bool
	// position inside the label group
	X, Y float64
}

// Class is the CSS class marking the control active or inactive
func (c Control) Class() string {
	if c.Active {
		return "active"
	}
	return "inactive"
}

// NewControls creates the three label controls of an axis. X labels stack
// downwards under the plot, Y labels stack leftwards in a rotated group.
func NewControls(axis models.Axis, chosen models.Field, l Layout) []Control {
	fields := models.FieldsFor(axis)
	out := make([]Control, len(fields))
	for i, f := range fields {
		c := Control{Axis: axis, Field: f, Text: f.ControlLabel()}
		if axis == models.AxisX {
			c.X = 0
			c.Y = float64(20 * (i + 1))
		} else {
			c.X = -l.PlotHeight() / 2
			c.Y = -l.Margin.Left + 40 - float64(20*i)
		}
		out[i] = c
	}
	return Restyle(out, chosen)
}

// Restyle marks exactly the control for chosen as active
func Restyle(controls []Control, chosen models.Field) []Control {
	out := make([]Control, len(controls))
	for i, c := range controls {
		c.Active = c.Field == chosen
		out[i] = c
	}
	return out
}
