package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAxis  = errors.New("invalid axis")
	ErrInvalidField = errors.New("invalid field")
)

// Axis identifies one of the two chart axes
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// ParseAxis validates an axis name coming from a request
func ParseAxis(s string) (Axis, error) {
	switch Axis(s) {
	case AxisX, AxisY:
		return Axis(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAxis, s)
	}
}

// Field is a numeric column that can drive an axis
type Field string

const (
	FieldPoverty    Field = "poverty"
	FieldAge        Field = "age"
	FieldIncome     Field = "income"
	FieldHealthcare Field = "healthcare"
	FieldSmokes     Field = "smokes"
	FieldObesity    Field = "obesity"
)

var (
	xFields = []Field{FieldPoverty, FieldAge, FieldIncome}
	yFields = []Field{FieldHealthcare, FieldSmokes, FieldObesity}
)

// FieldsFor returns the fields selectable on an axis, in control order
func FieldsFor(axis Axis) []Field {
	if axis == AxisX {
		return append([]Field(nil), xFields...)
	}
	return append([]Field(nil), yFields...)
}

// AllFields returns every numeric field, X fields first
func AllFields() []Field {
	return append(FieldsFor(AxisX), yFields...)
}

// Axis reports which axis owns the field
func (f Field) Axis() (Axis, bool) {
	for _, x := range xFields {
		if f == x {
			return AxisX, true
		}
	}
	for _, y := range yFields {
		if f == y {
			return AxisY, true
		}
	}
	return "", false
}

// DisplayName is the name used in tooltips
func (f Field) DisplayName() string {
	switch f {
	case FieldPoverty:
		return "In Poverty (%)"
	case FieldAge:
		return "Age"
	case FieldIncome:
		return "Household Income"
	case FieldHealthcare:
		return "Lack Healthcare (%)"
	case FieldSmokes:
		return "Smokes (%)"
	case FieldObesity:
		return "Obesity"
	}
	return string(f)
}

// ControlLabel is the text of the clickable axis label
func (f Field) ControlLabel() string {
	switch f {
	case FieldPoverty:
		return "Poverty (%)"
	case FieldAge:
		return "Age (Median)"
	case FieldIncome:
		return "Household Income (Median)"
	case FieldHealthcare:
		return "Lack Healthcare (%)"
	case FieldSmokes:
		return "Smokes (%)"
	case FieldObesity:
		return "Obese (%)"
	}
	return string(f)
}

// ValidateField checks that the field belongs to the axis
func ValidateField(axis Axis, field Field) error {
	owner, ok := field.Axis()
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	if owner != axis {
		return fmt.Errorf("%w: %q is not a %s-axis field", ErrInvalidField, field, axis)
	}
	return nil
}

// Selection is the pair of fields currently driving the chart
type Selection struct {
	X Field `json:"x"`
	Y Field `json:"y"`
}

// DefaultSelection is the state the chart starts in
func DefaultSelection() Selection {
	return Selection{X: FieldPoverty, Y: FieldHealthcare}
}

// Chosen returns the field currently selected for an axis
func (s Selection) Chosen(axis Axis) Field {
	if axis == AxisX {
		return s.X
	}
	return s.Y
}

// With returns a copy of the selection with one axis replaced.
// The other axis is never touched.
func (s Selection) With(axis Axis, field Field) (Selection, error) {
	if err := ValidateField(axis, field); err != nil {
		return s, err
	}
	if axis == AxisX {
		s.X = field
	} else {
		s.Y = field
	}
	return s, nil
}
