package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSelection(t *testing.T) {
	sel := DefaultSelection()
	assert.Equal(t, FieldPoverty, sel.X)
	assert.Equal(t, FieldHealthcare, sel.Y)
}

func TestSelectionWithKeepsOtherAxis(t *testing.T) {
	sel := DefaultSelection()

	next, err := sel.With(AxisX, FieldIncome)
	require.NoError(t, err)
	assert.Equal(t, FieldIncome, next.X)
	assert.Equal(t, FieldHealthcare, next.Y)
	assert.Equal(t, FieldPoverty, sel.X, "original selection must not change")

	next, err = next.With(AxisY, FieldObesity)
	require.NoError(t, err)
	assert.Equal(t, Selection{X: FieldIncome, Y: FieldObesity}, next)
}

func TestSelectionWithRejectsWrongAxis(t *testing.T) {
	sel := DefaultSelection()
	_, err := sel.With(AxisX, FieldSmokes)
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = sel.With(AxisY, Field("height"))
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("y")
	require.NoError(t, err)
	assert.Equal(t, AxisY, a)

	_, err = ParseAxis("z")
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestDisplayNames(t *testing.T) {
	cases := map[Field]string{
		FieldPoverty:    "In Poverty (%)",
		FieldAge:        "Age",
		FieldIncome:     "Household Income",
		FieldHealthcare: "Lack Healthcare (%)",
		FieldSmokes:     "Smokes (%)",
		FieldObesity:    "Obesity",
	}
	for f, want := range cases {
		assert.Equal(t, want, f.DisplayName(), f)
	}
}

func TestRowValue(t *testing.T) {
	r := Row{State: "Ohio", Abbr: "OH", Poverty: 14.2, Healthcare: 12.8, Income: 49644}
	assert.Equal(t, 14.2, r.Value(FieldPoverty))
	assert.Equal(t, 12.8, r.Value(FieldHealthcare))
	assert.Equal(t, 49644.0, r.Value(FieldIncome))
	assert.True(t, math.IsNaN(r.Value(Field("nope"))))
	assert.False(t, r.HasNaN())

	r.Smokes = math.NaN()
	assert.True(t, r.HasNaN())
}

func TestFieldsForIsACopy(t *testing.T) {
	xs := FieldsFor(AxisX)
	xs[0] = FieldObesity
	assert.Equal(t, FieldPoverty, FieldsFor(AxisX)[0])
	assert.Len(t, AllFields(), 6)
}
