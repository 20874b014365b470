package scale

import (
	"errors"
	"math"

	"datajournal/internal/models"
)

// ErrEmptyDataset is returned when a scale is requested for zero rows
var ErrEmptyDataset = errors.New("cannot build scale from empty dataset")

const (
	lowerPad = 0.8
	upperPad = 1.2
)

// Extent returns the smallest and largest non-NaN value of a field. Both are
// NaN when no row carries a usable value.
func Extent(rows []models.Row, field models.Field) (min, max float64) {
	min, max = math.NaN(), math.NaN()
	for _, r := range rows {
		v := r.Value(field)
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return min, max
}

// NewX builds the horizontal scale: [0.8*min, 1.2*max] onto [0, width]
func NewX(rows []models.Row, field models.Field, width float64) (Linear, error) {
	if len(rows) == 0 {
		return Linear{}, ErrEmptyDataset
	}
	min, max := Extent(rows, field)
	return Linear{
		Domain: [2]float64{min * lowerPad, max * upperPad},
		Range:  [2]float64{0, width},
	}, nil
}

// NewY builds the vertical scale. The domain is inverted so larger values
// land nearer the top of the plot: 1.2*max maps to 0, 0.8*min to height.
func NewY(rows []models.Row, field models.Field, height float64) (Linear, error) {
	if len(rows) == 0 {
		return Linear{}, ErrEmptyDataset
	}
	min, max := Extent(rows, field)
	return Linear{
		Domain: [2]float64{max * upperPad, min * lowerPad},
		Range:  [2]float64{0, height},
	}, nil
}

// For builds the scale of the given axis
func For(axis models.Axis, rows []models.Row, field models.Field, length float64) (Linear, error) {
	if axis == models.AxisX {
		return NewX(rows, field, length)
	}
	return NewY(rows, field, length)
}
