package models

import "math"

// Row represents one state's record from the demographic dataset
type Row struct {
	State      string  `json:"state"`
	Abbr       string  `json:"abbr"`
	Poverty    float64 `json:"poverty"`
	Age        float64 `json:"age"`
	Income     float64 `json:"income"`
	Healthcare float64 `json:"healthcare"`
	Smokes     float64 `json:"smokes"`
	Obesity    float64 `json:"obesity"`
}

// Value returns the numeric value of the given field, NaN for an unknown field
func (r Row) Value(field Field) float64 {
	switch field {
	case FieldPoverty:
		return r.Poverty
	case FieldAge:
		return r.Age
	case FieldIncome:
		return r.Income
	case FieldHealthcare:
		return r.Healthcare
	case FieldSmokes:
		return r.Smokes
	case FieldObesity:
		return r.Obesity
	default:
		return math.NaN()
	}
}

// HasNaN reports whether any numeric field failed to coerce
func (r Row) HasNaN() bool {
	for _, f := range AllFields() {
		if math.IsNaN(r.Value(f)) {
			return true
		}
	}
	return false
}

// Values extracts one field across the dataset
func Values(rows []Row, field Field) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Value(field)
	}
	return out
}
