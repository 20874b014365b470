package chart

import (
	"time"

	"datajournal/internal/models"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testRows() []models.Row {
	return []models.Row{
		{State: "Alabama", Abbr: "AL", Poverty: 19.3, Age: 38.6, Income: 42830, Healthcare: 13.9, Smokes: 21.1, Obesity: 33.5},
		{State: "Ohio", Abbr: "OH", Poverty: 14.2, Age: 39.3, Income: 49644, Healthcare: 12.8, Smokes: 21.6, Obesity: 30.9},
		{State: "Utah", Abbr: "UT", Poverty: 9.2, Age: 30.2, Income: 60727, Healthcare: 14.5, Smokes: 9.7, Obesity: 24.3},
	}
}

func activeFields(controls []Control) []models.Field {
	var out []models.Field
	for _, c := range controls {
		if c.Active {
			out = append(out, c.Field)
		}
	}
	return out
}
