// Package formatter turns chart values into the strings shown to readers.
package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"datajournal/internal/models"

	"github.com/dustin/go-humanize"
)

// FormatValue renders a number the way a browser prints it: shortest exact
// digits, no grouping, exponent form only for very large or tiny magnitudes.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	abs := math.Abs(v)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go pads the exponent to two digits, browsers do not
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TickFormatter formats axis tick values with thousands separators and a
// fixed number of decimals derived from the tick step.
type TickFormatter struct {
	precision int
}

// NewTickFormatter creates a formatter for ticks spaced step apart
func NewTickFormatter(step float64) TickFormatter {
	return TickFormatter{precision: precisionFixed(step)}
}

// Precision is the number of decimals every tick gets
func (f TickFormatter) Precision() int {
	return f.precision
}

// Format renders one tick value
func (f TickFormatter) Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatValue(v)
	}
	fixed := strconv.FormatFloat(math.Abs(v), 'f', f.precision, 64)
	whole, frac, hasFrac := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return FormatValue(v)
	}
	out := humanize.Comma(n)
	if hasFrac {
		out += "." + frac
	}
	if v < 0 && strings.Trim(fixed, "0.") != "" {
		out = "-" + out
	}
	return out
}

// precisionFixed is the number of decimals needed to tell ticks step apart
func precisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	// round the exponent on a canonical representation so 0.1 is exactly 1e-1
	s := strconv.FormatFloat(step, 'e', -1, 64)
	_, exp, _ := strings.Cut(s, "e")
	e, err := strconv.Atoi(exp)
	if err != nil || e >= 0 {
		return 0
	}
	return -e
}

// Tooltip builds the hover text of one marker for the current selection
func Tooltip(row models.Row, sel models.Selection) string {
	return fmt.Sprintf("%s<br>%s: %s<br>%s: %s",
		row.State,
		sel.X.DisplayName(), FormatValue(row.Value(sel.X)),
		sel.Y.DisplayName(), FormatValue(row.Value(sel.Y)),
	)
}
