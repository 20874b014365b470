package chart

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"time"

	"datajournal/internal/models"
)

// SMIL approximation of cubic in-out easing
const easeSplines = "0.645 0.045 0.355 1"

// WriteSVG draws the view as a standalone SVG document. Transitions that are
// still running at v.Now are emitted as SMIL animations offset so the browser
// picks them up mid-flight.
func WriteSVG(w io.Writer, v View) error {
	b := bufio.NewWriter(w)
	l := v.Layout
	now := v.Now

	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+"\n", num(l.Width), num(l.Height))
	fmt.Fprintf(b, `<g class="chart" transform="translate(%s, %s)">`+"\n", num(l.Margin.Left), num(l.Margin.Top))

	writeAxis(b, v.XAxis, l, now)
	writeAxis(b, v.YAxis, l, now)

	for i, m := range v.Markers {
		fmt.Fprintf(b, `<circle data-index="%d" cx="%s" cy="%s" r="%d" fill="%s" opacity="%s" data-tip="%s">`,
			i, num(m.CX.To), num(m.CY.To), MarkerRadius, MarkerFill, num(MarkerOpacity), html.EscapeString(m.Tooltip))
		writeAnimate(b, "cx", m.CX, now)
		writeAnimate(b, "cy", m.CY, now)
		b.WriteString("</circle>\n")
	}

	b.WriteString(`<g class="circ_labels">` + "\n")
	for _, lb := range v.Labels {
		fmt.Fprintf(b, `<text x="%s" y="%s" font-size="%s" fill="%s" pointer-events="none">%s`,
			num(lb.X.To), num(lb.Y.To), LabelFontSize, LabelFill, html.EscapeString(lb.Text))
		writeAnimate(b, "x", lb.X, now)
		writeAnimate(b, "y", lb.Y, now)
		b.WriteString("</text>\n")
	}
	b.WriteString("</g>\n")

	fmt.Fprintf(b, `<g class="x-labels" transform="translate(%s, %s)">`+"\n", num(l.PlotWidth()/2), num(l.PlotHeight()+20))
	for _, c := range v.XControls {
		writeControl(b, c, "")
	}
	b.WriteString("</g>\n")
	b.WriteString(`<g class="y-labels" transform="rotate(-90)">` + "\n")
	for _, c := range v.YControls {
		writeControl(b, c, ` dy="1em"`)
	}
	b.WriteString("</g>\n")

	b.WriteString("</g>\n</svg>\n")
	return b.Flush()
}

func writeAxis(b *bufio.Writer, a AxisHandle, l Layout, now time.Time) {
	if a.Orient == OrientBottom {
		fmt.Fprintf(b, `<g class="x-axis" transform="translate(0, %s)" fill="none" font-size="10" font-family="sans-serif" text-anchor="middle">`+"\n", num(l.PlotHeight()))
		fmt.Fprintf(b, `<path class="domain" stroke="currentColor" d="M0.5,%dV0.5H%sV%d"/>`+"\n", tickSize, num(l.PlotWidth()+0.5), tickSize)
	} else {
		b.WriteString(`<g class="y-axis" transform="translate(0, 0)" fill="none" font-size="10" font-family="sans-serif" text-anchor="end">` + "\n")
		fmt.Fprintf(b, `<path class="domain" stroke="currentColor" d="M-%d,0.5H0.5V%sH-%d"/>`+"\n", tickSize, num(l.PlotHeight()+0.5), tickSize)
	}

	for _, t := range a.Ticks {
		opacity := "1"
		if t.Exiting {
			opacity = "0"
		}
		if a.Orient == OrientBottom {
			fmt.Fprintf(b, `<g class="tick" opacity="%s" transform="translate(%s,0)">`, opacity, num(t.Pos.To))
			writeAnimateTranslate(b, t.Pos, true, now)
			writeFade(b, t, now)
			fmt.Fprintf(b, `<line stroke="currentColor" y2="%d"/><text fill="currentColor" y="%d" dy="0.71em">%s</text></g>`+"\n",
				tickSize, tickSize+tickPadding, html.EscapeString(t.Label))
		} else {
			fmt.Fprintf(b, `<g class="tick" opacity="%s" transform="translate(0,%s)">`, opacity, num(t.Pos.To))
			writeAnimateTranslate(b, t.Pos, false, now)
			writeFade(b, t, now)
			fmt.Fprintf(b, `<line stroke="currentColor" x2="-%d"/><text fill="currentColor" x="-%d" dy="0.32em">%s</text></g>`+"\n",
				tickSize, tickSize+tickPadding, html.EscapeString(t.Label))
		}
	}
	b.WriteString("</g>\n")
}

func writeControl(b *bufio.Writer, c Control, extra string) {
	class := c.Class()
	if c.Axis == models.AxisY {
		class += " axis-text"
	}
	fmt.Fprintf(b, `<text x="%s" y="%s"%s value="%s" data-axis="%s" data-value="%s" class="%s">%s</text>`+"\n",
		num(c.X), num(c.Y), extra, c.Field, c.Axis, c.Field, class, html.EscapeString(c.Text))
}

func timing(t Transition, now time.Time) string {
	begin := "0s"
	if e := t.Elapsed(now); e > 0 {
		begin = "-" + strconv.FormatInt(e.Milliseconds(), 10) + "ms"
	}
	return fmt.Sprintf(`dur="%dms" begin="%s" fill="freeze" calcMode="spline" keyTimes="0;1" keySplines="%s"`,
		t.Duration.Milliseconds(), begin, easeSplines)
}

func writeAnimate(b *bufio.Writer, attr string, t Transition, now time.Time) {
	if !t.Running(now) {
		return
	}
	fmt.Fprintf(b, `<animate attributeName="%s" from="%s" to="%s" %s/>`, attr, num(t.From), num(t.To), timing(t, now))
}

func writeAnimateTranslate(b *bufio.Writer, t Transition, horizontal bool, now time.Time) {
	if !t.Running(now) {
		return
	}
	from, to := num(t.From)+" 0", num(t.To)+" 0"
	if !horizontal {
		from, to = "0 "+num(t.From), "0 "+num(t.To)
	}
	fmt.Fprintf(b, `<animateTransform attributeName="transform" type="translate" from="%s" to="%s" %s/>`, from, to, timing(t, now))
}

func writeFade(b *bufio.Writer, t Tick, now time.Time) {
	if !t.Exiting || !t.Pos.Running(now) {
		return
	}
	fmt.Fprintf(b, `<animate attributeName="opacity" from="1" to="0" %s/>`, timing(t.Pos, now))
}

// num prints a coordinate with at most four decimals
func num(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
