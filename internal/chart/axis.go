package chart

import (
	"time"

	"datajournal/internal/formatter"
	"datajournal/internal/scale"
)

// Orientation says which side of the plot an axis is drawn on
type Orientation string

const (
	OrientBottom Orientation = "bottom"
	OrientLeft   Orientation = "left"
)

const (
	tickSize    = 6
	tickPadding = 3
)

// Tick is one labelled mark on an axis
type Tick struct {
	Value float64
	Label string
	Pos   Transition
	// Exiting ticks belong to the previous scale and fade out
	Exiting bool
}

// AxisHandle is the rendered state of one axis
type AxisHandle struct {
	Orient Orientation
	Scale  scale.Linear
	Ticks  []Tick
}

// RenderAxis lays out the ticks of s. With a previous handle every tick
// animates over TransitionDuration: surviving ticks continue from where they
// are, entering ticks start where the old scale would have put them and
// ticks that disappear slide to their new-scale position while fading.
func RenderAxis(orient Orientation, s scale.Linear, prev *AxisHandle, now time.Time) *AxisHandle {
	values := s.Ticks(scale.DefaultTickCount)
	format := formatter.NewTickFormatter(s.TickStep(scale.DefaultTickCount))

	h := &AxisHandle{Orient: orient, Scale: s, Ticks: make([]Tick, 0, len(values))}

	var old map[float64]Tick
	if prev != nil {
		old = make(map[float64]Tick, len(prev.Ticks))
		for _, t := range prev.Ticks {
			if !t.Exiting {
				old[t.Value] = t
			}
		}
	}

	for _, v := range values {
		target := s.Map(v)
		tick := Tick{Value: v, Label: format.Format(v), Pos: Fixed(target)}
		if prev != nil {
			start := Fixed(prev.Scale.Map(v))
			if existing, ok := old[v]; ok {
				start = existing.Pos
				delete(old, v)
			}
			tick.Pos = start.Retarget(target, now)
		}
		h.Ticks = append(h.Ticks, tick)
	}

	if prev != nil {
		for _, t := range prev.Ticks {
			if _, leaving := old[t.Value]; !leaving || t.Exiting {
				continue
			}
			t.Exiting = true
			t.Pos = t.Pos.Retarget(s.Map(t.Value), now)
			h.Ticks = append(h.Ticks, t)
		}
	}
	return h
}

// Clone returns a deep copy safe to hand to a renderer
func (h *AxisHandle) Clone() AxisHandle {
	if h == nil {
		return AxisHandle{}
	}
	c := *h
	c.Ticks = append([]Tick(nil), h.Ticks...)
	return c
}
