package chart

import (
	"math"
	"time"
)

// TransitionDuration is how long every axis, marker and label animation runs
const TransitionDuration = 1000 * time.Millisecond

// Transition animates one numeric visual property from From to To. Nothing
// cancels a transition: retargeting starts a new one from wherever the old
// one currently is, so the last request always decides the final value.
type Transition struct {
	From     float64
	To       float64
	Start    time.Time
	Duration time.Duration
}

// Fixed is a property that is not animating
func Fixed(v float64) Transition {
	return Transition{From: v, To: v}
}

// At returns the property value at time now using cubic in-out easing
func (t Transition) At(now time.Time) float64 {
	p := t.Progress(now)
	if p >= 1 {
		return t.To
	}
	return t.From + (t.To-t.From)*easeCubicInOut(p)
}

// Progress is the fraction of the duration elapsed at now, clamped to [0, 1]
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	return math.Max(0, math.Min(1, p))
}

// Running reports whether the value is still changing at now
func (t Transition) Running(now time.Time) bool {
	return t.From != t.To && t.Progress(now) < 1
}

// Elapsed is how far into the animation now is
func (t Transition) Elapsed(now time.Time) time.Duration {
	d := now.Sub(t.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Retarget starts a fresh transition towards to from the current value
func (t Transition) Retarget(to float64, now time.Time) Transition {
	return Transition{
		From:     t.At(now),
		To:       to,
		Start:    now,
		Duration: TransitionDuration,
	}
}

func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
