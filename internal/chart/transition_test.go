package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransitionAt(t *testing.T) {
	start := time.Unix(100, 0)
	tr := Transition{From: 0, To: 100, Start: start, Duration: TransitionDuration}

	assert.Equal(t, 0.0, tr.At(start))
	assert.InDelta(t, 50, tr.At(start.Add(500*time.Millisecond)), 1e-9)
	assert.Equal(t, 100.0, tr.At(start.Add(TransitionDuration)))
	assert.Equal(t, 100.0, tr.At(start.Add(time.Hour)))
	assert.Equal(t, 0.0, tr.At(start.Add(-time.Second)))

	quarter := tr.At(start.Add(250 * time.Millisecond))
	assert.Less(t, quarter, 25.0, "eases in")
}

func TestTransitionRunning(t *testing.T) {
	start := time.Unix(100, 0)
	tr := Transition{From: 1, To: 2, Start: start, Duration: TransitionDuration}
	assert.True(t, tr.Running(start))
	assert.False(t, tr.Running(start.Add(TransitionDuration)))
	assert.False(t, Fixed(3).Running(start))
	assert.Equal(t, 3.0, Fixed(3).At(start))
}

func TestTransitionRetargetMidFlight(t *testing.T) {
	start := time.Unix(100, 0)
	tr := Fixed(0).Retarget(100, start)
	mid := start.Add(500 * time.Millisecond)

	next := tr.Retarget(-40, mid)
	assert.InDelta(t, 50, next.From, 1e-9)
	assert.Equal(t, -40.0, next.To)
	assert.Equal(t, mid, next.Start)
	assert.Equal(t, -40.0, next.At(mid.Add(TransitionDuration)), "last request wins")
}
