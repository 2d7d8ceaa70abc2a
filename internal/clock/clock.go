package clock

import (
	"math"
	"time"
)

// Loop period bounds in seconds. Values outside are clamped, not rejected.
const (
	MinPeriod = 8.0
	MaxPeriod = 60.0
)

// ClampPeriod brings a loop period into the supported [MinPeriod, MaxPeriod]
// range. NaN collapses to MinPeriod.
func ClampPeriod(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < MinPeriod {
		return MinPeriod
	}
	if seconds > MaxPeriod {
		return MaxPeriod
	}
	return seconds
}

// LoopClock maps wall-clock time onto a bounded loop. Elapsed time is always
// recomputed from an absolute origin timestamp, never accumulated per frame,
// so arbitrarily long runtimes do not drift.
type LoopClock struct {
	origin   time.Time
	period   float64
	paused   bool
	pausedAt float64 // elapsed seconds frozen by Pause

	now func() time.Time
}

// NewLoopClock creates a paused clock with the given loop period (clamped).
// Call Resume (or engine Start) to begin advancing.
func NewLoopClock(periodSeconds float64) *LoopClock {
	c := &LoopClock{
		period: ClampPeriod(periodSeconds),
		paused: true,
		now:    time.Now,
	}
	c.origin = c.now()
	return c
}

// SetPeriod changes the loop period, clamped to [MinPeriod, MaxPeriod].
// Takes effect immediately: the next CurrentLoopTime call reads the new
// modulus, with no smoothing of the transition.
func (c *LoopClock) SetPeriod(seconds float64) {
	c.period = ClampPeriod(seconds)
}

// Period returns the effective loop period in seconds.
func (c *LoopClock) Period() float64 {
	return c.period
}

// Elapsed returns seconds since the origin, frozen while paused.
func (c *LoopClock) Elapsed() float64 {
	if c.paused {
		return c.pausedAt
	}
	return c.now().Sub(c.origin).Seconds()
}

// CurrentLoopTime returns Elapsed modulo the period, always in [0, period).
func (c *LoopClock) CurrentLoopTime() float64 {
	t := math.Mod(c.Elapsed(), c.period)
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	return t
}

// Pause freezes elapsed time at its current value. Idempotent.
func (c *LoopClock) Pause() {
	if c.paused {
		return
	}
	c.pausedAt = c.now().Sub(c.origin).Seconds()
	c.paused = true
}

// Resume unfreezes the clock. The elapsed value at the moment of Pause is
// preserved exactly, regardless of how long the pause lasted.
func (c *LoopClock) Resume() {
	if !c.paused {
		return
	}
	c.origin = c.now().Add(-time.Duration(c.pausedAt * float64(time.Second)))
	c.paused = false
}

// Paused reports whether the clock is currently frozen.
func (c *LoopClock) Paused() bool {
	return c.paused
}

// Reset returns elapsed time to zero, keeping the paused state.
func (c *LoopClock) Reset() {
	c.origin = c.now()
	c.pausedAt = 0
}
