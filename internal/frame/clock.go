package frame

import "time"

// Clock converts wall time into elapsed seconds at the edge of the frame loop,
// so everything downstream takes t as a plain argument.
type Clock struct {
	now    func() time.Time
	start  time.Time
	paused bool
	held   float64
}

// NewClock starts a clock at the current time.
func NewClock() *Clock {
	return newClock(time.Now)
}

func newClock(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns seconds since start, frozen while paused.
func (c *Clock) Elapsed() float64 {
	if c.paused {
		return c.held
	}
	return c.now().Sub(c.start).Seconds()
}

// TogglePause freezes or resumes the clock without a jump in Elapsed.
func (c *Clock) TogglePause() {
	if c.paused {
		c.start = c.now().Add(-time.Duration(c.held * float64(time.Second)))
		c.paused = false
		return
	}
	c.held = c.Elapsed()
	c.paused = true
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool { return c.paused }

// Reset restarts the clock at zero.
func (c *Clock) Reset() {
	c.start = c.now()
	c.held = 0
}
