package marathon

import "time"

// Clock measures frame timing for the time uniforms.
//
// The first Tick starts the clock at frame 0 with zero elapsed and delta
// time. Each later Tick advances the frame index by one.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time

	started bool
	frame   int64
	elapsed float64
	delta   float64
}

// NewClock returns a clock reading now. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Tick starts a new frame.
func (c *Clock) Tick() {
	t := c.now()
	if !c.started {
		c.started = true
		c.start = t
		c.last = t
		c.frame = 0
		c.elapsed = 0
		c.delta = 0
		return
	}
	c.frame++
	c.delta = t.Sub(c.last).Seconds()
	c.elapsed = t.Sub(c.start).Seconds()
	c.last = t
}

// Time returns the seconds elapsed between the first and the latest Tick.
func (c *Clock) Time() float64 { return c.elapsed }

// Delta returns the seconds between the two latest Ticks.
func (c *Clock) Delta() float64 { return c.delta }

// FrameIndex returns the index of the current frame.
func (c *Clock) FrameIndex() int64 { return c.frame }

// FPS returns the frame rate implied by the latest delta, or 0 before two
// ticks.
func (c *Clock) FPS() float64 {
	if c.delta <= 0 {
		return 0
	}
	return 1 / c.delta
}
