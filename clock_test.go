package marathon

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(seconds float64) {
	c.t = c.t.Add(time.Duration(seconds * float64(time.Second)))
}

func TestClockFirstTick(t *testing.T) {
	fc := &fakeClock{t: time.Unix(100, 0)}
	c := NewClock(fc.now)
	c.Tick()
	if c.FrameIndex() != 0 || c.Time() != 0 || c.Delta() != 0 {
		t.Errorf("first tick: frame=%d time=%v delta=%v", c.FrameIndex(), c.Time(), c.Delta())
	}
	if c.FPS() != 0 {
		t.Errorf("FPS() = %v before two ticks", c.FPS())
	}
}

func TestClockAdvances(t *testing.T) {
	fc := &fakeClock{}
	c := NewClock(fc.now)
	c.Tick()
	fc.advance(0.25)
	c.Tick()
	fc.advance(0.5)
	c.Tick()

	if c.FrameIndex() != 2 {
		t.Errorf("FrameIndex() = %d, want 2", c.FrameIndex())
	}
	if c.Time() != 0.75 {
		t.Errorf("Time() = %v, want 0.75", c.Time())
	}
	if c.Delta() != 0.5 {
		t.Errorf("Delta() = %v, want 0.5", c.Delta())
	}
	if c.FPS() != 2 {
		t.Errorf("FPS() = %v, want 2", c.FPS())
	}
}

func TestNewClockDefaultsToWallTime(t *testing.T) {
	c := NewClock(nil)
	c.Tick()
	c.Tick()
	if c.Delta() < 0 {
		t.Errorf("Delta() = %v", c.Delta())
	}
}
