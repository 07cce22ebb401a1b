package core

import "time"

// Clock measures monotonic time since Start. The zero value is a stopped clock.
type Clock struct {
	now       func() time.Time
	startTime time.Time
	elapsed   time.Duration
	running   bool
}

func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockWithSource builds a clock reading time from now, used by hosts that
// drive frames from their own timestamps and by tests.
func NewClockWithSource(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = c.now().Sub(c.startTime)
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	if c.now == nil {
		c.now = time.Now
	}
	c.startTime = c.now()
	c.elapsed = 0
	c.running = true
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

func (c *Clock) Running() bool {
	return c.running
}

func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}
