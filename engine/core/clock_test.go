package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClock_UpdateBeforeStart(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := NewClockWithSource(ft.now)

	ft.advance(time.Second)
	c.Update()
	assert.Zero(t, c.Elapsed())
	assert.False(t, c.Running())
}

func TestClock_Elapsed(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := NewClockWithSource(ft.now)
	c.Start()

	ft.advance(1500 * time.Millisecond)
	c.Update()
	assert.Equal(t, 1500*time.Millisecond, c.Elapsed())

	c.Stop()
	ft.advance(time.Second)
	c.Update()
	assert.Equal(t, 1500*time.Millisecond, c.Elapsed(), "stopping keeps the last elapsed value")

	c.Start()
	assert.Zero(t, c.Elapsed(), "restarting resets elapsed time")
}

func TestClock_ZeroValueStart(t *testing.T) {
	var c Clock
	c.Start()
	c.Update()
	assert.True(t, c.Running())
	assert.GreaterOrEqual(t, c.Elapsed(), time.Duration(0))
}
