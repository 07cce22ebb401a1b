package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameMetrics_Average(t *testing.T) {
	m := NewFrameMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(10 * time.Millisecond)
	}
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)
	assert.Equal(t, uint64(AVG_COUNT), m.TotalFrames())
}

func TestFrameMetrics_FPS(t *testing.T) {
	m := NewFrameMetrics()
	// 50 frames of 20ms fill exactly one second.
	for i := 0; i < 50; i++ {
		m.Update(20 * time.Millisecond)
	}
	fps, _ := m.Frame()
	assert.InDelta(t, 50.0, fps, 1e-9)
	assert.Equal(t, fps, m.FPS())
}
