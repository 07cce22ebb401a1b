package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Platform = (*HeadlessPlatform)(nil)

func TestHeadless_StopsAtMaxFrames(t *testing.T) {
	p := NewHeadless(core.NewEventBus())
	require.NoError(t, p.Startup(&PlatformConfig{Width: 10, Height: 20, MaxFrames: 5}))

	calls := 0
	require.NoError(t, p.Run(context.Background(), func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 5, calls)
	assert.EqualValues(t, 5, p.Frames())

	w, h := p.FramebufferSize()
	assert.EqualValues(t, 10, w)
	assert.EqualValues(t, 20, h)
}

func TestHeadless_StopsOnCancel(t *testing.T) {
	p := NewHeadless(core.NewEventBus())
	require.NoError(t, p.Startup(&PlatformConfig{Hz: 1000}))

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := p.Run(ctx, func() error {
		calls++
		if calls == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestHeadless_FrameErrorStopsRun(t *testing.T) {
	p := NewHeadless(core.NewEventBus())
	require.NoError(t, p.Startup(&PlatformConfig{}))

	boom := errors.New("boom")
	err := p.Run(context.Background(), func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, p.Frames())
}

func TestHeadless_TickerPacesFrames(t *testing.T) {
	p := NewHeadless(core.NewEventBus())
	require.NoError(t, p.Startup(&PlatformConfig{Hz: 100, MaxFrames: 3}))

	start := time.Now()
	require.NoError(t, p.Run(context.Background(), func() error { return nil }))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)
}

func TestHeadless_InputIsDeliveredAtFrameStart(t *testing.T) {
	bus := core.NewEventBus()
	p := NewHeadless(bus)
	require.NoError(t, p.Startup(&PlatformConfig{Width: 4, Height: 4, MaxFrames: 3}))

	var got []core.SystemEventCode
	var clickX float64
	record := func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
		got = append(got, code)
		if code == core.EVENT_CODE_BUTTON_PRESSED {
			clickX = data.X
		}
		return false
	}
	for _, code := range []core.SystemEventCode{core.EVENT_CODE_BUTTON_PRESSED, core.EVENT_CODE_KEY_PRESSED, core.EVENT_CODE_RESIZED} {
		require.True(t, bus.Register(code, t, record))
	}

	frame := 0
	require.NoError(t, p.Run(context.Background(), func() error {
		frame++
		switch frame {
		case 1:
			assert.Empty(t, got)
			p.Click(3, 1)
		case 2:
			assert.Equal(t, []core.SystemEventCode{core.EVENT_CODE_BUTTON_PRESSED}, got)
			p.Press(core.KEY_SPACE)
			p.Resize(8, 6)
		case 3:
			assert.Len(t, got, 3)
		}
		return nil
	}))
	assert.Equal(t, float64(3), clickX)

	w, h := p.FramebufferSize()
	assert.EqualValues(t, 8, w)
	assert.EqualValues(t, 6, h)
}
