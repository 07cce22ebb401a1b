package platform

import (
	"context"
	"time"

	"github.com/spaghettifunk/primitives/engine/core"
)

// HeadlessPlatform drives frames from a ticker without any window. Input is
// injected with Click, Press and Resize.
type HeadlessPlatform struct {
	config *PlatformConfig
	events eventQueue
	inject chan queuedEvent
	frames uint64
}

func NewHeadless(bus *core.EventBus) *HeadlessPlatform {
	return &HeadlessPlatform{
		events: newEventQueue(bus),
		inject: make(chan queuedEvent, 64),
	}
}

func (p *HeadlessPlatform) Startup(config *PlatformConfig) error {
	p.config = config
	return nil
}

func (p *HeadlessPlatform) Run(ctx context.Context, frame FnFrame) error {
	var tick <-chan time.Time
	if p.config.Hz > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(p.config.Hz))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if p.config.MaxFrames > 0 && p.frames >= p.config.MaxFrames {
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
		}

		p.collect()
		p.events.drain(p)
		if err := frame(); err != nil {
			return err
		}
		p.frames++
	}
}

func (p *HeadlessPlatform) collect() {
	for {
		select {
		case e := <-p.inject:
			p.events.push(e.code, e.context)
		default:
			return
		}
	}
}

func (p *HeadlessPlatform) send(code core.SystemEventCode, context core.EventContext) {
	select {
	case p.inject <- queuedEvent{code: code, context: context}:
	default:
		core.LogWarn("headless platform: input queue full, dropping event %d", code)
	}
}

// Click queues a left button press at x, y for the next frame.
func (p *HeadlessPlatform) Click(x, y float64) {
	p.send(core.EVENT_CODE_BUTTON_PRESSED, core.EventContext{Button: core.BUTTON_LEFT, X: x, Y: y})
}

// Press queues a key press for the next frame.
func (p *HeadlessPlatform) Press(key core.KeyCode) {
	p.send(core.EVENT_CODE_KEY_PRESSED, core.EventContext{KeyCode: key})
}

// Resize queues a surface resize for the next frame.
func (p *HeadlessPlatform) Resize(width, height uint32) {
	p.config.Width, p.config.Height = width, height
	p.send(core.EVENT_CODE_RESIZED, core.EventContext{Width: width, Height: height})
}

// Frames is the number of frames run so far.
func (p *HeadlessPlatform) Frames() uint64 {
	return p.frames
}

func (p *HeadlessPlatform) FramebufferSize() (uint32, uint32) {
	return p.config.Width, p.config.Height
}

func (p *HeadlessPlatform) Alert(message string) {
	core.LogError("%s", message)
}

func (p *HeadlessPlatform) Shutdown() error {
	return nil
}
