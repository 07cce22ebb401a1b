// Package platform hosts the render loop: it owns the window (or canvas),
// turns host input into core events and calls the frame function once per
// animation frame.
package platform

import (
	"context"

	"github.com/spaghettifunk/primitives/engine/containers"
	"github.com/spaghettifunk/primitives/engine/core"
)

type PlatformConfig struct {
	ApplicationName string
	X, Y            int32
	Width, Height   uint32
	// Browser only.
	CanvasID string
	ButtonID string
	// Headless only. Hz of zero runs frames back to back; MaxFrames of zero
	// never stops on its own.
	Hz        int
	MaxFrames uint64
}

// FnFrame draws one frame. A returned error stops Run.
type FnFrame func() error

type Platform interface {
	// Startup creates the drawing surface. Returns core.ErrNoGraphicsBackend
	// when the host has none.
	Startup(config *PlatformConfig) error
	// Run calls frame once per host animation frame until the host closes,
	// ctx is cancelled or frame fails.
	Run(ctx context.Context, frame FnFrame) error
	Shutdown() error
	// FramebufferSize is the drawable size in pixels.
	FramebufferSize() (width, height uint32)
	// Alert shows a message the user cannot miss.
	Alert(message string)
}

// queuedEvent is input captured by a host callback and fired on the bus at
// the start of the next frame.
type queuedEvent struct {
	code    core.SystemEventCode
	context core.EventContext
}

// maxQueuedEvents bounds the input captured between two frames.
const maxQueuedEvents = 256

type eventQueue struct {
	bus     *core.EventBus
	pending *containers.RingQueue[queuedEvent]
}

func newEventQueue(bus *core.EventBus) eventQueue {
	return eventQueue{bus: bus, pending: containers.NewRingQueue[queuedEvent](maxQueuedEvents)}
}

func (q *eventQueue) push(code core.SystemEventCode, context core.EventContext) {
	if err := q.pending.Enqueue(queuedEvent{code: code, context: context}); err != nil {
		core.LogWarn("dropping event %d: %s", code, err)
	}
}

func (q *eventQueue) drain(sender interface{}) {
	for !q.pending.IsEmpty() {
		e, _ := q.pending.Dequeue()
		if q.bus != nil {
			q.bus.Fire(e.code, sender, e.context)
		}
	}
}
