//go:build js && wasm

package platform

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/spaghettifunk/primitives/engine/core"
)

// BrowserPlatform hosts the render loop in a page: frames are scheduled with
// requestAnimationFrame and input comes from DOM listeners.
type BrowserPlatform struct {
	config *PlatformConfig
	canvas js.Value
	events eventQueue
	funcs  []js.Func
}

func NewBrowser(bus *core.EventBus) *BrowserPlatform {
	return &BrowserPlatform{events: newEventQueue(bus)}
}

func (p *BrowserPlatform) listen(target js.Value, event string, fn func(this js.Value, args []js.Value) interface{}) {
	f := js.FuncOf(fn)
	p.funcs = append(p.funcs, f)
	target.Call("addEventListener", event, f)
}

func (p *BrowserPlatform) Startup(config *PlatformConfig) error {
	p.config = config
	document := js.Global().Get("document")

	canvas := document.Call("getElementById", config.CanvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return fmt.Errorf("%w: canvas %q not found", core.ErrNoGraphicsBackend, config.CanvasID)
	}
	p.canvas = canvas
	if canvas.Get("width").Int() == 0 {
		canvas.Set("width", config.Width)
		canvas.Set("height", config.Height)
	}

	if config.ButtonID != "" {
		button := document.Call("getElementById", config.ButtonID)
		if button.IsNull() || button.IsUndefined() {
			core.LogWarn("button %q not found, clicks are ignored", config.ButtonID)
		} else {
			p.listen(button, "click", func(this js.Value, args []js.Value) interface{} {
				p.events.push(core.EVENT_CODE_BUTTON_PRESSED, core.EventContext{Button: core.BUTTON_ELEMENT})
				return nil
			})
		}
	}

	p.listen(canvas, "mousedown", func(this js.Value, args []js.Value) interface{} {
		e := args[0]
		p.events.push(core.EVENT_CODE_BUTTON_PRESSED, core.EventContext{
			Button: translateDOMButton(e.Get("button").Int()),
			X:      e.Get("offsetX").Float(),
			Y:      e.Get("offsetY").Float(),
		})
		return nil
	})

	p.listen(document, "keydown", func(this js.Value, args []js.Value) interface{} {
		if code := translateDOMKey(args[0].Get("key").String()); code != core.KEY_UNKNOWN {
			p.events.push(core.EVENT_CODE_KEY_PRESSED, core.EventContext{KeyCode: code})
		}
		return nil
	})
	return nil
}

func translateDOMButton(button int) core.Button {
	switch button {
	case 1:
		return core.BUTTON_MIDDLE
	case 2:
		return core.BUTTON_RIGHT
	}
	return core.BUTTON_LEFT
}

func translateDOMKey(key string) core.KeyCode {
	switch key {
	case "Enter":
		return core.KEY_ENTER
	case "Escape":
		return core.KEY_ESCAPE
	case " ":
		return core.KEY_SPACE
	case "q", "Q":
		return core.KEY_Q
	}
	return core.KEY_UNKNOWN
}

func (p *BrowserPlatform) Run(ctx context.Context, frame FnFrame) error {
	done := make(chan error, 1)
	var tick js.Func
	tick = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		select {
		case <-ctx.Done():
			done <- nil
			return nil
		default:
		}

		p.events.drain(p)
		if err := frame(); err != nil {
			done <- err
			return nil
		}
		js.Global().Call("requestAnimationFrame", tick)
		return nil
	})
	defer tick.Release()

	js.Global().Call("requestAnimationFrame", tick)
	// The pending callback notices a cancelled ctx on its next run; waiting
	// for it keeps tick alive until then.
	return <-done
}

func (p *BrowserPlatform) FramebufferSize() (uint32, uint32) {
	return uint32(p.canvas.Get("width").Int()), uint32(p.canvas.Get("height").Int())
}

func (p *BrowserPlatform) Alert(message string) {
	js.Global().Call("alert", message)
}

func (p *BrowserPlatform) Shutdown() error {
	for _, f := range p.funcs {
		f.Release()
	}
	p.funcs = nil
	return nil
}
