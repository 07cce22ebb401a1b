//go:build !js

package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/primitives/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// GLFWPlatform is the desktop host. It opens a window with an OpenGL 4.1 core
// context current on the calling thread.
type GLFWPlatform struct {
	Window *glfw.Window
	events eventQueue
}

func NewGLFW(bus *core.EventBus) *GLFWPlatform {
	return &GLFWPlatform{events: newEventQueue(bus)}
}

func (p *GLFWPlatform) Startup(config *PlatformConfig) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return fmt.Errorf("%w: %s", core.ErrNoGraphicsBackend, err)
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	window, err := glfw.CreateWindow(int(config.Width), int(config.Height), config.ApplicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return fmt.Errorf("%w: %s", core.ErrNoGraphicsBackend, err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetCloseCallback(p.closeCallback)
	p.Window.SetPos(int(config.X), int(config.Y))
	p.Window.Show()

	return nil
}

func (p *GLFWPlatform) Run(ctx context.Context, frame FnFrame) error {
	for !p.Window.ShouldClose() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		glfw.PollEvents()
		p.events.drain(p)
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}

// SwapBuffers presents the back buffer; the OpenGL backend calls it at the
// end of every frame.
func (p *GLFWPlatform) SwapBuffers() {
	p.Window.SwapBuffers()
}

func (p *GLFWPlatform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

func (p *GLFWPlatform) Alert(message string) {
	core.LogError("%s", message)
}

func (p *GLFWPlatform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

func translateKey(key glfw.Key) core.KeyCode {
	switch key {
	case glfw.KeyEnter:
		return core.KEY_ENTER
	case glfw.KeyEscape:
		return core.KEY_ESCAPE
	case glfw.KeySpace:
		return core.KEY_SPACE
	case glfw.KeyQ:
		return core.KEY_Q
	}
	return core.KEY_UNKNOWN
}

func translateButton(button glfw.MouseButton) core.Button {
	switch button {
	case glfw.MouseButtonRight:
		return core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		return core.BUTTON_MIDDLE
	}
	return core.BUTTON_LEFT
}

func (p *GLFWPlatform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code := translateKey(key)
	if code == core.KEY_UNKNOWN {
		return
	}
	switch action {
	case glfw.Press:
		p.events.push(core.EVENT_CODE_KEY_PRESSED, core.EventContext{KeyCode: code})
	case glfw.Release:
		p.events.push(core.EVENT_CODE_KEY_RELEASED, core.EventContext{KeyCode: code})
	}
}

func (p *GLFWPlatform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	x, y := w.GetCursorPos()
	ctx := core.EventContext{Button: translateButton(button), X: x, Y: y}
	switch action {
	case glfw.Press:
		p.events.push(core.EVENT_CODE_BUTTON_PRESSED, ctx)
	case glfw.Release:
		p.events.push(core.EVENT_CODE_BUTTON_RELEASED, ctx)
	}
}

func (p *GLFWPlatform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.events.push(core.EVENT_CODE_RESIZED, core.EventContext{Width: uint32(width), Height: uint32(height)})
}

func (p *GLFWPlatform) closeCallback(w *glfw.Window) {
	p.events.push(core.EVENT_CODE_APPLICATION_QUIT, core.EventContext{})
}
