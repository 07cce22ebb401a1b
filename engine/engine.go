package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spaghettifunk/primitives/engine/assets"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/platform"
	"github.com/spaghettifunk/primitives/engine/renderer"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every resource
	EngineStageShutdown
)

type Engine struct {
	SessionID string

	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig
	rendererType metadata.RendererType
	platform     platform.Platform
	renderer     *renderer.Renderer
	assetManager *assets.AssetManager
	events       *core.EventBus
	clock        *core.Clock
	metrics      *core.FrameMetrics
	state        FrameState
	width        uint32
	height       uint32
	isSuspended  bool
	lastTime     time.Duration
	lastReport   time.Duration
	cancel       context.CancelFunc
}

type Option func(*Engine)

// WithHost replaces the platform and backend picked from the configuration.
func WithHost(p platform.Platform, b renderer.RendererBackend) Option {
	return func(e *Engine) {
		e.platform = p
		e.renderer = renderer.New(b)
	}
}

// WithClock makes the engine read frame times from now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.clock = core.NewClockWithSource(now)
	}
}

// WithEventBus shares bus with the engine, so that a host built outside of
// the engine can fire into it.
func WithEventBus(bus *core.EventBus) Option {
	return func(e *Engine) {
		e.events = bus
	}
}

func New(g *Game, opts ...Option) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	config := g.ApplicationConfig
	if err := config.Validate(); err != nil {
		return nil, err
	}

	rt := DefaultRendererType()
	if config.Renderer != "" {
		parsed, ok := metadata.ParseRendererType(config.Renderer)
		if !ok {
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownRenderer, config.Renderer)
		}
		rt = parsed
	}

	e := &Engine{
		SessionID:    uuid.NewString(),
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		config:       config,
		rendererType: rt,
		assetManager: assets.NewAssetManager(config.ShaderDir),
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
		width:        config.StartWidth,
		height:       config.StartHeight,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.events == nil {
		e.events = core.NewEventBus()
	}
	if e.platform == nil {
		p, b, err := newHost(rt, e.events)
		if err != nil {
			return nil, err
		}
		e.platform = p
		e.renderer = renderer.New(b)
	}

	g.Renderer = e.renderer
	g.Assets = e.assetManager
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	level, err := core.ParseLogLevel(e.config.LogLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)
	core.LogInfo("session %s: %s demo on the %s renderer", e.SessionID, e.config.Demo, e.rendererType)

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_KEY_RELEASED, e, e.onKey)
	e.events.Register(core.EVENT_CODE_BUTTON_PRESSED, e, e.onButton)
	e.events.Register(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(&platform.PlatformConfig{
		ApplicationName: e.config.Name,
		X:               e.config.StartPosX,
		Y:               e.config.StartPosY,
		Width:           e.config.StartWidth,
		Height:          e.config.StartHeight,
		CanvasID:        e.config.CanvasID,
		ButtonID:        e.config.ButtonID,
		Hz:              e.config.Headless.Hz,
		MaxFrames:       e.config.Headless.Frames,
	}); err != nil {
		e.platform.Alert(fmt.Sprintf("Unable to start %s: %s", e.config.Name, err))
		return err
	}

	if w, h := e.platform.FramebufferSize(); w > 0 && h > 0 {
		e.width, e.height = w, h
	}
	if err := e.renderer.Initialize(&metadata.RendererBackendConfig{
		ApplicationName: e.config.Name,
		Width:           e.width,
		Height:          e.height,
		CanvasID:        e.config.CanvasID,
	}); err != nil {
		if errors.Is(err, core.ErrNoGraphicsBackend) {
			e.platform.Alert("This browser or machine does not support the graphics API needed to run the demo.")
		}
		return err
	}

	if err := e.assetManager.Initialize(e.config.HotReload); err != nil {
		core.LogWarn("shader hot reload disabled: %s", err)
	}

	state, err := e.gameInstance.FnInitialize()
	if err != nil {
		return err
	}
	e.state = state

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives frames until the host closes, a quit event fires, ctx is
// cancelled or a game callback fails.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return core.ErrNotInitialized
	}
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	defer cancel()

	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	err := e.platform.Run(ctx, e.frame)
	e.clock.Stop()
	e.currentStage = EngineStageInitialized
	core.LogInfo("loop stopped after %d frames", e.metrics.TotalFrames())
	return err
}

func (e *Engine) frame() error {
	if names := e.assetManager.Changed(); len(names) > 0 && e.gameInstance.FnReloadShader != nil {
		core.LogInfo("shaders changed: %v", names)
		if err := e.gameInstance.FnReloadShader(names); err != nil {
			core.LogError("shader reload failed: %s", err)
		}
	}
	if e.isSuspended {
		return nil
	}

	// Update clock and get delta time.
	e.clock.Update()
	now := e.clock.Elapsed()
	delta := now - e.lastTime

	state, err := e.gameInstance.FnUpdate(e.state, now)
	if err != nil {
		core.LogError("Game update failed, shutting down: %s", err)
		return err
	}
	state.Now = now

	packet := &renderer.RenderPacket{DeltaTime: delta}
	if err := e.gameInstance.FnRender(state, packet); err != nil {
		core.LogError("Game render failed, shutting down: %s", err)
		return err
	}
	if err := e.renderer.DrawFrame(packet); err != nil {
		if errors.Is(err, core.ErrNotInitialized) {
			return err
		}
		// Backend errors are reported and the next frame tries again.
		core.LogWarn("frame %d: %s", state.Frame, err)
	}

	state.Frame++
	e.state = state
	e.metrics.Update(delta)
	e.lastTime = now
	if now-e.lastReport >= 5*time.Second {
		fps, ms := e.metrics.Frame()
		core.LogDebug("%.0f fps, %.2f ms/frame", fps, ms)
		e.lastReport = now
	}
	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs,
		e.assetManager.Shutdown(),
		e.renderer.Shutdown(),
		e.platform.Shutdown(),
	)
	e.events.Shutdown()
	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// State returns the frame state after the last completed frame.
func (e *Engine) State() FrameState {
	return e.state
}

func (e *Engine) Metrics() *core.FrameMetrics {
	return e.metrics
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code == core.EVENT_CODE_APPLICATION_QUIT {
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		if e.cancel != nil {
			e.cancel()
		}
		return true
	}
	return false
}

func (e *Engine) onKey(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code != core.EVENT_CODE_KEY_PRESSED {
		return false
	}
	switch data.KeyCode {
	case core.KEY_ESCAPE, core.KEY_Q:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EVENT_CODE_APPLICATION_QUIT, e, core.EventContext{})
		return true
	case core.KEY_SPACE, core.KEY_ENTER:
		// The keyboard stands in for the page button on desktop hosts.
		return e.click(core.EventContext{Button: core.BUTTON_ELEMENT})
	}
	return false
}

func (e *Engine) onButton(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if data.Button != core.BUTTON_LEFT && data.Button != core.BUTTON_ELEMENT {
		return false
	}
	return e.click(data)
}

func (e *Engine) click(data core.EventContext) bool {
	if e.gameInstance.FnOnClick == nil {
		return false
	}
	state, err := e.gameInstance.FnOnClick(e.state, data)
	if err != nil {
		core.LogError("click handler failed: %s", err)
		return true
	}
	e.state = state
	return true
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	width, height := data.Width, data.Height
	if width == e.width && height == e.height {
		return false
	}
	e.width, e.height = width, height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return true
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError("%s", err)
	}
	if e.gameInstance.FnOnResize != nil {
		state, err := e.gameInstance.FnOnResize(e.state, width, height)
		if err != nil {
			core.LogError("resize handler failed: %s", err)
			return true
		}
		e.state = state
	}
	return true
}
