package platform

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spaghettifunk/primitives/engine/core"
)

// EbitenPlatform hosts the software renderer in an ebiten window. Ebiten owns
// the loop: the frame function runs inside Draw.
type EbitenPlatform struct {
	// OnDraw receives the screen before the frame function runs.
	OnDraw func(screen *ebiten.Image)

	config *PlatformConfig
	events eventQueue
}

func NewEbiten(bus *core.EventBus) *EbitenPlatform {
	return &EbitenPlatform{events: newEventQueue(bus)}
}

func (p *EbitenPlatform) Startup(config *PlatformConfig) error {
	p.config = config
	ebiten.SetWindowTitle(config.ApplicationName)
	ebiten.SetWindowSize(int(config.Width), int(config.Height))
	ebiten.SetWindowPosition(int(config.X), int(config.Y))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return nil
}

type ebitenGame struct {
	p      *EbitenPlatform
	ctx    context.Context
	frame  FnFrame
	err    error
	width  int
	height int
}

func (g *ebitenGame) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if g.err != nil {
		return g.err
	}

	q := &g.p.events
	for _, key := range []struct {
		k    ebiten.Key
		code core.KeyCode
	}{
		{ebiten.KeyEscape, core.KEY_ESCAPE},
		{ebiten.KeySpace, core.KEY_SPACE},
		{ebiten.KeyEnter, core.KEY_ENTER},
		{ebiten.KeyQ, core.KEY_Q},
	} {
		if inpututil.IsKeyJustPressed(key.k) {
			q.push(core.EVENT_CODE_KEY_PRESSED, core.EventContext{KeyCode: key.code})
		}
		if inpututil.IsKeyJustReleased(key.k) {
			q.push(core.EVENT_CODE_KEY_RELEASED, core.EventContext{KeyCode: key.code})
		}
	}

	x, y := ebiten.CursorPosition()
	for _, b := range []struct {
		mb     ebiten.MouseButton
		button core.Button
	}{
		{ebiten.MouseButtonLeft, core.BUTTON_LEFT},
		{ebiten.MouseButtonRight, core.BUTTON_RIGHT},
		{ebiten.MouseButtonMiddle, core.BUTTON_MIDDLE},
	} {
		ctx := core.EventContext{Button: b.button, X: float64(x), Y: float64(y)}
		if inpututil.IsMouseButtonJustPressed(b.mb) {
			q.push(core.EVENT_CODE_BUTTON_PRESSED, ctx)
		}
		if inpututil.IsMouseButtonJustReleased(b.mb) {
			q.push(core.EVENT_CODE_BUTTON_RELEASED, ctx)
		}
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	if g.err != nil {
		return
	}
	g.p.events.drain(g.p)
	if g.p.OnDraw != nil {
		g.p.OnDraw(screen)
	}
	g.err = g.frame()
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.p.config.Width, g.p.config.Height = uint32(outsideWidth), uint32(outsideHeight)
		g.p.events.push(core.EVENT_CODE_RESIZED, core.EventContext{Width: uint32(outsideWidth), Height: uint32(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

func (p *EbitenPlatform) Run(ctx context.Context, frame FnFrame) error {
	g := &ebitenGame{
		p:      p,
		ctx:    ctx,
		frame:  frame,
		width:  int(p.config.Width),
		height: int(p.config.Height),
	}
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (p *EbitenPlatform) FramebufferSize() (uint32, uint32) {
	return p.config.Width, p.config.Height
}

func (p *EbitenPlatform) Alert(message string) {
	core.LogError("%s", message)
}

func (p *EbitenPlatform) Shutdown() error {
	return nil
}
