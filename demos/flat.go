package demos

import (
	"slices"
	"time"

	"github.com/spaghettifunk/primitives/engine"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/math"
	"github.com/spaghettifunk/primitives/engine/renderer"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

const flatShader = "flat"

// flatDemo draws one 2D primitive straight in clip space. Depth testing and
// culling are off: the hexagon rim is wound clockwise.
type flatDemo struct {
	*engine.Game

	name        string
	config      engine.FlatConfig
	build       func(size float32, color geometry.Color) geometry.Mesh
	renderState metadata.RenderState

	program  *metadata.Program
	geometry *metadata.Geometry
}

func newFlatDemo(config *engine.ApplicationConfig, name string, flat engine.FlatConfig, build func(float32, geometry.Color) geometry.Mesh) *flatDemo {
	d := &flatDemo{
		Game:   &engine.Game{ApplicationConfig: config},
		name:   name,
		config: flat,
		build:  build,
		renderState: metadata.RenderState{
			ClearColor: metadata.ClearColor(flat.ClearColor),
			CullMode:   metadata.FaceCullModeNone,
		},
	}
	d.FnInitialize = d.Initialize
	d.FnUpdate = d.Update
	d.FnRender = d.Render
	d.FnReloadShader = d.ReloadShader
	d.FnShutdown = d.Shutdown
	return d
}

func NewHexagon(config *engine.ApplicationConfig) (*engine.Game, error) {
	return newFlatDemo(config, "hexagon", config.Hexagon, geometry.Hexagon).Game, nil
}

func (d *flatDemo) Initialize() (engine.FrameState, error) {
	core.LogDebug("%s demo Initialize fn....", d.name)

	source, err := d.Assets.LoadShader(flatShader, d.Renderer.Dialect())
	if err != nil {
		return engine.FrameState{}, err
	}
	d.program = d.Renderer.CreateProgram(source)

	color := geometry.Color(d.config.Color)
	d.geometry, err = d.Renderer.CreateGeometry(d.name, d.build(d.config.Size, color))
	if err != nil {
		return engine.FrameState{}, err
	}
	d.Renderer.BindAttributes(d.program, d.geometry)

	transform := math.NewIdentityTransform()
	d.Renderer.SetCamera(d.program, transform)
	return engine.FrameState{Transform: transform, Color: color}, nil
}

func (d *flatDemo) Update(state engine.FrameState, now time.Duration) (engine.FrameState, error) {
	return state, nil
}

func (d *flatDemo) Render(state engine.FrameState, packet *renderer.RenderPacket) error {
	packet.State = &d.renderState
	packet.Program = d.program
	packet.Geometry = d.geometry
	return nil
}

func (d *flatDemo) ReloadShader(names []string) error {
	if !slices.Contains(names, flatShader) {
		return nil
	}
	source, err := d.Assets.LoadShader(flatShader, d.Renderer.Dialect())
	if err != nil {
		return err
	}
	d.program = d.Renderer.ReplaceProgram(d.program, source)
	d.Renderer.BindAttributes(d.program, d.geometry)
	d.Renderer.SetCamera(d.program, math.NewIdentityTransform())
	return nil
}

func (d *flatDemo) Shutdown() error {
	d.Renderer.DestroyGeometry(d.geometry)
	d.Renderer.DestroyProgram(d.program)
	return nil
}
