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

const cubeShader = "cube"

type CubeDemo struct {
	*engine.Game

	camera      math.Camera
	rotation    math.Rotation
	renderState metadata.RenderState

	program  *metadata.Program
	geometry *metadata.Geometry
	// camera matrices last pushed with SetCamera
	transform math.TransformState
}

func NewCube(config *engine.ApplicationConfig) (*engine.Game, error) {
	d := &CubeDemo{
		Game:     &engine.Game{ApplicationConfig: config},
		camera:   config.CameraSettings(),
		rotation: config.RotationSettings(),
		renderState: metadata.RenderState{
			ClearColor: metadata.ClearColor(config.Cube.ClearColor),
			DepthTest:  true,
			CullMode:   metadata.FaceCullModeBack,
		},
	}

	d.FnInitialize = d.Initialize
	d.FnUpdate = d.Update
	d.FnRender = d.Render
	d.FnOnResize = d.OnResize
	d.FnReloadShader = d.ReloadShader
	d.FnShutdown = d.Shutdown

	return d.Game, nil
}

func (d *CubeDemo) Initialize() (engine.FrameState, error) {
	core.LogDebug("CubeDemo Initialize fn....")

	source, err := d.Assets.LoadShader(cubeShader, d.Renderer.Dialect())
	if err != nil {
		return engine.FrameState{}, err
	}
	d.program = d.Renderer.CreateProgram(source)

	mesh := geometry.GenerateCube(d.ApplicationConfig.Cube.EdgeLength, d.ApplicationConfig.CubeFaceColors())
	d.geometry, err = d.Renderer.CreateGeometry("cube", mesh)
	if err != nil {
		return engine.FrameState{}, err
	}
	d.Renderer.BindAttributes(d.program, d.geometry)

	d.transform = math.NewTransformState(d.camera, d.Renderer.AspectRatio())
	d.Renderer.SetCamera(d.program, d.transform)

	return engine.FrameState{Transform: d.transform}, nil
}

func (d *CubeDemo) Update(state engine.FrameState, now time.Duration) (engine.FrameState, error) {
	state.Transform = state.Transform.Advance(d.rotation, now)
	return state, nil
}

func (d *CubeDemo) Render(state engine.FrameState, packet *renderer.RenderPacket) error {
	world := state.Transform.World
	packet.State = &d.renderState
	packet.Program = d.program
	packet.Geometry = d.geometry
	packet.World = &world
	return nil
}

// OnResize keeps the projection in step with the surface aspect ratio.
func (d *CubeDemo) OnResize(state engine.FrameState, width uint32, height uint32) (engine.FrameState, error) {
	d.transform = d.transform.WithProjection(d.camera.Projection(d.Renderer.AspectRatio()))
	state.Transform = state.Transform.WithProjection(d.transform.Projection)
	d.Renderer.SetCamera(d.program, state.Transform)
	return state, nil
}

func (d *CubeDemo) ReloadShader(names []string) error {
	if !slices.Contains(names, cubeShader) {
		return nil
	}
	source, err := d.Assets.LoadShader(cubeShader, d.Renderer.Dialect())
	if err != nil {
		return err
	}
	d.program = d.Renderer.ReplaceProgram(d.program, source)
	d.Renderer.BindAttributes(d.program, d.geometry)
	d.Renderer.SetCamera(d.program, d.transform)
	return nil
}

func (d *CubeDemo) Shutdown() error {
	d.Renderer.DestroyGeometry(d.geometry)
	d.Renderer.DestroyProgram(d.program)
	return nil
}
