package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/math"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

// RenderPacket is everything needed to draw one frame.
type RenderPacket struct {
	State    *metadata.RenderState
	Program  *metadata.Program
	Geometry *metadata.Geometry
	// World is pushed to the world uniform when set. View and projection are
	// pushed once by SetCamera.
	World     *mgl32.Mat4
	DeltaTime time.Duration
}

// Renderer is the frontend the demos talk to. It owns no global state; one
// is created per engine.
type Renderer struct {
	backend     RendererBackend
	initialized bool
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

func (r *Renderer) Initialize(config *metadata.RendererBackendConfig) error {
	if err := r.backend.Initialize(config); err != nil {
		core.LogError("failed to initialize renderer backend: %s", err)
		return err
	}
	r.initialized = true
	w, h := r.backend.SurfaceSize()
	core.LogInfo("renderer initialized (%dx%d, %s shaders)", w, h, r.backend.Dialect())
	return nil
}

func (r *Renderer) Shutdown() error {
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return r.backend.Shutdown()
}

func (r *Renderer) Dialect() metadata.ShaderDialect {
	return r.backend.Dialect()
}

// AspectRatio is the surface width over its height, 1 for an empty surface.
func (r *Renderer) AspectRatio() float32 {
	w, h := r.backend.SurfaceSize()
	if w == 0 || h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

// CreateProgram compiles and links source. A compile or link failure is
// logged and the degraded program is returned so the demo keeps running.
func (r *Renderer) CreateProgram(source *metadata.ShaderSource) *metadata.Program {
	program, err := r.backend.CreateProgram(source)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrShaderCompile), errors.Is(err, core.ErrProgramLink):
			core.LogError("shader program %q: %s", source.Name, err)
		default:
			core.LogError("shader program %q could not be created: %s", source.Name, err)
		}
		if program == nil {
			program = &metadata.Program{Name: source.Name, State: metadata.SHADER_STATE_FAILED, InfoLog: err.Error()}
		}
	}
	return program
}

// ReplaceProgram builds a program from source and releases old once the
// new one exists.
func (r *Renderer) ReplaceProgram(old *metadata.Program, source *metadata.ShaderSource) *metadata.Program {
	program := r.CreateProgram(source)
	if old != nil {
		r.backend.DestroyProgram(old)
	}
	return program
}

// CreateGeometry uploads mesh with the shared position/colour attribute names.
func (r *Renderer) CreateGeometry(name string, mesh geometry.Mesh) (*metadata.Geometry, error) {
	g := metadata.NewGeometry(name, mesh, metadata.AttributePosition, metadata.AttributeColor)
	if err := r.backend.CreateGeometry(g); err != nil {
		return nil, fmt.Errorf("create geometry %q: %w", name, err)
	}
	return g, nil
}

// UpdateGeometry swaps the vertex stream of g. The layout must not change.
func (r *Renderer) UpdateGeometry(g *metadata.Geometry, mesh geometry.Mesh) error {
	if mesh.FloatsPerVertex != g.Mesh.FloatsPerVertex {
		return fmt.Errorf("update geometry %q: vertex layout changed from %d to %d floats", g.Name, g.Mesh.FloatsPerVertex, mesh.FloatsPerVertex)
	}
	g.Mesh = mesh
	g.Generation++
	if err := r.backend.UpdateGeometry(g); err != nil {
		return fmt.Errorf("update geometry %q: %w", g.Name, err)
	}
	return nil
}

func (r *Renderer) DestroyGeometry(g *metadata.Geometry) {
	if g != nil {
		r.backend.DestroyGeometry(g)
	}
}

func (r *Renderer) DestroyProgram(p *metadata.Program) {
	if p != nil {
		r.backend.DestroyProgram(p)
	}
}

// BindAttributes is part of the setup phase; a failure is logged like a
// shader failure and the demo continues.
func (r *Renderer) BindAttributes(program *metadata.Program, g *metadata.Geometry) {
	if err := r.backend.BindAttributes(program, g); err != nil {
		core.LogError("binding attributes of %q to %q: %s", g.Name, program.Name, err)
	}
}

// SetCamera pushes the three matrices of transform. Called once at setup and
// again when the surface is resized.
func (r *Renderer) SetCamera(program *metadata.Program, transform math.TransformState) {
	r.backend.UseProgram(program)
	r.backend.SetUniformMatrix(program, metadata.UniformWorld, transform.World)
	r.backend.SetUniformMatrix(program, metadata.UniformView, transform.View)
	r.backend.SetUniformMatrix(program, metadata.UniformProjection, transform.Projection)
}

// DrawFrame clears the frame and issues the single draw call of the packet.
func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if !r.initialized {
		return core.ErrNotInitialized
	}
	if err := r.backend.BeginFrame(packet.State); err != nil {
		core.LogError("renderer BeginFrame failed: %s", err)
		return err
	}

	if packet.Program != nil && packet.Geometry != nil {
		r.backend.UseProgram(packet.Program)
		if packet.World != nil {
			r.backend.SetUniformMatrix(packet.Program, metadata.UniformWorld, *packet.World)
		}
		r.backend.DrawGeometry(packet.Geometry)
	}

	if err := r.backend.EndFrame(); err != nil {
		core.LogError("renderer EndFrame failed: %s", err)
		return err
	}
	return nil
}
