//go:build !js

// Package opengl is the desktop renderer backend. It needs an OpenGL 4.1 core
// context made current by the platform before Initialize is called.
package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

type OpenGLRenderer struct {
	FrameNumber uint64

	framebufferWidth  uint32
	framebufferHeight uint32
	present           func()

	geometries  map[uint32]*opengl_geometry_data
	geometryIDs *core.Identifiers
}

// New creates the backend. present is called at the end of every frame to
// swap the window buffers.
func New(present func()) *OpenGLRenderer {
	return &OpenGLRenderer{
		present:     present,
		geometries:  make(map[uint32]*opengl_geometry_data),
		geometryIDs: core.NewIdentifiers(int(OPENGL_MAX_GEOMETRY_COUNT)),
	}
}

func (b *OpenGLRenderer) Initialize(config *metadata.RendererBackendConfig) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("%w: %s", core.ErrNoGraphicsBackend, err)
	}
	b.framebufferWidth = config.Width
	b.framebufferHeight = config.Height

	core.LogInfo("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	core.LogInfo("OpenGL renderer %s", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.Viewport(0, 0, int32(b.framebufferWidth), int32(b.framebufferHeight))
	gl.FrontFace(gl.CCW)
	return nil
}

func (b *OpenGLRenderer) Shutdown() error {
	for id, data := range b.geometries {
		gl.DeleteBuffers(1, &data.VBO)
		if data.EBO != 0 {
			gl.DeleteBuffers(1, &data.EBO)
		}
		gl.DeleteVertexArrays(1, &data.VAO)
		delete(b.geometries, id)
	}
	b.geometryIDs = core.NewIdentifiers(int(OPENGL_MAX_GEOMETRY_COUNT))
	return nil
}

func (b *OpenGLRenderer) Dialect() metadata.ShaderDialect {
	return metadata.ShaderDialectGLCore
}

func (b *OpenGLRenderer) SurfaceSize() (uint32, uint32) {
	return b.framebufferWidth, b.framebufferHeight
}

func (b *OpenGLRenderer) Resized(width, height uint32) error {
	b.framebufferWidth = width
	b.framebufferHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
	core.LogInfo("OpenGL renderer backend->resized: w/h: %d/%d", width, height)
	return nil
}

func (b *OpenGLRenderer) BeginFrame(state *metadata.RenderState) error {
	if state == nil {
		state = &metadata.RenderState{}
	}
	c := state.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	mask := uint32(gl.COLOR_BUFFER_BIT)
	if state.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
		mask |= gl.DEPTH_BUFFER_BIT
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	switch state.CullMode {
	case metadata.FaceCullModeNone:
		gl.Disable(gl.CULL_FACE)
	case metadata.FaceCullModeFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case metadata.FaceCullModeBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case metadata.FaceCullModeFrontAndBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT_AND_BACK)
	}

	gl.Clear(mask)
	return nil
}

func (b *OpenGLRenderer) EndFrame() error {
	if b.present != nil {
		b.present()
	}
	b.FrameNumber++
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x at frame %d", code, b.FrameNumber)
	}
	return nil
}
