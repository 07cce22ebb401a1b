package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

// RendererBackend is the graphics API seen by the render loop. Every method is
// called from the frame goroutine only.
type RendererBackend interface {
	// Initialize acquires the drawing surface. Returns core.ErrNoGraphicsBackend
	// when the host cannot provide one.
	Initialize(config *metadata.RendererBackendConfig) error
	Shutdown() error
	// Dialect is the shader language CreateProgram accepts.
	Dialect() metadata.ShaderDialect
	SurfaceSize() (width, height uint32)
	Resized(width, height uint32) error

	// CreateProgram compiles and links source. On failure the returned program
	// is still non-nil, carries the info log and is in the failed state.
	CreateProgram(source *metadata.ShaderSource) (*metadata.Program, error)
	DestroyProgram(program *metadata.Program)
	UseProgram(program *metadata.Program)
	SetUniformMatrix(program *metadata.Program, name string, value mgl32.Mat4)

	// CreateGeometry uploads the vertex and index streams of geometry.
	CreateGeometry(geometry *metadata.Geometry) error
	// UpdateGeometry re-uploads the vertex stream after the mesh changed.
	UpdateGeometry(geometry *metadata.Geometry) error
	DestroyGeometry(geometry *metadata.Geometry)
	// BindAttributes points the program's attributes at the geometry's vertex buffer.
	BindAttributes(program *metadata.Program, geometry *metadata.Geometry) error

	BeginFrame(state *metadata.RenderState) error
	// DrawGeometry issues one draw: indexed triangles when the mesh has
	// indices, otherwise an array draw with the mesh topology.
	DrawGeometry(geometry *metadata.Geometry)
	EndFrame() error
}
