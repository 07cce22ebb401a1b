// Package headless implements a renderer backend without a GPU. It records
// every call so the render loop can be inspected, and is what the engine
// uses for `-renderer headless` runs and tests.
package headless

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

type Op string

const (
	OpInitialize      Op = "initialize"
	OpShutdown        Op = "shutdown"
	OpResized         Op = "resized"
	OpCreateProgram   Op = "create-program"
	OpDestroyProgram  Op = "destroy-program"
	OpUseProgram      Op = "use-program"
	OpSetUniform      Op = "set-uniform"
	OpCreateGeometry  Op = "create-geometry"
	OpUpdateGeometry  Op = "update-geometry"
	OpDestroyGeometry Op = "destroy-geometry"
	OpBindAttribute   Op = "bind-attribute"
	OpBeginFrame      Op = "begin-frame"
	OpDraw            Op = "draw"
	OpEndFrame        Op = "end-frame"
)

// Call is one recorded backend invocation.
type Call struct {
	Op        Op
	Name      string
	Matrix    mgl32.Mat4
	Attribute metadata.VertexAttribute
	State     metadata.RenderState
	Count     int
}

type Backend struct {
	Calls []Call

	// FailInitialize simulates a host without graphics support.
	FailInitialize bool
	// ResizeErr is returned by Resized when set.
	ResizeErr error

	width, height uint32
	dialect       metadata.ShaderDialect
	resources     *core.Identifiers
	uniforms      map[string]mgl32.Mat4
	frames        uint64
}

func New(dialect metadata.ShaderDialect) *Backend {
	if dialect == "" {
		dialect = metadata.ShaderDialectGLES
	}
	return &Backend{
		dialect:   dialect,
		resources: core.NewIdentifiers(16),
		uniforms:  make(map[string]mgl32.Mat4),
	}
}

func (b *Backend) record(c Call) {
	b.Calls = append(b.Calls, c)
}

func (b *Backend) allocate(kind, name string) uint32 {
	return b.resources.Acquire(fmt.Sprintf("%s/%s/%s", kind, name, uuid.NewString()))
}

func (b *Backend) release(id uint32) {
	if err := b.resources.Release(id); err != nil {
		core.LogWarn("headless backend: %s", err)
	}
}

func (b *Backend) Initialize(config *metadata.RendererBackendConfig) error {
	if b.FailInitialize {
		return fmt.Errorf("headless backend: %w", core.ErrNoGraphicsBackend)
	}
	b.width, b.height = config.Width, config.Height
	b.record(Call{Op: OpInitialize, Name: config.ApplicationName})
	return nil
}

func (b *Backend) Shutdown() error {
	b.record(Call{Op: OpShutdown})
	b.resources = core.NewIdentifiers(16)
	return nil
}

func (b *Backend) Dialect() metadata.ShaderDialect {
	return b.dialect
}

func (b *Backend) SurfaceSize() (uint32, uint32) {
	return b.width, b.height
}

func (b *Backend) Resized(width, height uint32) error {
	b.record(Call{Op: OpResized, Count: int(width) * int(height)})
	if b.ResizeErr != nil {
		return b.ResizeErr
	}
	b.width, b.height = width, height
	return nil
}

// CreateProgram accepts any source that declares a main function in both
// stages, which is enough to exercise the failure path.
func (b *Backend) CreateProgram(source *metadata.ShaderSource) (*metadata.Program, error) {
	b.record(Call{Op: OpCreateProgram, Name: source.Name})
	p := &metadata.Program{Name: source.Name, InternalID: b.allocate("program", source.Name)}

	for _, stage := range []struct{ name, text string }{{"vertex", source.Vertex}, {"fragment", source.Fragment}} {
		if !strings.Contains(stage.text, "void main") {
			p.State = metadata.SHADER_STATE_FAILED
			p.InfoLog = fmt.Sprintf("ERROR: 0:1: '%s' stage has no entry point 'main'", stage.name)
			return p, fmt.Errorf("%w: %s", core.ErrShaderCompile, p.InfoLog)
		}
	}
	p.State = metadata.SHADER_STATE_LINKED
	return p, nil
}

func (b *Backend) DestroyProgram(program *metadata.Program) {
	b.record(Call{Op: OpDestroyProgram, Name: program.Name})
	b.release(program.InternalID)
}

func (b *Backend) UseProgram(program *metadata.Program) {
	b.record(Call{Op: OpUseProgram, Name: program.Name})
}

func (b *Backend) SetUniformMatrix(program *metadata.Program, name string, value mgl32.Mat4) {
	b.uniforms[name] = value
	b.record(Call{Op: OpSetUniform, Name: name, Matrix: value})
}

func (b *Backend) CreateGeometry(geometry *metadata.Geometry) error {
	if len(geometry.Mesh.Vertices) == 0 {
		return fmt.Errorf("geometry %q has no vertices", geometry.Name)
	}
	geometry.InternalID = b.allocate("geometry", geometry.Name)
	b.record(Call{Op: OpCreateGeometry, Name: geometry.Name, Count: len(geometry.Mesh.Vertices)})
	return nil
}

func (b *Backend) UpdateGeometry(geometry *metadata.Geometry) error {
	if b.resources.Owner(geometry.InternalID) == nil {
		return fmt.Errorf("geometry %q was never created", geometry.Name)
	}
	b.record(Call{Op: OpUpdateGeometry, Name: geometry.Name, Count: len(geometry.Mesh.Vertices)})
	return nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	b.record(Call{Op: OpDestroyGeometry, Name: geometry.Name})
	b.release(geometry.InternalID)
}

func (b *Backend) BindAttributes(program *metadata.Program, geometry *metadata.Geometry) error {
	for _, a := range geometry.Attributes {
		b.record(Call{Op: OpBindAttribute, Name: a.Name, Attribute: a})
	}
	return nil
}

func (b *Backend) BeginFrame(state *metadata.RenderState) error {
	c := Call{Op: OpBeginFrame}
	if state != nil {
		c.State = *state
	}
	b.record(c)
	return nil
}

func (b *Backend) DrawGeometry(geometry *metadata.Geometry) {
	b.record(Call{Op: OpDraw, Name: geometry.Mesh.Topology.String(), Count: geometry.Mesh.ElementCount()})
}

func (b *Backend) EndFrame() error {
	b.frames++
	b.record(Call{Op: OpEndFrame})
	return nil
}

// Frames is the number of completed frames.
func (b *Backend) Frames() uint64 {
	return b.frames
}

// Uniform returns the last matrix pushed to name.
func (b *Backend) Uniform(name string) (mgl32.Mat4, bool) {
	m, ok := b.uniforms[name]
	return m, ok
}

// Label names the resource behind id as kind/name/uuid, empty when the id
// is free.
func (b *Backend) Label(id uint32) string {
	label, _ := b.resources.Owner(id).(string)
	return label
}

// Live reports how many programs and geometries are currently allocated.
func (b *Backend) Live() int {
	return b.resources.InUse()
}

// CallsOf filters the recorded calls by op.
func (b *Backend) CallsOf(op Op) []Call {
	var out []Call
	for _, c := range b.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets the recorded calls, keeping the resources.
func (b *Backend) Reset() {
	b.Calls = nil
}
