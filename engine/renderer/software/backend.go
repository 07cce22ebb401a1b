// Package software renders on the CPU: meshes are projected by the raster
// package and the resulting triangles are filled with ebiten's DrawTriangles.
// Shaders are not executed; the fixed transform they describe is applied in Go.
package software

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/math"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
	"github.com/spaghettifunk/primitives/engine/renderer/software/raster"
)

type software_program_data struct {
	matrices map[string]mgl32.Mat4
	declared map[string]bool
}

type SoftwareRenderer struct {
	FrameNumber uint64

	width, height uint32
	target        *ebiten.Image
	white         *ebiten.Image
	state         metadata.RenderState
	current       *metadata.Program
	nextID        uint32

	vertices []ebiten.Vertex
	indices  []uint16
}

func New() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// SetTarget is called by the platform with the screen of the current frame.
func (r *SoftwareRenderer) SetTarget(screen *ebiten.Image) {
	r.target = screen
	if screen == nil {
		return
	}
	b := screen.Bounds()
	r.width, r.height = uint32(b.Dx()), uint32(b.Dy())
}

func (r *SoftwareRenderer) Initialize(config *metadata.RendererBackendConfig) error {
	r.width, r.height = config.Width, config.Height
	r.white = ebiten.NewImage(3, 3)
	r.white.Fill(color.White)
	return nil
}

func (r *SoftwareRenderer) Shutdown() error {
	if r.white != nil {
		r.white.Deallocate()
		r.white = nil
	}
	return nil
}

func (r *SoftwareRenderer) Dialect() metadata.ShaderDialect {
	return metadata.ShaderDialectGLES
}

func (r *SoftwareRenderer) SurfaceSize() (uint32, uint32) {
	return r.width, r.height
}

func (r *SoftwareRenderer) Resized(width, height uint32) error {
	r.width, r.height = width, height
	return nil
}

// CreateProgram only checks that both stages have an entry point and the
// vertex stage writes a position. Transform uniforms the source never
// declares are treated as identity.
func (r *SoftwareRenderer) CreateProgram(source *metadata.ShaderSource) (*metadata.Program, error) {
	r.nextID++
	program := &metadata.Program{
		Name:         source.Name,
		InternalID:   r.nextID,
		InternalData: &software_program_data{matrices: map[string]mgl32.Mat4{}, declared: map[string]bool{}},
	}
	for _, stage := range []struct{ name, text string }{{"vertex", source.Vertex}, {"fragment", source.Fragment}} {
		if !strings.Contains(stage.text, "void main") {
			program.State = metadata.SHADER_STATE_FAILED
			program.InfoLog = fmt.Sprintf("%s stage has no main function", stage.name)
			return program, fmt.Errorf("%w: %s", core.ErrShaderCompile, program.InfoLog)
		}
	}
	if !strings.Contains(source.Vertex, "gl_Position") {
		program.State = metadata.SHADER_STATE_FAILED
		program.InfoLog = "vertex stage never writes gl_Position"
		return program, fmt.Errorf("%w: %s", core.ErrProgramLink, program.InfoLog)
	}
	data := program.InternalData.(*software_program_data)
	for _, u := range []string{metadata.UniformWorld, metadata.UniformView, metadata.UniformProjection} {
		data.declared[u] = strings.Contains(source.Vertex, u)
	}
	program.State = metadata.SHADER_STATE_LINKED
	return program, nil
}

func (r *SoftwareRenderer) DestroyProgram(program *metadata.Program) {
	if r.current == program {
		r.current = nil
	}
	program.InternalData = nil
	program.State = metadata.SHADER_STATE_NOT_CREATED
}

func (r *SoftwareRenderer) UseProgram(program *metadata.Program) {
	r.current = program
}

func (r *SoftwareRenderer) SetUniformMatrix(program *metadata.Program, name string, value mgl32.Mat4) {
	if data, ok := program.InternalData.(*software_program_data); ok && data.declared[name] {
		data.matrices[name] = value
	}
}

// Meshes stay on the CPU; the geometry is drawn from its own copy.
func (r *SoftwareRenderer) CreateGeometry(g *metadata.Geometry) error {
	if len(g.Mesh.Vertices) == 0 {
		return fmt.Errorf("geometry %q has no vertices", g.Name)
	}
	r.nextID++
	g.InternalID = r.nextID
	return nil
}

func (r *SoftwareRenderer) UpdateGeometry(g *metadata.Geometry) error {
	return nil
}

func (r *SoftwareRenderer) DestroyGeometry(g *metadata.Geometry) {}

func (r *SoftwareRenderer) BindAttributes(program *metadata.Program, g *metadata.Geometry) error {
	for _, a := range g.Attributes {
		if a.Components < 2 || a.Components > 4 {
			return fmt.Errorf("attribute %q has %d components", a.Name, a.Components)
		}
	}
	return nil
}

func (r *SoftwareRenderer) BeginFrame(state *metadata.RenderState) error {
	if state != nil {
		r.state = *state
	}
	if r.target == nil {
		return nil
	}
	c := r.state.ClearColor
	r.target.Fill(color.NRGBA{
		R: uint8(c[0] * 255),
		G: uint8(c[1] * 255),
		B: uint8(c[2] * 255),
		A: uint8(c[3] * 255),
	})
	return nil
}

func cullMode(m metadata.FaceCullMode) raster.Cull {
	switch m {
	case metadata.FaceCullModeBack:
		return raster.CullBack
	case metadata.FaceCullModeFront:
		return raster.CullFront
	case metadata.FaceCullModeFrontAndBack:
		return raster.CullAll
	}
	return raster.CullNone
}

func (r *SoftwareRenderer) mvp() mgl32.Mat4 {
	if r.current == nil || !r.current.Linked() {
		return mgl32.Ident4()
	}
	data, ok := r.current.InternalData.(*software_program_data)
	if !ok {
		return mgl32.Ident4()
	}
	m := mgl32.Ident4()
	for _, name := range []string{metadata.UniformProjection, metadata.UniformView, metadata.UniformWorld} {
		if u, ok := data.matrices[name]; ok {
			m = m.Mul4(u)
		}
	}
	return m
}

func (r *SoftwareRenderer) DrawGeometry(g *metadata.Geometry) {
	// A failed program draws nothing, like a GPU would.
	if r.target == nil || !r.current.Linked() {
		return
	}
	tris := raster.Rasterize(g.Mesh, r.mvp(), raster.Options{
		Width:     int(r.width),
		Height:    int(r.height),
		Cull:      cullMode(r.state.CullMode),
		DepthSort: r.state.DepthTest,
	})
	if len(tris) == 0 {
		return
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, t := range tris {
		for _, v := range t.V {
			r.indices = append(r.indices, uint16(len(r.vertices)))
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   v.X,
				DstY:   v.Y,
				SrcX:   1,
				SrcY:   1,
				ColorR: math.Clamp(v.Color[0], 0, 1),
				ColorG: math.Clamp(v.Color[1], 0, 1),
				ColorB: math.Clamp(v.Color[2], 0, 1),
				ColorA: 1,
			})
		}
	}
	r.target.DrawTriangles(r.vertices, r.indices, r.white, &ebiten.DrawTrianglesOptions{})
}

func (r *SoftwareRenderer) EndFrame() error {
	r.FrameNumber++
	return nil
}
