package renderer

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/math"
	"github.com/spaghettifunk/primitives/engine/renderer/headless"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ RendererBackend = (*headless.Backend)(nil)

var validSource = &metadata.ShaderSource{
	Name:     "cube",
	Dialect:  metadata.ShaderDialectGLES,
	Vertex:   "void main() { gl_Position = vec4(0.0); }",
	Fragment: "void main() { gl_FragColor = vec4(1.0); }",
}

func newTestRenderer(t *testing.T) (*Renderer, *headless.Backend) {
	t.Helper()
	b := headless.New(metadata.ShaderDialectGLES)
	r := New(b)
	require.NoError(t, r.Initialize(&metadata.RendererBackendConfig{ApplicationName: "test", Width: 800, Height: 600}))
	return r, b
}

func TestRenderer_InitializeFailure(t *testing.T) {
	b := headless.New("")
	b.FailInitialize = true
	r := New(b)

	err := r.Initialize(&metadata.RendererBackendConfig{Width: 1, Height: 1})
	assert.ErrorIs(t, err, core.ErrNoGraphicsBackend)
	assert.ErrorIs(t, r.DrawFrame(&RenderPacket{}), core.ErrNotInitialized)
}

func TestRenderer_AspectRatio(t *testing.T) {
	r, _ := newTestRenderer(t)
	assert.InDelta(t, 800.0/600.0, r.AspectRatio(), 1e-6)

	require.NoError(t, r.OnResize(0, 600))
	assert.Equal(t, float32(1), r.AspectRatio())
}

func TestRenderer_CubeFrameSequence(t *testing.T) {
	r, b := newTestRenderer(t)

	program := r.CreateProgram(validSource)
	require.True(t, program.Linked())

	g, err := r.CreateGeometry("cube", geometry.GenerateCube(2, geometry.FaceColors{}))
	require.NoError(t, err)
	r.BindAttributes(program, g)

	transform := math.NewTransformState(math.NewDefaultCamera(), r.AspectRatio())
	r.SetCamera(program, transform)

	view, ok := b.Uniform(metadata.UniformView)
	require.True(t, ok)
	assert.Equal(t, transform.View, view)
	proj, ok := b.Uniform(metadata.UniformProjection)
	require.True(t, ok)
	assert.Equal(t, transform.Projection, proj)

	attrs := b.CallsOf(headless.OpBindAttribute)
	require.Len(t, attrs, 2)
	assert.Equal(t, metadata.VertexAttribute{Name: metadata.AttributePosition, Components: 3, Stride: 24, Offset: 0}, attrs[0].Attribute)
	assert.Equal(t, metadata.VertexAttribute{Name: metadata.AttributeColor, Components: 3, Stride: 24, Offset: 12}, attrs[1].Attribute)

	b.Reset()
	state := &metadata.RenderState{ClearColor: metadata.ClearColor{0.5, 0.4, 0.7, 1}, DepthTest: true, CullMode: metadata.FaceCullModeBack}
	rotation := math.NewDefaultRotation()
	for i := 0; i < 3; i++ {
		world := transform.Advance(rotation, time.Duration(i)*time.Second).World
		require.NoError(t, r.DrawFrame(&RenderPacket{State: state, Program: program, Geometry: g, World: &world}))
	}

	assert.EqualValues(t, 3, b.Frames())
	// View and projection are never pushed again by the loop.
	for _, c := range b.CallsOf(headless.OpSetUniform) {
		assert.Equal(t, metadata.UniformWorld, c.Name)
	}

	draws := b.CallsOf(headless.OpDraw)
	require.Len(t, draws, 3)
	for _, d := range draws {
		assert.Equal(t, 36, d.Count)
		assert.Equal(t, "triangles", d.Name)
	}

	begins := b.CallsOf(headless.OpBeginFrame)
	require.Len(t, begins, 3)
	assert.Equal(t, *state, begins[0].State)

	world, _ := b.Uniform(metadata.UniformWorld)
	assert.True(t, world.ApproxEqual(rotation.Matrix(2*time.Second)))

	// Per-frame order: clear, select program, world, draw, present.
	ops := []headless.Op{}
	for _, c := range b.Calls[:5] {
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []headless.Op{headless.OpBeginFrame, headless.OpUseProgram, headless.OpSetUniform, headless.OpDraw, headless.OpEndFrame}, ops)
}

func TestRenderer_FailedShaderKeepsRunning(t *testing.T) {
	r, b := newTestRenderer(t)

	program := r.CreateProgram(&metadata.ShaderSource{Name: "broken", Vertex: "garbage", Fragment: "void main() {}"})
	require.NotNil(t, program)
	assert.Equal(t, metadata.SHADER_STATE_FAILED, program.State)
	assert.NotEmpty(t, program.InfoLog)

	g, err := r.CreateGeometry("hexagon", geometry.Hexagon(0.5, geometry.Color{1, 1, 1}))
	require.NoError(t, err)
	r.BindAttributes(program, g)

	for i := 0; i < 2; i++ {
		assert.NoError(t, r.DrawFrame(&RenderPacket{Program: program, Geometry: g}))
	}
	assert.EqualValues(t, 2, b.Frames())

	draws := b.CallsOf(headless.OpDraw)
	require.Len(t, draws, 2)
	assert.Equal(t, "triangle-fan", draws[0].Name)
	assert.Equal(t, geometry.HexagonVertexCount, draws[0].Count)
}

func TestRenderer_ReplaceProgram(t *testing.T) {
	r, b := newTestRenderer(t)

	old := r.CreateProgram(validSource)
	live := b.Live()
	next := r.ReplaceProgram(old, validSource)

	assert.True(t, next.Linked())
	assert.NotEqual(t, old.InternalID, next.InternalID)
	assert.Equal(t, live, b.Live())
	assert.Len(t, b.CallsOf(headless.OpDestroyProgram), 1)
}

func TestRenderer_UpdateGeometry(t *testing.T) {
	r, b := newTestRenderer(t)

	g, err := r.CreateGeometry("square", geometry.Square(0.5, geometry.Color{1, 1, 0}))
	require.NoError(t, err)

	require.NoError(t, r.UpdateGeometry(g, geometry.Square(0.5, geometry.Color{0, 1, 0})))
	assert.EqualValues(t, 1, g.Generation)
	assert.Equal(t, float32(0), g.Mesh.Vertices[2])
	assert.Len(t, b.CallsOf(headless.OpUpdateGeometry), 1)

	err = r.UpdateGeometry(g, geometry.GenerateCube(1, geometry.FaceColors{}))
	assert.Error(t, err)
	assert.EqualValues(t, 1, g.Generation)
}

func TestRenderer_DrawWithoutWorld(t *testing.T) {
	r, b := newTestRenderer(t)
	program := r.CreateProgram(validSource)
	g, err := r.CreateGeometry("square", geometry.Square(0.5, geometry.Color{1, 1, 0}))
	require.NoError(t, err)

	r.SetCamera(program, math.NewIdentityTransform())
	b.Reset()
	require.NoError(t, r.DrawFrame(&RenderPacket{Program: program, Geometry: g}))
	assert.Empty(t, b.CallsOf(headless.OpSetUniform))

	world, _ := b.Uniform(metadata.UniformWorld)
	assert.Equal(t, mgl32.Ident4(), world)
}

func TestRenderer_Shutdown(t *testing.T) {
	r, b := newTestRenderer(t)
	require.NoError(t, r.Shutdown())
	require.NoError(t, r.Shutdown())
	assert.Len(t, b.CallsOf(headless.OpShutdown), 1)
}
