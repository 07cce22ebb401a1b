package headless

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_Defaults(t *testing.T) {
	b := New("")
	assert.Equal(t, metadata.ShaderDialectGLES, b.Dialect())

	require.NoError(t, b.Initialize(&metadata.RendererBackendConfig{Width: 640, Height: 480}))
	w, h := b.SurfaceSize()
	assert.EqualValues(t, 640, w)
	assert.EqualValues(t, 480, h)
}

func TestBackend_FailInitialize(t *testing.T) {
	b := New(metadata.ShaderDialectGLCore)
	b.FailInitialize = true
	assert.ErrorIs(t, b.Initialize(&metadata.RendererBackendConfig{}), core.ErrNoGraphicsBackend)
	assert.Empty(t, b.Calls)
}

func TestBackend_CreateProgram(t *testing.T) {
	b := New("")

	p, err := b.CreateProgram(&metadata.ShaderSource{Name: "ok", Vertex: "void main(){}", Fragment: "void main(){}"})
	require.NoError(t, err)
	assert.True(t, p.Linked())

	p, err = b.CreateProgram(&metadata.ShaderSource{Name: "bad", Vertex: "void main(){}", Fragment: ""})
	assert.ErrorIs(t, err, core.ErrShaderCompile)
	require.NotNil(t, p)
	assert.Equal(t, metadata.SHADER_STATE_FAILED, p.State)
	assert.Contains(t, p.InfoLog, "fragment")
}

func TestBackend_GeometryLifecycle(t *testing.T) {
	b := New("")
	mesh := geometry.GenerateCube(1, geometry.FaceColors{})
	g := metadata.NewGeometry("cube", mesh, metadata.AttributePosition, metadata.AttributeColor)

	assert.Error(t, b.UpdateGeometry(g), "update before create")
	require.NoError(t, b.CreateGeometry(g))
	assert.NotZero(t, g.InternalID)
	assert.Equal(t, 1, b.Live())
	require.NoError(t, b.UpdateGeometry(g))

	b.DrawGeometry(g)
	draws := b.CallsOf(OpDraw)
	require.Len(t, draws, 1)
	assert.Equal(t, geometry.CubeIndexCount, draws[0].Count)

	b.DestroyGeometry(g)
	assert.Zero(t, b.Live())

	empty := metadata.NewGeometry("empty", geometry.Mesh{FloatsPerVertex: 5}, "a", "b")
	assert.Error(t, b.CreateGeometry(empty))
}

func TestBackend_CreateProgramReportsFirstBrokenStage(t *testing.T) {
	b := New("")
	for i := 0; i < 20; i++ {
		p, err := b.CreateProgram(&metadata.ShaderSource{Name: "bad", Vertex: "", Fragment: ""})
		assert.ErrorIs(t, err, core.ErrShaderCompile)
		require.NotNil(t, p)
		assert.Contains(t, p.InfoLog, "'vertex'")
	}
}

func TestBackend_Labels(t *testing.T) {
	b := New("")
	g := metadata.NewGeometry("cube", geometry.GenerateCube(1, geometry.FaceColors{}), metadata.AttributePosition, metadata.AttributeColor)
	require.NoError(t, b.CreateGeometry(g))

	label := b.Label(g.InternalID)
	require.True(t, strings.HasPrefix(label, "geometry/cube/"), label)
	_, err := uuid.Parse(strings.TrimPrefix(label, "geometry/cube/"))
	assert.NoError(t, err)

	other := metadata.NewGeometry("cube", geometry.GenerateCube(1, geometry.FaceColors{}), metadata.AttributePosition, metadata.AttributeColor)
	require.NoError(t, b.CreateGeometry(other))
	assert.NotEqual(t, label, b.Label(other.InternalID))

	b.DestroyGeometry(g)
	assert.Empty(t, b.Label(g.InternalID))
}
