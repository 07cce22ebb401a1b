package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var primaryColors = FaceColors{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 0},
	{1, 0, 1},
	{0, 1, 1},
}

var greyShades = FaceColors{
	{0.1, 0.1, 0.1},
	{0.2, 0.2, 0.2},
	{0.3, 0.3, 0.3},
	{0.4, 0.4, 0.4},
	{0.5, 0.5, 0.5},
	{0.6, 0.6, 0.6},
}

func position(vertices []float32, i int) mgl32.Vec3 {
	o := i * FloatsPerVertex
	return mgl32.Vec3{vertices[o], vertices[o+1], vertices[o+2]}
}

func color(vertices []float32, i int) Color {
	o := i*FloatsPerVertex + 3
	return Color{vertices[o], vertices[o+1], vertices[o+2]}
}

func TestCubeCorners_AreAllSignCombinations(t *testing.T) {
	for _, edge := range []float32{0.5, 1, 2, 7.25} {
		h := edge / 2
		corners := CubeCorners(edge)

		seen := map[mgl32.Vec3]bool{}
		for _, c := range corners {
			for _, v := range c {
				assert.True(t, v == h || v == -h, "component %v is not ±%v", v, h)
			}
			seen[c] = true
		}
		assert.Len(t, seen, 8, "corners must be distinct")
	}
}

func TestGenerateCube_Lengths(t *testing.T) {
	for _, edge := range []float32{0.001, 1, 2, 100} {
		mesh := GenerateCube(edge, primaryColors)
		assert.Len(t, mesh.Vertices, 144)
		assert.Len(t, mesh.Indices, 36)
		assert.Equal(t, CubeVertexCount, mesh.VertexCount())
		assert.Equal(t, CubeIndexCount, mesh.ElementCount())
		assert.Equal(t, TopologyTriangles, mesh.Topology)
	}
}

func TestGenerateCube_FaceColors(t *testing.T) {
	mesh := GenerateCube(2, primaryColors)

	for v := 0; v < CubeVertexCount; v++ {
		assert.Equal(t, primaryColors[v/4], color(mesh.Vertices, v), "vertex %d", v)
	}

	// The top face comes first: red, on the y = +1 plane.
	topCorners := CubeCorners(2)
	for v := 0; v < 4; v++ {
		assert.Equal(t, Color{1, 0, 0}, color(mesh.Vertices, v))
		p := position(mesh.Vertices, v)
		assert.Equal(t, float32(1), p.Y())
		assert.Contains(t, topCorners[:4], p)
	}
}

func TestGenerateCube_FacesLieOnTheirPlanes(t *testing.T) {
	mesh := GenerateCube(2, primaryColors)
	planes := [6]struct {
		axis  int
		value float32
	}{
		FaceTop:    {1, 1},
		FaceLeft:   {0, -1},
		FaceRight:  {0, 1},
		FaceFront:  {2, 1},
		FaceBack:   {2, -1},
		FaceBottom: {1, -1},
	}
	for face, plane := range planes {
		for k := 0; k < 4; k++ {
			p := position(mesh.Vertices, face*4+k)
			assert.Equal(t, plane.value, p[plane.axis], "face %d corner %d", face, k)
		}
	}
}

func TestGenerateCube_ScalesLinearly(t *testing.T) {
	base := GenerateCube(2, greyShades)
	for _, k := range []float32{0.5, 3, 10} {
		scaled := GenerateCube(2*k, greyShades)
		for v := 0; v < CubeVertexCount; v++ {
			want := position(base.Vertices, v).Mul(k)
			assert.True(t, position(scaled.Vertices, v).ApproxEqual(want), "vertex %d at k=%v", v, k)
			assert.Equal(t, color(base.Vertices, v), color(scaled.Vertices, v))
		}
		assert.Equal(t, base.Indices, scaled.Indices)
	}
}

func TestGenerateCube_IndexBufferIsConstant(t *testing.T) {
	a := GenerateCube(1, primaryColors)
	b := GenerateCube(42, greyShades)
	assert.Equal(t, a.Indices, b.Indices)
	assert.Equal(t, CubeIndices(), a.Indices)

	// Callers own the returned slices.
	a.Indices[0] = 99
	a.Vertices[0] = 99
	c := GenerateCube(1, primaryColors)
	assert.Equal(t, uint16(0), c.Indices[0])
	assert.Equal(t, float32(-0.5), c.Vertices[0])
}

func TestGenerateCube_ExactIndexTable(t *testing.T) {
	want := []uint16{
		0, 1, 2, 0, 2, 3,
		5, 4, 6, 6, 4, 7,
		8, 9, 10, 8, 10, 11,
		13, 12, 14, 15, 14, 12,
		16, 17, 18, 16, 18, 19,
		21, 20, 22, 22, 20, 23,
	}
	assert.Equal(t, want, CubeIndices())
}

func TestGenerateCube_IndicesCoverEveryVertex(t *testing.T) {
	mesh := GenerateCube(2, primaryColors)
	referenced := make([]bool, CubeVertexCount)
	for _, idx := range mesh.Indices {
		require.Less(t, int(idx), CubeVertexCount)
		referenced[idx] = true
	}
	for v, ok := range referenced {
		assert.True(t, ok, "vertex %d is never drawn", v)
	}
}

func TestGenerateCube_TrianglesFaceOutward(t *testing.T) {
	mesh := GenerateCube(2, primaryColors)
	for tri := 0; tri < CubeIndexCount/3; tri++ {
		a := position(mesh.Vertices, int(mesh.Indices[tri*3]))
		b := position(mesh.Vertices, int(mesh.Indices[tri*3+1]))
		c := position(mesh.Vertices, int(mesh.Indices[tri*3+2]))

		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		assert.Greater(t, normal.Dot(centroid), float32(0), "triangle %d winds inward", tri)
		assert.NotZero(t, normal.Len(), "triangle %d is degenerate", tri)
	}
}

func TestGenerateCube_FirstVertex(t *testing.T) {
	mesh := GenerateCube(2, greyShades)
	g := greyShades[0]
	assert.Equal(t, []float32{-1, 1, -1, g[0], g[1], g[2]}, mesh.Vertices[:6])
}

func BenchmarkGenerateCube(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateCube(2, primaryColors)
	}
}
