package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatVertex(m Mesh, i int) (x, y float32, c Color) {
	o := i * FlatFloatsPerVertex
	v := m.Vertices
	return v[o], v[o+1], Color{v[o+2], v[o+3], v[o+4]}
}

func TestHexagon(t *testing.T) {
	white := Color{1, 1, 1}
	hex := Hexagon(0.5, white)

	assert.Equal(t, TopologyTriangleFan, hex.Topology)
	assert.Empty(t, hex.Indices)
	assert.Equal(t, HexagonVertexCount, hex.VertexCount())
	assert.Equal(t, HexagonVertexCount, hex.ElementCount())

	want := [][2]float32{
		{0, 0},
		{0, 0.5},
		{0.433, 0.25},
		{0.433, -0.25},
		{0, -0.5},
		{-0.433, -0.25},
		{-0.433, 0.25},
		{0, 0.5},
	}
	for i, w := range want {
		x, y, c := flatVertex(hex, i)
		assert.InDelta(t, w[0], x, 1e-3, "vertex %d x", i)
		assert.InDelta(t, w[1], y, 1e-3, "vertex %d y", i)
		assert.Equal(t, white, c)
	}
}

func TestSquare(t *testing.T) {
	yellow := Color{1, 1, 0}
	sq := Square(0.5, yellow)

	assert.Equal(t, TopologyTriangles, sq.Topology)
	assert.Equal(t, SquareVertexCount, sq.VertexCount())

	want := [][2]float32{
		{-0.5, 0.5}, {-0.5, -0.5}, {0.5, -0.5},
		{0.5, 0.5}, {-0.5, 0.5}, {0.5, -0.5},
	}
	for i, w := range want {
		x, y, c := flatVertex(sq, i)
		assert.Equal(t, w[0], x)
		assert.Equal(t, w[1], y)
		assert.Equal(t, yellow, c)
	}

	// Both triangles are counter-clockwise.
	for tri := 0; tri < 2; tri++ {
		ax, ay, _ := flatVertex(sq, tri*3)
		bx, by, _ := flatVertex(sq, tri*3+1)
		cx, cy, _ := flatVertex(sq, tri*3+2)
		area := (bx-ax)*(cy-ay) - (cx-ax)*(by-ay)
		assert.Greater(t, area, float32(0))
	}
}

func TestMesh_EmptyCounts(t *testing.T) {
	var m Mesh
	assert.Zero(t, m.VertexCount())
	assert.Zero(t, m.ElementCount())
	assert.Equal(t, "unknown", Topology(9).String())
	assert.Equal(t, "triangle-fan", TopologyTriangleFan.String())
}
