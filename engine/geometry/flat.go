package geometry

import "math"

// Flat primitives carry a 2D clip-space position followed by a colour.
const FlatFloatsPerVertex = 5

// HexagonVertexCount is the centre, six rim vertices and the repeated first
// rim vertex that closes the fan.
const HexagonVertexCount = 8

// Hexagon builds a pointy-top regular hexagon as a triangle fan around the
// origin. Rim vertices start at the top and go clockwise.
func Hexagon(radius float32, color Color) Mesh {
	vertices := make([]float32, 0, HexagonVertexCount*FlatFloatsPerVertex)
	vertices = appendFlat(vertices, 0, 0, color)
	for i := 0; i <= 6; i++ {
		// 90° is the top; every step turns 60° clockwise. The seventh
		// vertex closes the fan on the first one.
		angle := math.Pi/2 - float64(i%6)*math.Pi/3
		x := float32(math.Cos(angle)) * radius
		y := float32(math.Sin(angle)) * radius
		vertices = appendFlat(vertices, x, y, color)
	}
	return Mesh{
		Vertices:        vertices,
		FloatsPerVertex: FlatFloatsPerVertex,
		Topology:        TopologyTriangleFan,
	}
}

// SquareVertexCount is two independent triangles.
const SquareVertexCount = 6

// Square builds an axis-aligned square of the given half extent as two
// triangles sharing the (-e, e)-(e, -e) diagonal.
func Square(halfExtent float32, color Color) Mesh {
	e := halfExtent
	vertices := make([]float32, 0, SquareVertexCount*FlatFloatsPerVertex)
	vertices = appendFlat(vertices, -e, e, color)
	vertices = appendFlat(vertices, -e, -e, color)
	vertices = appendFlat(vertices, e, -e, color)
	vertices = appendFlat(vertices, e, e, color)
	vertices = appendFlat(vertices, -e, e, color)
	vertices = appendFlat(vertices, e, -e, color)
	return Mesh{
		Vertices:        vertices,
		FloatsPerVertex: FlatFloatsPerVertex,
		Topology:        TopologyTriangles,
	}
}

func appendFlat(dst []float32, x, y float32, c Color) []float32 {
	return append(dst, x, y, c[0], c[1], c[2])
}
