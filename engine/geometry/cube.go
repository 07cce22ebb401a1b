package geometry

import "github.com/go-gl/mathgl/mgl32"

const (
	// 4 verts per side, 6 sides.
	CubeVertexCount = 4 * 6
	// 2 triangles per side, 6 sides.
	CubeIndexCount = 6 * 6
	// Position (3) followed by colour (3).
	FloatsPerVertex = 6
)

// Face names, in the order faces are emitted and colours are consumed.
const (
	FaceTop = iota
	FaceLeft
	FaceRight
	FaceFront
	FaceBack
	FaceBottom
)

// FaceColors assigns one colour per face, indexed by the Face* constants.
type FaceColors [6]Color

// Canonical corner labels: the top square first, then the bottom one, each
// walked from (-x, -z).
const (
	cornerTopBackLeft = iota
	cornerTopFrontLeft
	cornerTopFrontRight
	cornerTopBackRight
	cornerBottomBackLeft
	cornerBottomFrontLeft
	cornerBottomFrontRight
	cornerBottomBackRight
)

// CubeFaces lists, per face, the four canonical corners in emission order.
var CubeFaces = [6][4]int{
	FaceTop:    {cornerTopBackLeft, cornerTopFrontLeft, cornerTopFrontRight, cornerTopBackRight},
	FaceLeft:   {cornerTopFrontLeft, cornerBottomFrontLeft, cornerBottomBackLeft, cornerTopBackLeft},
	FaceRight:  {cornerTopFrontRight, cornerBottomFrontRight, cornerBottomBackRight, cornerTopBackRight},
	FaceFront:  {cornerTopFrontRight, cornerBottomFrontRight, cornerBottomFrontLeft, cornerTopFrontLeft},
	FaceBack:   {cornerTopBackRight, cornerBottomBackRight, cornerBottomBackLeft, cornerTopBackLeft},
	FaceBottom: {cornerBottomBackLeft, cornerBottomFrontLeft, cornerBottomFrontRight, cornerBottomBackRight},
}

// The triangulation is tied to the face and corner order above and does not
// depend on size or colours. Every triangle is counter-clockwise seen from
// outside the cube.
var cubeIndices = [CubeIndexCount]uint16{
	// Top
	0, 1, 2,
	0, 2, 3,

	// Left
	5, 4, 6,
	6, 4, 7,

	// Right
	8, 9, 10,
	8, 10, 11,

	// Front
	13, 12, 14,
	15, 14, 12,

	// Back
	16, 17, 18,
	16, 18, 19,

	// Bottom
	21, 20, 22,
	22, 20, 23,
}

// CubeIndices returns a copy of the cube triangulation.
func CubeIndices() []uint16 {
	out := make([]uint16, CubeIndexCount)
	copy(out, cubeIndices[:])
	return out
}

// CubeCorners returns the 8 canonical corners of an axis-aligned cube
// centred on the origin.
func CubeCorners(edgeLength float32) [8]mgl32.Vec3 {
	h := edgeLength / 2
	return [8]mgl32.Vec3{
		cornerTopBackLeft:      {-h, h, -h},
		cornerTopFrontLeft:     {-h, h, h},
		cornerTopFrontRight:    {h, h, h},
		cornerTopBackRight:     {h, h, -h},
		cornerBottomBackLeft:   {-h, -h, -h},
		cornerBottomFrontLeft:  {-h, -h, h},
		cornerBottomFrontRight: {h, -h, h},
		cornerBottomBackRight:  {h, -h, -h},
	}
}

/**
 * @brief Generates a flat-shaded cube. Corners are duplicated per face so each
 * face keeps its own colour.
 *
 * @param edgeLength The length of each edge, expected to be > 0.
 * @param faceColors One colour per face, channels expected in [0, 1].
 * @return 24 vertices of 6 floats each and the 36-index triangulation.
 */
func GenerateCube(edgeLength float32, faceColors FaceColors) Mesh {
	corners := CubeCorners(edgeLength)

	vertices := make([]float32, 0, CubeVertexCount*FloatsPerVertex)
	for face, faceCorners := range CubeFaces {
		c := faceColors[face]
		for _, corner := range faceCorners {
			p := corners[corner]
			vertices = append(vertices, p[0], p[1], p[2], c[0], c[1], c[2])
		}
	}

	return Mesh{
		Vertices:        vertices,
		Indices:         CubeIndices(),
		FloatsPerVertex: FloatsPerVertex,
		Topology:        TopologyTriangles,
	}
}
