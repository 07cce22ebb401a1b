// Package geometry builds the vertex and index streams drawn by the demos.
// Everything here is pure: no GPU access, no shared state.
package geometry

// Color is an RGB triple with channels in [0, 1].
type Color [3]float32

type Topology uint8

const (
	TopologyTriangles Topology = iota
	TopologyTriangleFan
)

func (t Topology) String() string {
	switch t {
	case TopologyTriangles:
		return "triangles"
	case TopologyTriangleFan:
		return "triangle-fan"
	}
	return "unknown"
}

// Mesh is an interleaved vertex stream plus an optional index list. An empty
// Indices means the vertices are drawn in order with Topology.
type Mesh struct {
	Vertices        []float32
	Indices         []uint16
	FloatsPerVertex int
	Topology        Topology
}

// VertexCount is the number of vertices in the stream.
func (m Mesh) VertexCount() int {
	if m.FloatsPerVertex == 0 {
		return 0
	}
	return len(m.Vertices) / m.FloatsPerVertex
}

// ElementCount is the number of vertices a draw call consumes.
func (m Mesh) ElementCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices)
	}
	return m.VertexCount()
}
