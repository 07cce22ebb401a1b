package metadata

import (
	"github.com/spaghettifunk/primitives/engine/geometry"
)

/**
 * @brief Describes one interleaved vertex attribute the way the backend's
 * attribute-pointer call wants it.
 */
type VertexAttribute struct {
	/** @brief The attribute name in the vertex shader. */
	Name string
	/** @brief Number of float components (2, 3 or 4). */
	Components int32
	/** @brief Distance in bytes between two consecutive vertices. */
	Stride int32
	/** @brief Offset in bytes from the start of a vertex. */
	Offset int32
}

const floatSize = 4

// InterleavedAttributes lays out a position of positionComponents floats
// followed by an RGB colour, which is the layout of every demo mesh.
func InterleavedAttributes(positionName, colorName string, positionComponents int32) []VertexAttribute {
	stride := (positionComponents + 3) * floatSize
	return []VertexAttribute{
		{Name: positionName, Components: positionComponents, Stride: stride, Offset: 0},
		{Name: colorName, Components: 3, Stride: stride, Offset: positionComponents * floatSize},
	}
}

/**
 * @brief Represents geometry uploaded to the backend.
 */
type Geometry struct {
	/** @brief The geometry name. */
	Name string
	/** @brief The CPU side copy of the vertex and index streams. */
	Mesh geometry.Mesh
	/** @brief How the vertex stream is laid out. */
	Attributes []VertexAttribute
	/** @brief The internal identifier used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief Incremented every time the vertex data is re-uploaded. */
	Generation uint32
	/** @brief Backend private data. */
	InternalData interface{}
}

// NewGeometry wraps mesh with the interleaved position/colour layout. The
// position width is derived from the mesh's floats per vertex.
func NewGeometry(name string, mesh geometry.Mesh, positionName, colorName string) *Geometry {
	return &Geometry{
		Name:       name,
		Mesh:       mesh,
		Attributes: InterleavedAttributes(positionName, colorName, int32(mesh.FloatsPerVertex-3)),
	}
}
