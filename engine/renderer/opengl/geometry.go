//go:build !js

package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

/**
 * @brief Max number of simultaneously uploaded geometries
 */
const OPENGL_MAX_GEOMETRY_COUNT uint32 = 64

/**
 * @brief Internal buffer data for geometry. The vertex array object records
 * the attribute layout once BindAttributes ran.
 */
type opengl_geometry_data struct {
	/** @brief The vertex array object. */
	VAO uint32
	/** @brief The interleaved vertex buffer. */
	VBO uint32
	/** @brief The index buffer, zero when the mesh is drawn in order. */
	EBO uint32
	/** @brief The geometry generation last uploaded. */
	Generation uint32
	/** @brief The element count consumed by one draw. */
	ElementCount int32
	/** @brief The primitive mode (TRIANGLES or TRIANGLE_FAN). */
	Mode uint32
}

func primitiveMode(t geometry.Topology) uint32 {
	if t == geometry.TopologyTriangleFan {
		return gl.TRIANGLE_FAN
	}
	return gl.TRIANGLES
}

func (b *OpenGLRenderer) CreateGeometry(g *metadata.Geometry) error {
	if len(g.Mesh.Vertices) == 0 {
		return fmt.Errorf("geometry %q has no vertices", g.Name)
	}
	if uint32(b.geometryIDs.InUse()) >= OPENGL_MAX_GEOMETRY_COUNT {
		return fmt.Errorf("geometry %q: no free geometry slot", g.Name)
	}

	data := &opengl_geometry_data{
		Mode:         primitiveMode(g.Mesh.Topology),
		ElementCount: int32(g.Mesh.ElementCount()),
		Generation:   g.Generation,
	}

	gl.GenVertexArrays(1, &data.VAO)
	gl.BindVertexArray(data.VAO)

	gl.GenBuffers(1, &data.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, data.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Mesh.Vertices)*4, gl.Ptr(g.Mesh.Vertices), gl.STATIC_DRAW)

	if len(g.Mesh.Indices) > 0 {
		// The element binding is part of the VAO state.
		gl.GenBuffers(1, &data.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, data.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Mesh.Indices)*2, gl.Ptr(g.Mesh.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	g.InternalID = b.geometryIDs.Acquire(g)
	g.InternalData = data
	b.geometries[g.InternalID] = data
	return nil
}

func (b *OpenGLRenderer) UpdateGeometry(g *metadata.Geometry) error {
	data, ok := g.InternalData.(*opengl_geometry_data)
	if !ok {
		return fmt.Errorf("geometry %q was never uploaded", g.Name)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, data.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Mesh.Vertices)*4, gl.Ptr(g.Mesh.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	data.Generation = g.Generation
	data.ElementCount = int32(g.Mesh.ElementCount())
	return nil
}

func (b *OpenGLRenderer) DestroyGeometry(g *metadata.Geometry) {
	data, ok := g.InternalData.(*opengl_geometry_data)
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &data.VBO)
	if data.EBO != 0 {
		gl.DeleteBuffers(1, &data.EBO)
	}
	gl.DeleteVertexArrays(1, &data.VAO)
	delete(b.geometries, g.InternalID)
	if err := b.geometryIDs.Release(g.InternalID); err != nil {
		core.LogWarn("opengl: %s", err)
	}
	g.InternalID = core.InvalidID
	g.InternalData = nil
}

func (b *OpenGLRenderer) BindAttributes(program *metadata.Program, g *metadata.Geometry) error {
	data, ok := g.InternalData.(*opengl_geometry_data)
	if !ok {
		return fmt.Errorf("geometry %q was never uploaded", g.Name)
	}
	if !program.Linked() {
		return fmt.Errorf("program %q is not linked", program.Name)
	}

	gl.BindVertexArray(data.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, data.VBO)
	for _, a := range g.Attributes {
		location := gl.GetAttribLocation(program.InternalID, gl.Str(a.Name+"\x00"))
		if location < 0 {
			gl.BindVertexArray(0)
			return fmt.Errorf("attribute %q not found in program %q", a.Name, program.Name)
		}
		gl.VertexAttribPointerWithOffset(uint32(location), a.Components, gl.FLOAT, false, a.Stride, uintptr(a.Offset))
		gl.EnableVertexAttribArray(uint32(location))
	}
	gl.BindVertexArray(0)
	return nil
}

func (b *OpenGLRenderer) DrawGeometry(g *metadata.Geometry) {
	data, ok := g.InternalData.(*opengl_geometry_data)
	if !ok {
		return
	}
	gl.BindVertexArray(data.VAO)
	if data.EBO != 0 {
		gl.DrawElements(data.Mode, data.ElementCount, gl.UNSIGNED_SHORT, nil)
	} else {
		gl.DrawArrays(data.Mode, 0, data.ElementCount)
	}
	gl.BindVertexArray(0)
}
