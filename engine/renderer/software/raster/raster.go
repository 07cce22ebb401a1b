// Package raster turns a mesh and a model-view-projection matrix into
// screen-space triangles. It has no GPU or windowing dependency, so the
// software backend can draw its output with any 2D triangle API.
package raster

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/primitives/engine/geometry"
)

type Cull uint8

const (
	CullNone Cull = iota
	// CullBack drops clockwise triangles, the ones facing away.
	CullBack
	CullFront
	CullAll
)

// Vertex is a projected vertex: pixel coordinates with y down, and the
// normalized device depth in [-1, 1].
type Vertex struct {
	X, Y  float32
	Depth float32
	Color geometry.Color
}

type Triangle struct {
	V [3]Vertex
}

// Depth is the mean depth of the three vertices, used for sorting.
func (t Triangle) Depth() float32 {
	return (t.V[0].Depth + t.V[1].Depth + t.V[2].Depth) / 3
}

type Options struct {
	Width, Height int
	Cull          Cull
	// DepthSort orders the output back to front so that drawing it in order
	// resolves visibility. It stands in for a depth buffer.
	DepthSort bool
}

// Triangulate expands a mesh into vertex index triples following its
// topology and index list.
func Triangulate(mesh geometry.Mesh) [][3]int {
	if len(mesh.Indices) > 0 {
		tris := make([][3]int, 0, len(mesh.Indices)/3)
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			tris = append(tris, [3]int{int(mesh.Indices[i]), int(mesh.Indices[i+1]), int(mesh.Indices[i+2])})
		}
		return tris
	}

	n := mesh.VertexCount()
	switch mesh.Topology {
	case geometry.TopologyTriangleFan:
		if n < 3 {
			return nil
		}
		tris := make([][3]int, 0, n-2)
		for i := 1; i+1 < n; i++ {
			tris = append(tris, [3]int{0, i, i + 1})
		}
		return tris
	default:
		tris := make([][3]int, 0, n/3)
		for i := 0; i+2 < n; i += 3 {
			tris = append(tris, [3]int{i, i + 1, i + 2})
		}
		return tris
	}
}

// Project runs every vertex of mesh through mvp. Positions with fewer than
// three components get z = 0. Vertices behind the eye come back with ok false.
func Project(mesh geometry.Mesh, mvp mgl32.Mat4) (ndc []mgl32.Vec3, colors []geometry.Color, ok []bool) {
	n := mesh.VertexCount()
	stride := mesh.FloatsPerVertex
	posComponents := stride - 3

	ndc = make([]mgl32.Vec3, n)
	colors = make([]geometry.Color, n)
	ok = make([]bool, n)
	for i := 0; i < n; i++ {
		v := mesh.Vertices[i*stride : (i+1)*stride]
		p := mgl32.Vec4{0, 0, 0, 1}
		copy(p[:posComponents], v[:posComponents])
		clip := mvp.Mul4x1(p)
		if clip.W() <= 0 {
			continue
		}
		ndc[i] = clip.Vec3().Mul(1 / clip.W())
		colors[i] = geometry.Color{v[posComponents], v[posComponents+1], v[posComponents+2]}
		ok[i] = true
	}
	return ndc, colors, ok
}

// SignedArea is twice the signed area of a triangle in device coordinates;
// positive means counter-clockwise, the front-facing winding.
func SignedArea(a, b, c mgl32.Vec3) float32 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (c.X()-a.X())*(b.Y()-a.Y())
}

func culled(area float32, cull Cull) bool {
	switch cull {
	case CullBack:
		return area <= 0
	case CullFront:
		return area >= 0
	case CullAll:
		return true
	}
	return area == 0
}

// Rasterize projects, culls and optionally sorts the triangles of mesh.
// Triangles with a vertex behind the eye are dropped rather than clipped.
func Rasterize(mesh geometry.Mesh, mvp mgl32.Mat4, opts Options) []Triangle {
	ndc, colors, ok := Project(mesh, mvp)
	halfW := float32(opts.Width) / 2
	halfH := float32(opts.Height) / 2

	var out []Triangle
	for _, tri := range Triangulate(mesh) {
		if tri[0] >= len(ndc) || tri[1] >= len(ndc) || tri[2] >= len(ndc) {
			continue
		}
		if !ok[tri[0]] || !ok[tri[1]] || !ok[tri[2]] {
			continue
		}
		a, b, c := ndc[tri[0]], ndc[tri[1]], ndc[tri[2]]
		if culled(SignedArea(a, b, c), opts.Cull) {
			continue
		}

		var t Triangle
		for k, idx := range tri {
			p := ndc[idx]
			t.V[k] = Vertex{
				X:     (p.X() + 1) * halfW,
				Y:     (1 - p.Y()) * halfH,
				Depth: p.Z(),
				Color: colors[idx],
			}
		}
		out = append(out, t)
	}

	if opts.DepthSort {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Depth() > out[j].Depth()
		})
	}
	return out
}
