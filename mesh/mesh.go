// Package mesh implements an incremental planar Delaunay triangulation.
//
// The mesh owns its vertices and triangles in arenas and keeps a spatial
// index over triangle circumcenters so that point insertion does not have to
// circumcircle-test every triangle. Vertices are never removed; triangles are
// tombstoned when an insertion retriangulates the cavity around the new
// point.
package mesh

import (
	"fmt"

	"github.com/terrascape/terrascape/arena"
	"github.com/terrascape/terrascape/geo"
	"github.com/terrascape/terrascape/spatial"
)

// Padding is the margin added around the initial bounding box. It keeps the
// synthetic boundary triangles away from the real data so that points on the
// border of the original box still fall strictly inside the triangulation.
const Padding = 20

type Vertex struct {
	Position geo.Vec2
}

// Triangle references its 3 vertices by ID, in consistent counter-clockwise
// winding, together with its precomputed circumcircle.
type Triangle struct {
	Vertices     [3]VertexID
	Circumcircle geo.Circle
}

type (
	VertexID   = arena.ID[Vertex]
	TriangleID = arena.ID[Triangle]
)

// Region is the outcome of one insertion: the triangles it created and the
// cavity triangles it removed. It is returned to the caller and not retained
// by the mesh.
type Region struct {
	Created []TriangleID
	Removed []TriangleID
}

type DelaunayMesh struct {
	vertices  *arena.Arena[Vertex]
	triangles *arena.Arena[Triangle]
	live      map[TriangleID]struct{}
	index     *spatial.Tree[TriangleID]
	bounds    geo.Bbox

	// the 4 vertices of the initial super triangles; triangles touching them
	// derive from the synthetic boundary rather than from inserted points
	synthetic [4]VertexID
}

// New returns a triangulation covering bounds padded by Padding on every
// side, seeded with 2 super triangles splitting the padded rectangle along
// its bottom-left/top-right diagonal. The super triangles are ordinary
// triangles in the store; use Synthetic to tell them and their descendants
// apart when exporting.
func New(bounds geo.Bbox) *DelaunayMesh {
	padded := bounds.Pad(Padding)

	m := &DelaunayMesh{
		vertices:  arena.New[Vertex](),
		triangles: arena.New[Triangle](),
		live:      make(map[TriangleID]struct{}),
		index:     spatial.New[TriangleID](padded),
		bounds:    padded,
	}

	bl := m.vertices.Push(Vertex{Position: padded.Min})
	br := m.vertices.Push(Vertex{Position: geo.Vec2{X: padded.Max.X, Y: padded.Min.Y}})
	tr := m.vertices.Push(Vertex{Position: padded.Max})
	tl := m.vertices.Push(Vertex{Position: geo.Vec2{X: padded.Min.X, Y: padded.Max.Y}})
	m.synthetic = [4]VertexID{bl, br, tr, tl}

	m.addTriangle(bl, br, tr)
	m.addTriangle(bl, tr, tl)

	return m
}

// Bounds returns the padded bounding box the mesh triangulates. Only points
// inside it can be inserted.
func (m *DelaunayMesh) Bounds() geo.Bbox {
	return m.bounds
}

// Alive reports whether tid refers to a triangle currently part of the mesh.
func (m *DelaunayMesh) Alive(tid TriangleID) bool {
	_, ok := m.live[tid]
	return ok
}

// Triangles returns the IDs of the live triangles in creation order.
func (m *DelaunayMesh) Triangles() []TriangleID {
	tids := make([]TriangleID, 0, len(m.live))
	m.triangles.All(func(tid TriangleID, _ *Triangle) bool {
		if m.Alive(tid) {
			tids = append(tids, tid)
		}
		return true
	})
	return tids
}

// TriangleVertices returns the positions of the 3 vertices of tid.
//
// tid must refer to a live triangle of this mesh; a stale or foreign handle
// is a programming error and panics.
func (m *DelaunayMesh) TriangleVertices(tid TriangleID) [3]geo.Vec2 {
	t := m.mustLive(tid)

	var ps [3]geo.Vec2
	for i, vid := range t.Vertices {
		ps[i] = m.vertices.Get(vid).Position
	}
	return ps
}

// Circumcircle returns the precomputed circumcircle of a live triangle.
func (m *DelaunayMesh) Circumcircle(tid TriangleID) geo.Circle {
	return m.mustLive(tid).Circumcircle
}

// Position returns the position of a vertex. Vertices are never removed, so
// any ID issued by this mesh stays valid.
func (m *DelaunayMesh) Position(vid VertexID) geo.Vec2 {
	return m.vertices.Get(vid).Position
}

// Synthetic reports whether tid touches one of the initial super-triangle
// vertices, i.e. whether it is part of the synthetic boundary rather than of
// the inserted point set.
func (m *DelaunayMesh) Synthetic(tid TriangleID) bool {
	t := m.mustLive(tid)

	for _, vid := range t.Vertices {
		for _, s := range m.synthetic {
			if vid == s {
				return true
			}
		}
	}
	return false
}

func (m *DelaunayMesh) VertexCount() int {
	return m.vertices.Len()
}

func (m *DelaunayMesh) TriangleCount() int {
	return len(m.live)
}

func (m *DelaunayMesh) mustLive(tid TriangleID) *Triangle {
	if !m.Alive(tid) {
		panic(fmt.Sprintf("mesh: triangle id %v is not part of the mesh", tid))
	}
	return m.triangles.Get(tid)
}

func (m *DelaunayMesh) addTriangle(v0, v1, v2 VertexID) TriangleID {
	cc, err := geo.Circumcircle(
		m.vertices.Get(v0).Position,
		m.vertices.Get(v1).Position,
		m.vertices.Get(v2).Position,
	)
	if err != nil {
		panic(fmt.Sprintf("mesh: degenerate triangle reached the store: %v", err))
	}

	tid := m.triangles.Push(Triangle{Vertices: [3]VertexID{v0, v1, v2}, Circumcircle: cc})
	m.live[tid] = struct{}{}
	m.indexTriangle(tid, cc.Center)
	return tid
}

// indexTriangle files tid under its circumcenter. Circumcenters of very flat
// triangles can fall outside the padded bounds the index was built over; the
// reference point is clamped back in so the triangle stays findable instead
// of silently dropping out of the index.
func (m *DelaunayMesh) indexTriangle(tid TriangleID, circumcenter geo.Vec2) {
	ref := circumcenter
	ref.X = clamp(ref.X, m.bounds.Min.X, m.bounds.Max.X)
	ref.Y = clamp(ref.Y, m.bounds.Min.Y, m.bounds.Max.Y)

	if err := m.index.Insert(tid, ref); err != nil {
		panic(fmt.Sprintf("mesh: indexing a triangle failed: %v", err))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
