package mesh

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/terrascape/terrascape/geo"
)

// edge is a directed edge between two mesh vertices.
type edge struct {
	from VertexID
	to   VertexID
}

// Insert adds p to the triangulation via Bowyer-Watson cavity
// retriangulation and returns the affected region.
//
// Insert is atomic: it either fully applies or returns an error leaving the
// mesh untouched. It returns an error when p lies outside the padded bounds,
// duplicates an existing vertex or is collinear with a cavity boundary edge
// (a point exactly on an existing edge). An inconsistent cavity, which can
// only arise once the triangulation has drifted from the Delaunay property,
// is an internal invariant violation and panics.
func (m *DelaunayMesh) Insert(p geo.Vec2) (Region, error) {
	if !m.bounds.Contains(p) {
		instrumentInsertionReject("out_of_bounds")
		return Region{}, errors.New("point is outside the triangulated bounds").
			WithTag("point", p).
			WithTag("min", m.bounds.Min).
			WithTag("max", m.bounds.Max)
	}

	// The cavity: every triangle whose circumcircle contains p. Containment
	// is inclusive, so a point on a shared circumcircle boundary lands in
	// every incident triangle at once and the cavity stays star shaped.
	var bad []TriangleID
	for tid := range m.index.Enclosing(p, m.circumcircleContains) {
		bad = append(bad, tid)
	}
	if len(bad) == 0 {
		// the super-triangle circumcircles cover the whole padded box, so an
		// in-bounds point always invalidates at least one triangle
		panic(fmt.Sprintf("mesh: no triangle circumcircle contains in-bounds point %v", p))
	}

	for _, tid := range bad {
		for _, vid := range m.triangles.Get(tid).Vertices {
			if m.vertices.Get(vid).Position.Dist2(p) <= geo.ContainsEpsilon*geo.ContainsEpsilon {
				instrumentInsertionReject("duplicate_vertex")
				return Region{}, errors.New("point duplicates an existing vertex").
					WithTag("point", p)
			}
		}
	}

	boundary := m.cavityBoundary(bad)

	// Precompute every new circumcircle before mutating anything so that a
	// degenerate one rejects the insert with the mesh still intact.
	circles := make([]geo.Circle, len(boundary))
	for i, e := range boundary {
		cc, err := geo.Circumcircle(m.Position(e.from), m.Position(e.to), p)
		if err != nil {
			instrumentInsertionReject("degenerate_triangle")
			return Region{}, errors.New("point is collinear with a cavity boundary edge").
				WithTag("point", p).
				Wrap(err)
		}
		circles[i] = cc
	}

	for _, tid := range bad {
		delete(m.live, tid)
	}

	vid := m.vertices.Push(Vertex{Position: p})

	created := make([]TriangleID, 0, len(boundary))
	for i, e := range boundary {
		tid := m.triangles.Push(Triangle{
			Vertices:     [3]VertexID{e.from, e.to, vid},
			Circumcircle: circles[i],
		})
		m.live[tid] = struct{}{}
		m.indexTriangle(tid, circles[i].Center)
		created = append(created, tid)
	}

	instrumentInsertion(len(bad), len(created))

	return Region{Created: created, Removed: bad}, nil
}

func (m *DelaunayMesh) circumcircleContains(tid TriangleID, p geo.Vec2) bool {
	// the index never forgets removed triangles, tombstoned entries are
	// filtered here
	if !m.Alive(tid) {
		return false
	}
	return m.triangles.Get(tid).Circumcircle.Contains(p)
}

// cavityBoundary returns the edges of the cavity formed by the bad
// triangles. An edge is on the boundary iff it is not shared by two bad
// triangles: since all triangles are wound counter-clockwise, an interior
// edge occurs once per adjacent triangle in opposite directions and the two
// occurrences cancel.
//
// A well-formed cavity boundary is a closed polygon, every vertex on it
// having exactly 2 incident boundary edges. Anything else means the
// triangulation drifted from the Delaunay property before this insertion,
// which is fatal.
func (m *DelaunayMesh) cavityBoundary(bad []TriangleID) []edge {
	edges := make(map[edge]struct{}, 3*len(bad))

	toggle := func(e edge) {
		rev := edge{from: e.to, to: e.from}
		if _, ok := edges[rev]; ok {
			delete(edges, rev)
			return
		}
		edges[e] = struct{}{}
	}

	for _, tid := range bad {
		t := m.triangles.Get(tid)
		toggle(edge{t.Vertices[0], t.Vertices[1]})
		toggle(edge{t.Vertices[1], t.Vertices[2]})
		toggle(edge{t.Vertices[2], t.Vertices[0]})
	}

	// collect surviving edges in deterministic first-seen order
	boundary := make([]edge, 0, len(edges))
	for _, tid := range bad {
		t := m.triangles.Get(tid)
		for i := 0; i < 3; i++ {
			e := edge{t.Vertices[i], t.Vertices[(i+1)%3]}
			if _, ok := edges[e]; ok {
				boundary = append(boundary, e)
				delete(edges, e)
			}
		}
	}

	if len(boundary) < 3 {
		panic(fmt.Sprintf("mesh: cavity of %d triangles has a boundary of %d edges", len(bad), len(boundary)))
	}

	degrees := make(map[VertexID]int, len(boundary))
	for _, e := range boundary {
		degrees[e.from]++
		degrees[e.to]++
	}
	for vid, d := range degrees {
		if d != 2 {
			panic(fmt.Sprintf("mesh: cavity boundary is not a closed polygon, vertex %v has %d incident edges", vid, d))
		}
	}

	return boundary
}
