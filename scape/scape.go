// Package scape approximates a dense height field with a sparse triangle
// mesh, following "Fast Polygonal Approximation of Terrain Fields": greedily
// insert the grid point with the worst interpolation error until a vertex
// budget is reached or every triangle fits its cells.
package scape

import (
	"container/heap"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"

	"github.com/terrascape/terrascape/geo"
	"github.com/terrascape/terrascape/mesh"
)

// Heightfield is the capability scape consumes: a width x height scalar
// field queried by integer coordinate.
//
// HeightAt must only be called with 0 <= x < Width() and 0 <= y < Height();
// bounds are a caller contract, not a runtime check.
type Heightfield interface {
	Width() int
	Height() int
	HeightAt(x, y int) float64
}

// DefaultMinError is the interpolation error below which a cell is
// considered an exact fit at cell resolution.
const DefaultMinError = 1e-9

type Options struct {
	// MaxVertices is the budget of field points inserted into the mesh,
	// the 4 seed corners included.
	MaxVertices int

	// MinError stops candidates whose error is not above it from entering
	// the queue. Zero means DefaultMinError.
	MinError float64

	// OnInsert, when set, is called after every accepted insertion.
	OnInsert func(Progress)
}

// Progress describes the refinement state after an insertion.
type Progress struct {
	Vertices   int     `json:"vertices"`
	Triangles  int     `json:"triangles"`
	Candidates int     `json:"candidates"`
	LastError  float64 `json:"last_error"`
}

// Refine triangulates hf's bounding rectangle, seeds it with the 4 corner
// points and greedily inserts maximum-error grid points until the budget is
// exhausted or no candidate is left.
func Refine(hf Heightfield, opts Options) (*mesh.DelaunayMesh, error) {
	if hf.Width() < 2 || hf.Height() < 2 {
		return nil, errors.New("height field is too small to triangulate").
			WithTag("width", hf.Width()).
			WithTag("height", hf.Height())
	}

	minError := opts.MinError
	if minError == 0 {
		minError = DefaultMinError
	}

	w := float64(hf.Width() - 1)
	h := float64(hf.Height() - 1)

	bounds := geo.NewBbox(geo.Zero())
	bounds.Expand(geo.NewVec2(w, h))

	m := mesh.New(bounds)

	inserted := 0
	for _, corner := range [4]geo.Vec2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}} {
		if _, err := m.Insert(corner); err != nil {
			return nil, errors.New("seeding the corner points failed").
				WithTag("corner", corner).
				Wrap(err)
		}
		inserted++
	}

	candidates := &candidateHeap{}
	heap.Init(candidates)

	push := func(tid mesh.TriangleID) {
		// triangles touching the synthetic boundary have vertices outside
		// the grid; the cells they cover inside the field are covered again
		// by triangles over real field points
		if m.Synthetic(tid) {
			return
		}
		p, errVal, ok := bestCandidate(hf, m.TriangleVertices(tid))
		if !ok || abs(errVal) <= minError {
			return
		}
		heap.Push(candidates, candidate{tri: tid, point: p, err: errVal})
		instrumentCandidate()
	}

	for _, tid := range m.Triangles() {
		push(tid)
	}

	for inserted < opts.MaxVertices {
		// lazy invalidation: candidates whose source triangle died in an
		// earlier cavity are dropped as they surface
		var cand candidate
		for {
			if candidates.Len() == 0 {
				return m, nil
			}
			cand = heap.Pop(candidates).(candidate)
			if m.Alive(cand.tri) {
				break
			}
		}

		region, err := m.Insert(cand.point)
		if err != nil {
			// rejected candidates are skipped rather than fatal, the rest of
			// the queue is still worth refining
			logs.WithTag("point", cand.point).
				WithTag("error", cand.err).
				Warn(errors.New("skipping rejected candidate").Wrap(err))
			continue
		}
		inserted++
		instrumentInsertion(cand.err, candidates.Len())

		for _, tid := range region.Created {
			push(tid)
		}

		if opts.OnInsert != nil {
			opts.OnInsert(Progress{
				Vertices:   inserted,
				Triangles:  m.TriangleCount(),
				Candidates: candidates.Len(),
				LastError:  cand.err,
			})
		}
	}

	return m, nil
}

// bestCandidate scans every grid cell inside the triangle and returns the
// cell where the field and the triangle's barycentric interpolation diverge
// the most. The error is signed but ranked by magnitude, so valleys below
// the interpolating plane are refined like peaks above it. Ties keep the
// first-encountered cell; a triangle with no interior cell yields no
// candidate.
func bestCandidate(hf Heightfield, vertices [3]geo.Vec2) (geo.Vec2, float64, bool) {
	bbox := geo.NewBbox(vertices[0])
	bbox.Expand(vertices[1])
	bbox.Expand(vertices[2])

	// vertices sit on grid points by construction
	heights := [3]float64{
		hf.HeightAt(int(vertices[0].X), int(vertices[0].Y)),
		hf.HeightAt(int(vertices[1].X), int(vertices[1].Y)),
		hf.HeightAt(int(vertices[2].X), int(vertices[2].Y)),
	}

	var (
		best    geo.Vec2
		bestErr float64
		found   bool
	)

	for y := int(bbox.Min.Y); y <= int(bbox.Max.Y); y++ {
		for x := int(bbox.Min.X); x <= int(bbox.Max.X); x++ {
			p := geo.NewVec2(float64(x), float64(y))

			bary, ok := geo.Barycentric(vertices[0], vertices[1], vertices[2], p)
			if !ok {
				continue
			}

			errVal := hf.HeightAt(x, y) - bary.Interpolate(heights)
			if !found || abs(errVal) > abs(bestErr) {
				best = p
				bestErr = errVal
				found = true
			}
		}
	}

	return best, bestErr, found
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
