package scape

import (
	"github.com/terrascape/terrascape/geo"
	"github.com/terrascape/terrascape/mesh"
)

// candidate is the best refinement point found inside one triangle.
type candidate struct {
	tri   mesh.TriangleID
	point geo.Vec2
	err   float64
}

// candidateHeap is a max-heap over the interpolation error magnitude, so the
// globally worst-fitting cell is always extracted first.
type candidateHeap []candidate

func (h candidateHeap) Len() int {
	return len(h)
}

func (h candidateHeap) Less(i, j int) bool {
	return abs(h[i].err) > abs(h[j].err)
}

func (h candidateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *candidateHeap) Push(v any) {
	*h = append(*h, v.(candidate))
}

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
