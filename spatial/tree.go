// Package spatial implements a quad-bucket tree: a point-keyed spatial index
// that answers "which stored elements may be relevant to this query point"
// without a full scan.
//
// Elements are filed under a reference point (for Delaunay triangles, their
// circumcenter). Leaves accumulate up to a fixed capacity of entries and then
// split into 4 quarters around their box center. Boxes only ever grow, so the
// index is a conservative filter: a query may visit elements whose predicate
// fails, but it never skips one that would pass.
package spatial

import (
	"iter"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/terrascape/terrascape/geo"
)

// leafCapacity is the number of entries a leaf holds before it splits.
const leafCapacity = 64

type Tree[E any] struct {
	root node[E]
}

type entry[E any] struct {
	elem E
	ref  geo.Vec2
}

// node is a leaf while children is nil, a branch afterwards. A branch's 4
// children quarter the box it had when it split; its own entries slice is
// left empty.
type node[E any] struct {
	bounds   geo.Bbox
	entries  []entry[E]
	children *[4]node[E]
}

// New returns a tree rooted at bounds. Reference points outside bounds cannot
// be inserted.
func New[E any](bounds geo.Bbox) *Tree[E] {
	return &Tree[E]{
		root: node[E]{
			bounds:  bounds,
			entries: make([]entry[E], 0, leafCapacity),
		},
	}
}

// Insert files e under ref. It returns an error when ref lies outside the
// root bounds, which is a caller error: the index cannot locate elements
// outside the volume it was built over.
func (t *Tree[E]) Insert(e E, ref geo.Vec2) error {
	if !t.root.bounds.Contains(ref) {
		return errors.New("reference point is outside the indexed bounds").
			WithTag("ref", ref).
			WithTag("min", t.root.bounds.Min).
			WithTag("max", t.root.bounds.Max)
	}

	t.root.insert(e, ref)
	return nil
}

// Enclosing returns a lazy, single-pass sequence of the stored elements for
// which contains(elem, p) holds. A branch is descended into only if its box
// contains p; every entry of a reached leaf is predicate-tested, so the leaf
// boxes themselves never hide an entry.
func (t *Tree[E]) Enclosing(p geo.Vec2, contains func(E, geo.Vec2) bool) iter.Seq[E] {
	return func(yield func(E) bool) {
		stack := []*node[E]{&t.root}

		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if n.children != nil {
				if n.bounds.Contains(p) {
					for i := range n.children {
						stack = append(stack, &n.children[i])
					}
				}
				continue
			}

			for i := range n.entries {
				if contains(n.entries[i].elem, p) && !yield(n.entries[i].elem) {
					return
				}
			}
		}
	}
}

func (n *node[E]) insert(e E, ref geo.Vec2) {
	if n.children != nil {
		for i := range n.children {
			if n.children[i].bounds.Contains(ref) {
				n.children[i].insert(e, ref)
				return
			}
		}
		return
	}

	n.entries = append(n.entries, entry[E]{elem: e, ref: ref})
	n.bounds.Expand(ref)

	if len(n.entries) > leafCapacity {
		n.split()
	}
}

// split quarters the leaf box around its center, redistributes every entry
// into the first quarter containing its reference point and converts the
// leaf in place into a branch.
func (n *node[E]) split() {
	quads := n.bounds.Split(n.bounds.Center())

	children := &[4]node[E]{}
	for i := range children {
		children[i] = node[E]{
			bounds:  quads[i],
			entries: make([]entry[E], 0, leafCapacity),
		}
	}

	for _, en := range n.entries {
		for i := range children {
			if children[i].bounds.Contains(en.ref) {
				children[i].insert(en.elem, en.ref)
				break
			}
		}
	}

	n.entries = nil
	n.children = children
}
