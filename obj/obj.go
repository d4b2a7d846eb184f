// Package obj writes Wavefront OBJ files for dense terrains and for refined
// triangle meshes.
package obj

import (
	"fmt"
	"io"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/terrascape/terrascape/mesh"
	"github.com/terrascape/terrascape/scape"
	"github.com/terrascape/terrascape/terrain"
)

// writer accumulates the first write error so the export code can stay free
// of per-line error plumbing.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// WriteTerrain dumps the dense terrain grid as a quad mesh, one vertex per
// grid cell. With support enabled it also emits a flat base at height 0 and
// the walls connecting it to the terrain border, producing a solid printable
// mesh.
func WriteTerrain(w io.Writer, t *terrain.Terrain, support bool) error {
	width := t.Width()
	depth := t.Height()

	ow := &writer{w: w}
	ow.printf("# generated by terrascape\n")
	switch src := t.Source(); src.Kind {
	case terrain.SourceNoise, terrain.SourceDual:
		ow.printf("# seed: %d\n", src.Seed)
	}
	ow.printf("o terrain\n")

	for y := 0; y < depth; y++ {
		for x := 0; x < width; x++ {
			ow.printf("v %d %d %g\n", x, y, t.HeightAt(x, y))
		}
	}
	if support {
		for y := 0; y < depth; y++ {
			for x := 0; x < width; x++ {
				ow.printf("v %d %d 0\n", x, y)
			}
		}
	}

	index := func(x, y int) int {
		return y*width + x
	}

	for y := 0; y < depth-1; y++ {
		for x := 0; x < width-1; x++ {
			i := 1 + index(x, y)
			j := 1 + index(x, y+1)
			ow.printf("f %d %d %d %d\n", i, i+1, j+1, j)
		}
	}

	if support {
		// base vertices start right after the terrain ones
		oi := width*depth + 1

		ow.printf("f %d %d %d %d\n",
			oi,
			oi+index(0, depth-1),
			oi+index(width-1, depth-1),
			oi+index(width-1, 0),
		)

		for y := 0; y < depth-1; y++ {
			ow.printf("f %d %d %d %d\n",
				oi+index(0, y+1),
				oi+index(0, y),
				1+index(0, y),
				1+index(0, y+1),
			)
			ow.printf("f %d %d %d %d\n",
				oi+index(width-1, y),
				oi+index(width-1, y+1),
				1+index(width-1, y+1),
				1+index(width-1, y),
			)
		}

		for x := 0; x < width-1; x++ {
			ow.printf("f %d %d %d %d\n",
				oi+index(x, 0),
				oi+index(x+1, 0),
				1+index(x+1, 0),
				1+index(x, 0),
			)
			ow.printf("f %d %d %d %d\n",
				oi+index(x+1, depth-1),
				oi+index(x, depth-1),
				1+index(x, depth-1),
				1+index(x+1, depth-1),
			)
		}
	}

	if ow.err != nil {
		return errors.New("writing terrain obj failed").Wrap(ow.err)
	}
	return nil
}

// WriteMesh dumps the live, non-synthetic triangles of a refined mesh, with
// vertex heights sampled from the height field the mesh was refined against.
// Shared vertices are emitted once.
func WriteMesh(w io.Writer, m *mesh.DelaunayMesh, hf scape.Heightfield) error {
	ow := &writer{w: w}
	ow.printf("# generated by terrascape\n")
	ow.printf("o terrain\n")

	type corner struct {
		x, y int
	}
	// obj indices are 1-based
	indices := make(map[corner]int)

	var faces [][3]int
	for _, tid := range m.Triangles() {
		if m.Synthetic(tid) {
			continue
		}

		var face [3]int
		for i, p := range m.TriangleVertices(tid) {
			c := corner{x: int(p.X), y: int(p.Y)}
			ix, ok := indices[c]
			if !ok {
				ix = len(indices) + 1
				indices[c] = ix
				ow.printf("v %d %d %g\n", c.x, c.y, hf.HeightAt(c.x, c.y))
			}
			face[i] = ix
		}
		faces = append(faces, face)
	}

	for _, f := range faces {
		ow.printf("f %d %d %d\n", f[0], f[1], f[2])
	}

	if ow.err != nil {
		return errors.New("writing mesh obj failed").Wrap(ow.err)
	}
	return nil
}
