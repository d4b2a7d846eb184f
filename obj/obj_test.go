package obj

import (
	"bufio"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terrascape/terrascape/geo"
	"github.com/terrascape/terrascape/mesh"
	"github.com/terrascape/terrascape/scape"
	"github.com/terrascape/terrascape/terrain"
)

func countDirectives(t *testing.T, dump string) (vertices, faces int) {
	t.Helper()

	s := bufio.NewScanner(strings.NewReader(dump))
	for s.Scan() {
		switch {
		case strings.HasPrefix(s.Text(), "v "):
			vertices++
		case strings.HasPrefix(s.Text(), "f "):
			faces++
		}
	}
	require.NoError(t, s.Err())
	return vertices, faces
}

func TestWriteTerrain(t *testing.T) {
	tr, err := terrain.Generate(terrain.NoiseConfig{
		Width:     4,
		Depth:     3,
		Seed:      42,
		Octaves:   4,
		Frequency: 0.2,
		Gain:      2,
		Amplitude: 20,
	})
	require.NoError(t, err)

	t.Run("without support", func(t *testing.T) {
		var sb strings.Builder
		require.NoError(t, WriteTerrain(&sb, tr, false))

		dump := sb.String()
		require.Contains(t, dump, "# seed: 42\n")
		require.Contains(t, dump, "o terrain\n")

		vertices, faces := countDirectives(t, dump)
		require.Equal(t, 4*3, vertices)
		require.Equal(t, 3*2, faces)
	})

	t.Run("with support", func(t *testing.T) {
		var sb strings.Builder
		require.NoError(t, WriteTerrain(&sb, tr, true))

		vertices, faces := countDirectives(t, sb.String())
		require.Equal(t, 2*4*3, vertices)
		// terrain quads, base quad, 2 walls per border row and column
		require.Equal(t, 3*2+1+2*2+2*3, faces)
	})
}

type planeField struct{ size int }

func (f planeField) Width() int  { return f.size }
func (f planeField) Height() int { return f.size }

func (f planeField) HeightAt(x, y int) float64 {
	return float64(x + y)
}

var _ scape.Heightfield = planeField{}

func TestWriteMesh(t *testing.T) {
	hf := planeField{size: 8}
	bounds := geo.NewBbox(geo.Zero())
	bounds.Expand(geo.NewVec2(7, 7))
	m := mesh.New(bounds)
	for _, p := range []geo.Vec2{{X: 0, Y: 0}, {X: 7, Y: 0}, {X: 7, Y: 7}, {X: 0, Y: 7}, {X: 3, Y: 4}} {
		_, err := m.Insert(p)
		require.NoError(t, err)
	}

	var sb strings.Builder
	require.NoError(t, WriteMesh(&sb, m, hf))
	dump := sb.String()

	// 5 inserted points, each emitted exactly once
	vertices, faces := countDirectives(t, dump)
	require.Equal(t, 5, vertices)

	interior := 0
	for _, tid := range m.Triangles() {
		if !m.Synthetic(tid) {
			interior++
		}
	}
	require.Equal(t, interior, faces)

	require.Contains(t, dump, fmt.Sprintf("v 3 4 %g\n", 7.0))
}
