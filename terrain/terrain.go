// Package terrain produces and holds dense height grids, either sampled
// from fractal noise or decoded from a grayscale heightmap. A Terrain is the
// usual Heightfield fed to the scape refinement.
package terrain

// SourceKind tells how a terrain was produced.
type SourceKind int

const (
	SourceNoise SourceKind = iota
	SourceDual
	SourceHeightmap
)

// Source identifies the generator of a terrain, kept around so exports can
// record how to reproduce it.
type Source struct {
	Kind SourceKind
	Seed uint64
}

// Terrain is a width x depth grid of heights in [base, base+amplitude].
type Terrain struct {
	heights   []float64
	width     int
	depth     int
	amplitude float64
	source    Source
}

func (t *Terrain) Width() int {
	return t.width
}

// Height returns the number of grid rows, satisfying the height field
// capability consumed by scape.
func (t *Terrain) Height() int {
	return t.depth
}

// HeightAt returns the height stored at (x, y). Coordinates must be within
// [0, Width()) x [0, Height()).
func (t *Terrain) HeightAt(x, y int) float64 {
	return t.heights[y*t.width+x]
}

func (t *Terrain) Amplitude() float64 {
	return t.amplitude
}

func (t *Terrain) Source() Source {
	return t.source
}

// Dual returns the amplitude-inverted, horizontally mirrored terrain: peaks
// become valleys of the same magnitude. The dual of a dual is the original
// terrain again.
func (t *Terrain) Dual() *Terrain {
	heights := make([]float64, len(t.heights))
	for y := 0; y < t.depth; y++ {
		for x := 0; x < t.width; x++ {
			heights[y*t.width+x] = t.amplitude - t.HeightAt(t.width-1-x, y)
		}
	}

	source := t.source
	switch source.Kind {
	case SourceNoise:
		source.Kind = SourceDual
	case SourceDual:
		source.Kind = SourceNoise
	}

	return &Terrain{
		heights:   heights,
		width:     t.width,
		depth:     t.depth,
		amplitude: t.amplitude,
		source:    source,
	}
}
