package terrain

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// NoiseConfig parameterizes fractal (fBm) noise terrain generation.
type NoiseConfig struct {
	// Width and Depth are the grid dimensions in vertices.
	Width int
	Depth int

	// Seed makes generation reproducible; the same seed always yields the
	// same terrain.
	Seed uint64

	Octaves    int
	Frequency  float64
	Gain       float64
	Lacunarity float64

	// Amplitude is the height span of the terrain above BaseThickness.
	Amplitude     float64
	BaseThickness float64
}

// Generate samples Octaves layers of Perlin noise per grid cell and scales
// the result into [BaseThickness, BaseThickness+Amplitude].
func Generate(cfg NoiseConfig) (*Terrain, error) {
	if cfg.Width < 2 || cfg.Depth < 2 {
		return nil, errors.New("terrain must be at least 2x2 vertices").
			WithTag("width", cfg.Width).
			WithTag("depth", cfg.Depth)
	}
	if cfg.Octaves < 1 {
		return nil, errors.New("noise needs at least one octave").
			WithTag("octaves", cfg.Octaves)
	}
	if cfg.Amplitude <= 0 {
		return nil, errors.New("amplitude must be positive").
			WithTag("amplitude", cfg.Amplitude)
	}

	// the PCG keeps the mapping from seed to noise permutation stable
	rng := rand.New(rand.NewPCG(cfg.Seed, 0))
	noise := perlin.NewPerlin(2, 2, 1, rng.Int64())

	heights := make([]float64, cfg.Width*cfg.Depth)
	lo := math.Inf(1)
	hi := math.Inf(-1)

	for y := 0; y < cfg.Depth; y++ {
		for x := 0; x < cfg.Width; x++ {
			var (
				v    float64
				amp  = 1.0
				freq = cfg.Frequency
			)
			for o := 0; o < cfg.Octaves; o++ {
				// offset away from the lattice, Perlin noise vanishes on
				// integer coordinates
				v += amp * noise.Noise2D(float64(x)*freq+0.5, float64(y)*freq+0.5)
				amp *= cfg.Gain
				freq *= cfg.Lacunarity
			}

			heights[y*cfg.Width+x] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	// scale into [base, base+amplitude]
	span := hi - lo
	for i, v := range heights {
		if span == 0 {
			heights[i] = cfg.BaseThickness
			continue
		}
		heights[i] = cfg.BaseThickness + (v-lo)/span*cfg.Amplitude
	}

	return &Terrain{
		heights:   heights,
		width:     cfg.Width,
		depth:     cfg.Depth,
		amplitude: cfg.Amplitude,
		source:    Source{Kind: SourceNoise, Seed: cfg.Seed},
	}, nil
}
