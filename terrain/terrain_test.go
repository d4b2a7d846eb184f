package terrain

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Width:      16,
		Depth:      12,
		Seed:       1234,
		Octaves:    4,
		Frequency:  0.2,
		Gain:       2,
		Lacunarity: 0.5,
		Amplitude:  20,
	}
}

func TestGenerate(t *testing.T) {
	t.Run("heights stay inside the amplitude range", func(t *testing.T) {
		tr, err := Generate(testNoiseConfig())
		require.NoError(t, err)

		require.Equal(t, 16, tr.Width())
		require.Equal(t, 12, tr.Height())
		for y := 0; y < tr.Height(); y++ {
			for x := 0; x < tr.Width(); x++ {
				h := tr.HeightAt(x, y)
				require.GreaterOrEqual(t, h, 0.0)
				require.LessOrEqual(t, h, 20.0)
			}
		}
	})

	t.Run("same seed yields the same terrain", func(t *testing.T) {
		a, err := Generate(testNoiseConfig())
		require.NoError(t, err)
		b, err := Generate(testNoiseConfig())
		require.NoError(t, err)

		require.Equal(t, a.heights, b.heights)
	})

	t.Run("different seeds yield different terrains", func(t *testing.T) {
		a, err := Generate(testNoiseConfig())
		require.NoError(t, err)

		cfg := testNoiseConfig()
		cfg.Seed = 99
		b, err := Generate(cfg)
		require.NoError(t, err)

		require.NotEqual(t, a.heights, b.heights)
	})

	t.Run("base thickness shifts the range", func(t *testing.T) {
		cfg := testNoiseConfig()
		cfg.BaseThickness = 5
		tr, err := Generate(cfg)
		require.NoError(t, err)

		for _, h := range tr.heights {
			require.GreaterOrEqual(t, h, 5.0)
			require.LessOrEqual(t, h, 25.0)
		}
	})

	t.Run("bad configs are rejected", func(t *testing.T) {
		cfg := testNoiseConfig()
		cfg.Width = 1
		_, err := Generate(cfg)
		require.Error(t, err)

		cfg = testNoiseConfig()
		cfg.Octaves = 0
		_, err = Generate(cfg)
		require.Error(t, err)

		cfg = testNoiseConfig()
		cfg.Amplitude = 0
		_, err = Generate(cfg)
		require.Error(t, err)
	})
}

func TestDual(t *testing.T) {
	tr, err := Generate(testNoiseConfig())
	require.NoError(t, err)

	dual := tr.Dual()
	require.Equal(t, tr.Width(), dual.Width())
	require.Equal(t, tr.Height(), dual.Height())
	require.Equal(t, SourceDual, dual.Source().Kind)
	require.Equal(t, tr.Source().Seed, dual.Source().Seed)

	for y := 0; y < tr.Height(); y++ {
		for x := 0; x < tr.Width(); x++ {
			require.InDelta(t, tr.Amplitude()-tr.HeightAt(tr.Width()-1-x, y), dual.HeightAt(x, y), 1e-12)
		}
	}

	t.Run("dual of a dual is the original", func(t *testing.T) {
		back := dual.Dual()
		require.Equal(t, SourceNoise, back.Source().Kind)
		for i := range tr.heights {
			require.InDelta(t, tr.heights[i], back.heights[i], 1e-12)
		}
	})
}

func TestFromHeightmap(t *testing.T) {
	writeGradient := func(t *testing.T) string {
		t.Helper()

		img := image.NewGray(image.Rect(0, 0, 8, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 8; x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / 7)})
			}
		}

		path := filepath.Join(t.TempDir(), "heightmap.png")
		f, err := os.Create(path)
		require.NoError(t, err)
		defer f.Close()
		require.NoError(t, png.Encode(f, img))
		return path
	}

	t.Run("pixels map to heights", func(t *testing.T) {
		tr, err := FromHeightmap(writeGradient(t), HeightmapConfig{Amplitude: 10})
		require.NoError(t, err)

		require.Equal(t, 8, tr.Width())
		require.Equal(t, 4, tr.Height())
		require.Equal(t, SourceHeightmap, tr.Source().Kind)

		require.InDelta(t, 0, tr.HeightAt(0, 0), 1e-9)
		require.InDelta(t, 10, tr.HeightAt(7, 0), 1e-9)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := FromHeightmap(filepath.Join(t.TempDir(), "nope.png"), HeightmapConfig{Amplitude: 10})
		require.Error(t, err)
	})

	t.Run("zero amplitude is rejected", func(t *testing.T) {
		_, err := FromHeightmap(writeGradient(t), HeightmapConfig{})
		require.Error(t, err)
	})
}
