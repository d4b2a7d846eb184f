package terrain

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/disintegration/imaging"
)

// HeightmapConfig parameterizes the decoding of a grayscale heightmap into a
// terrain.
type HeightmapConfig struct {
	// Amplitude is the height a full-white pixel maps to, above
	// BaseThickness.
	Amplitude     float64
	BaseThickness float64

	// Smoothness is the sigma of the Gaussian blur applied to the image
	// before sampling. Zero disables smoothing.
	Smoothness float64
}

// FromHeightmap decodes the image at path, converts it to grayscale, blurs
// it and maps every pixel to a height. Rows are flipped so that the bottom
// image row becomes the first terrain row.
func FromHeightmap(path string, cfg HeightmapConfig) (*Terrain, error) {
	if cfg.Amplitude <= 0 {
		return nil, errors.New("amplitude must be positive").
			WithTag("amplitude", cfg.Amplitude)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.New("opening heightmap failed").
			WithTag("path", path).
			Wrap(err)
	}

	gray := imaging.Grayscale(img)
	if cfg.Smoothness > 0 {
		gray = imaging.Blur(gray, cfg.Smoothness)
	}

	bounds := gray.Bounds()
	width := bounds.Dx()
	depth := bounds.Dy()
	if width < 2 || depth < 2 {
		return nil, errors.New("heightmap must be at least 2x2 pixels").
			WithTag("path", path).
			WithTag("width", width).
			WithTag("depth", depth)
	}

	heights := make([]float64, width*depth)
	for y := 0; y < depth; y++ {
		for x := 0; x < width; x++ {
			// grayscale pixels have equal channels, sampling red is enough
			v := gray.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y).R

			i := (depth-1-y)*width + x
			heights[i] = cfg.BaseThickness + float64(v)/255*cfg.Amplitude
		}
	}

	return &Terrain{
		heights:   heights,
		width:     width,
		depth:     depth,
		amplitude: cfg.Amplitude,
		source:    Source{Kind: SourceHeightmap},
	}, nil
}
