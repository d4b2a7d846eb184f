package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/encoding/json"

	"github.com/terrascape/terrascape/http"
	"github.com/terrascape/terrascape/obj"
	"github.com/terrascape/terrascape/scape"
	"github.com/terrascape/terrascape/terrain"
)

var (
	// The terrascape version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "terrascape_info",
		Help:        "Terrascape information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Output        string  `cli:""        env:"TERRASCAPE_OUTPUT"         help:"Output obj filename."`
	Source        string  `cli:""        env:"TERRASCAPE_SOURCE"         help:"Terrain source (random|heightmap)."`
	Heightmap     string  `cli:""        env:"TERRASCAPE_HEIGHTMAP"      help:"Input grayscale heightmap, required with the heightmap source."`
	Width         int     `cli:""        env:"TERRASCAPE_WIDTH"          help:"The width of the terrain in vertices."`
	Depth         int     `cli:""        env:"TERRASCAPE_DEPTH"          help:"The depth of the terrain in vertices."`
	Seed          uint64  `cli:""        env:"TERRASCAPE_SEED"           help:"The noise seed. Zero picks a time-derived seed, recorded in the obj file."`
	Octaves       int     `cli:",hidden" env:"TERRASCAPE_OCTAVES"        help:"The number of noise octaves."`
	Frequency     float64 `cli:",hidden" env:"TERRASCAPE_FREQUENCY"      help:"The base noise frequency."`
	Gain          float64 `cli:",hidden" env:"TERRASCAPE_GAIN"           help:"The amplitude multiplier between octaves."`
	Lacunarity    float64 `cli:",hidden" env:"TERRASCAPE_LACUNARITY"     help:"The frequency multiplier between octaves."`
	Amplitude     float64 `cli:""        env:"TERRASCAPE_AMPLITUDE"      help:"The maximum height of the terrain above the base."`
	BaseThickness float64 `cli:""        env:"TERRASCAPE_BASE_THICKNESS" help:"The thickness of the base upon which the terrain is generated."`
	Smoothness    float64 `cli:",hidden" env:"TERRASCAPE_SMOOTHNESS"     help:"How much to blur the heightmap before meshing."`
	MaxVertices   int     `cli:""        env:"TERRASCAPE_MAX_VERTICES"   help:"Simplify the terrain to at most this many vertices. Zero writes the dense grid."`
	Dual          bool    `cli:""        env:"TERRASCAPE_DUAL"           help:"Also generate the dual of the terrain."`
	AdminAddr     string  `cli:",hidden" env:"TERRASCAPE_ADMIN_ADDR"     help:"Admin listening address, serving metrics and refinement progress."`
	LogLevel      string  `cli:""        env:"TERRASCAPE_LOG_LEVEL"      help:"Log level (debug|info|warning|error)."`
	LogIndent     bool    `cli:""        env:"TERRASCAPE_LOG_INDENT"     help:"Indent logs."`
	Version       bool    `cli:""        env:"-"                         help:"Show version."`
	Help          bool    `cli:""        env:"-"                         help:"Show help."`
}

func main() {
	conf := config{
		Output:     "terrain.obj",
		Source:     "random",
		Width:      51,
		Depth:      51,
		Octaves:    4,
		Frequency:  0.2,
		Gain:       2.0,
		Lacunarity: 0.5,
		Amplitude:  20,
		Smoothness: 0.3,
		LogLevel:   logs.InfoLevel.String(),
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Generates printable terrain meshes from noise or heightmaps.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if err := run(ctx, conf); err != nil && err != context.Canceled {
		logs.Fatal(err)
	}
}

func run(ctx context.Context, conf config) error {
	t, err := buildTerrain(conf)
	if err != nil {
		return errors.New("building the terrain failed").Wrap(err)
	}

	progress := http.NewProgressBroadcaster()
	var refining atomic.Bool

	if conf.AdminAddr != "" {
		admin := http.NewAdminMux(version, refining.Load, progress)
		go http.ListenAndServe(ctx, &nethttp.Server{
			Addr:    conf.AdminAddr,
			Handler: admin,
		})
	}

	logs.WithTag("version", version).
		WithTag("source", conf.Source).
		WithTag("width", t.Width()).
		WithTag("depth", t.Height()).
		WithTag("max_vertices", conf.MaxVertices).
		Info("generating terrain mesh")

	refining.Store(true)

	if err := export(conf, t, conf.Output, progress); err != nil {
		return err
	}

	if conf.Dual {
		if err := export(conf, t.Dual(), dualFilename(conf.Output), progress); err != nil {
			return err
		}
	}

	return nil
}

func buildTerrain(conf config) (*terrain.Terrain, error) {
	switch conf.Source {
	case "random":
		seed := conf.Seed
		if seed == 0 {
			seed = uint64(time.Now().Unix())
		}

		return terrain.Generate(terrain.NoiseConfig{
			Width:         conf.Width,
			Depth:         conf.Depth,
			Seed:          seed,
			Octaves:       conf.Octaves,
			Frequency:     conf.Frequency,
			Gain:          conf.Gain,
			Lacunarity:    conf.Lacunarity,
			Amplitude:     conf.Amplitude,
			BaseThickness: conf.BaseThickness,
		})

	case "heightmap":
		if conf.Heightmap == "" {
			return nil, errors.New("the heightmap source needs a heightmap file")
		}

		return terrain.FromHeightmap(conf.Heightmap, terrain.HeightmapConfig{
			Amplitude:     conf.Amplitude,
			BaseThickness: conf.BaseThickness,
			Smoothness:    conf.Smoothness,
		})

	default:
		return nil, errors.New("unknown terrain source").
			WithTag("source", conf.Source)
	}
}

func export(conf config, t *terrain.Terrain, output string, progress *http.ProgressBroadcaster) error {
	f, err := os.Create(output)
	if err != nil {
		return errors.New("creating the output file failed").
			WithTag("output", output).
			Wrap(err)
	}
	defer f.Close()

	start := time.Now()

	if conf.MaxVertices <= 0 {
		if err := obj.WriteTerrain(f, t, true); err != nil {
			return err
		}
	} else {
		m, err := scape.Refine(t, scape.Options{
			MaxVertices: conf.MaxVertices,
			OnInsert: func(p scape.Progress) {
				progress.Publish(p)
			},
		})
		if err != nil {
			return errors.New("refining the terrain failed").Wrap(err)
		}

		logs.WithTag("vertices", m.VertexCount()).
			WithTag("triangles", m.TriangleCount()).
			Info("refinement done")

		if err := obj.WriteMesh(f, m, t); err != nil {
			return err
		}
	}

	logs.WithTag("output", output).
		WithTag("duration", time.Since(start)).
		Info("terrain mesh written")

	return nil
}

// dualFilename turns name.obj into name-dual.obj.
func dualFilename(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "-dual" + ext
}
