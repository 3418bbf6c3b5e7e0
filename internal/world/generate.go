package world

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/noise"
)

// grids is the output of one full generation pass.
type grids struct {
	elevation *Grid
	moisture  *Grid
	biomes    []biome.Biome
}

// generate fills fresh elevation and moisture grids for cfg. Rows are
// independent, so they are striped across workers; the result does not
// depend on the worker count.
func generate(ctx context.Context, cfg Config, field *noise.Field) (*grids, error) {
	res := cfg.Resolution
	out := &grids{
		elevation: newGrid(res),
		moisture:  newGrid(res),
		biomes:    make([]biome.Biome, res*res),
	}

	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > res {
		workers = res
	}

	s := newSynth(cfg, field)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		first := w
		g.Go(func() error {
			for y := first; y < res; y += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				s.fillRow(out, y)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// synth evaluates the per-cell octave sum for one configuration.
type synth struct {
	cfg    Config
	field  *noise.Field
	weight float64
	res    float64
}

func newSynth(cfg Config, field *noise.Field) *synth {
	return &synth{
		cfg:    cfg,
		field:  field,
		weight: cfg.totalWeight(),
		res:    float64(cfg.Resolution),
	}
}

func (s *synth) fillRow(out *grids, y int) {
	res := s.cfg.Resolution
	for x := 0; x < res; x++ {
		e := s.value(noise.Elevation, x, y, s.cfg.ElevationExponent)
		m := s.value(noise.Moisture, x, y, s.cfg.MoistureExponent)

		b := biome.Classify(e, m)
		if b == biome.Ocean && s.cfg.OceanClamp.Enabled {
			e = s.cfg.OceanClamp.Level
		}

		out.elevation.set(x, y, e)
		out.moisture.set(x, y, m)
		out.biomes[y*res+x] = b
	}
}

// value sums the weighted normalised octaves for channel at cell (x, y),
// renormalises by the total weight and applies the shaping exponent.
func (s *synth) value(channel noise.Channel, x, y int, exponent float64) float64 {
	nx := float64(x)/s.res - s.cfg.CoordinateOffset
	ny := float64(y)/s.res - s.cfg.CoordinateOffset

	var sum float64
	for _, o := range s.cfg.Octaves {
		freq := o.Frequency * s.cfg.BaseFrequency
		sum += o.Weight * s.field.SampleNormalized(channel, nx*freq, ny*freq)
	}

	v := math.Pow(sum/s.weight, exponent)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
