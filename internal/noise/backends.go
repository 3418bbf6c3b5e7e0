package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// OpenSimplexBounds is the theoretical range of 2D OpenSimplex noise, ±sqrt(3/4).
var OpenSimplexBounds = Bounds{Min: -math.Sqrt(3.0 / 4.0), Max: math.Sqrt(3.0 / 4.0)}

// PerlinBounds is the theoretical range of single-octave 2D Perlin noise, ±sqrt(1/2).
var PerlinBounds = Bounds{Min: -math.Sqrt(1.0 / 2.0), Max: math.Sqrt(1.0 / 2.0)}

// Perlin parameters. Octave summation happens in the world generator, so the
// backend itself runs a single octave.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 1
)

type openSimplexSampler struct {
	noise opensimplex.Noise
}

func newOpenSimplex(seed int64) Sampler {
	return &openSimplexSampler{noise: opensimplex.New(seed)}
}

func (s *openSimplexSampler) Sample(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}

type perlinSampler struct {
	noise *perlin.Perlin
}

func newPerlin(seed int64) Sampler {
	return &perlinSampler{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

func (s *perlinSampler) Sample(x, y float64) float64 {
	return s.noise.Noise2D(x, y)
}
