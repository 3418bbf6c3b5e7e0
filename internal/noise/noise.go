// Package noise provides the seeded 2D gradient-noise fields that drive
// world generation. A Field holds one Sampler per channel (elevation and
// moisture) and knows the theoretical output bounds of its backend so raw
// samples can be rescaled into [0,1].
package noise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/VoidMesh/worldgen/internal/suggest"
)

// ErrUnknownAlgorithm is returned when a noise backend name is not recognised.
var ErrUnknownAlgorithm = errors.New("unknown noise algorithm")

// Sampler is any continuous, deterministic 2D noise function.
type Sampler interface {
	Sample(x, y float64) float64
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func(x, y float64) float64

// Sample calls f(x, y).
func (f SamplerFunc) Sample(x, y float64) float64 {
	return f(x, y)
}

// Algorithm names a noise backend.
type Algorithm string

const (
	OpenSimplex Algorithm = "opensimplex"
	Perlin      Algorithm = "perlin"

	// Custom marks fields built from injected samplers.
	Custom Algorithm = "custom"
)

// DefaultAlgorithm is used when no backend is configured.
const DefaultAlgorithm = OpenSimplex

// Algorithms lists every supported backend.
func Algorithms() []Algorithm {
	return []Algorithm{OpenSimplex, Perlin}
}

// ParseAlgorithm resolves a backend name. The empty string selects the default.
func ParseAlgorithm(name string) (Algorithm, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return DefaultAlgorithm, nil
	}

	for _, a := range Algorithms() {
		if string(a) == normalized {
			return a, nil
		}
	}

	names := make([]string, 0, len(Algorithms()))
	for _, a := range Algorithms() {
		names = append(names, string(a))
	}
	return "", fmt.Errorf("%w: %q%s", ErrUnknownAlgorithm, name, suggest.Hint(normalized, names))
}

// Bounds is the theoretical output range of a backend.
type Bounds struct {
	Min float64
	Max float64
}

// Normalize linearly rescales v from the bounds into [0,1]. Values the
// backend produces outside its documented range are clamped.
func (b Bounds) Normalize(v float64) float64 {
	n := (v - b.Min) / (b.Max - b.Min)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	default:
		return n
	}
}

// Channel selects which of a field's two noise functions to sample.
type Channel int

const (
	Elevation Channel = iota
	Moisture
)

func (c Channel) String() string {
	switch c {
	case Elevation:
		return "elevation"
	case Moisture:
		return "moisture"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Field is the pair of decorrelated noise functions derived from one world seed.
type Field struct {
	algorithm Algorithm
	seed      int64
	subSeeds  [2]int64
	samplers  [2]Sampler
	bounds    Bounds
}

// NewField builds the elevation and moisture samplers for seed. It only fails
// for an unknown algorithm; every seed is valid.
func NewField(algorithm Algorithm, seed int64) (*Field, error) {
	resolved, impl, err := backendFor(algorithm)
	if err != nil {
		return nil, err
	}

	elevationSeed, moistureSeed := DeriveSeeds(seed)
	return &Field{
		algorithm: resolved,
		seed:      seed,
		subSeeds:  [2]int64{elevationSeed, moistureSeed},
		samplers:  [2]Sampler{impl.build(elevationSeed), impl.build(moistureSeed)},
		bounds:    impl.bounds,
	}, nil
}

// NewFieldFromSamplers wraps caller supplied samplers, e.g. precomputed or fake noise.
func NewFieldFromSamplers(elevation, moisture Sampler, bounds Bounds) *Field {
	return &Field{
		algorithm: Custom,
		samplers:  [2]Sampler{elevation, moisture},
		bounds:    bounds,
	}
}

// Sample returns the raw backend value for channel at (x, y).
func (f *Field) Sample(channel Channel, x, y float64) float64 {
	return f.samplers[channel].Sample(x, y)
}

// SampleNormalized returns the channel value at (x, y) rescaled into [0,1].
func (f *Field) SampleNormalized(channel Channel, x, y float64) float64 {
	return f.bounds.Normalize(f.Sample(channel, x, y))
}

// Sampler exposes the underlying noise function of channel.
func (f *Field) Sampler(channel Channel) Sampler {
	return f.samplers[channel]
}

func (f *Field) Algorithm() Algorithm { return f.algorithm }

func (f *Field) Seed() int64 { return f.seed }

// SubSeed is the seed the channel's backend was built with.
func (f *Field) SubSeed(channel Channel) int64 { return f.subSeeds[channel] }

func (f *Field) Bounds() Bounds { return f.bounds }

type backend struct {
	build  func(seed int64) Sampler
	bounds Bounds
}

func backendFor(algorithm Algorithm) (Algorithm, backend, error) {
	resolved, err := ParseAlgorithm(string(algorithm))
	if err != nil {
		return "", backend{}, err
	}

	switch resolved {
	case Perlin:
		return resolved, backend{build: newPerlin, bounds: PerlinBounds}, nil
	default:
		return resolved, backend{build: newOpenSimplex, bounds: OpenSimplexBounds}, nil
	}
}
