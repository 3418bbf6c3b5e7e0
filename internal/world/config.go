package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/noise"
)

var (
	// ErrInvalidResolution is returned for a resolution that is not positive
	// or exceeds the configured maximum.
	ErrInvalidResolution = errors.New("invalid resolution")
	// ErrInvalidConfig is returned for any other rejected generation parameter.
	ErrInvalidConfig = errors.New("invalid world config")
	// ErrOutOfBounds is returned when a cell coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
)

// Octave is one layer of fractal noise. Frequency multiplies the base frequency.
type Octave struct {
	Weight    float64 `json:"weight" toml:"weight"`
	Frequency float64 `json:"frequency" toml:"frequency"`
}

// DefaultOctaves are the three octaves summed per channel: weights 1, 0.5 and
// 0.25 at 1x, 2x and 4x the base frequency.
func DefaultOctaves() []Octave {
	return []Octave{
		{Weight: 1, Frequency: 1},
		{Weight: 0.5, Frequency: 2},
		{Weight: 0.25, Frequency: 4},
	}
}

// OceanClamp flattens every ocean cell to a single elevation after
// generation, giving meshes a level sea surface.
type OceanClamp struct {
	Enabled bool    `json:"enabled"`
	Level   float64 `json:"level"`
}

// Config holds every generation parameter of a world.
type Config struct {
	Seed       int64           `json:"seed"`
	Resolution int             `json:"resolution"`
	Algorithm  noise.Algorithm `json:"algorithm"`

	BaseFrequency     float64  `json:"base_frequency"`
	ElevationExponent float64  `json:"elevation_exponent"`
	MoistureExponent  float64  `json:"moisture_exponent"`
	Octaves           []Octave `json:"octaves"`
	// CoordinateOffset is subtracted from the unit cell coordinate before
	// sampling. 0.5 centres the sampled window on the noise origin.
	CoordinateOffset float64 `json:"coordinate_offset"`

	OceanClamp OceanClamp `json:"ocean_clamp"`
	// HeightScale divides elevation when building meshes.
	HeightScale float64 `json:"height_scale"`

	// Workers bounds row-parallel generation. Zero uses GOMAXPROCS, one is sequential.
	Workers int `json:"-"`
	// MaxResolution caps Resolution when positive.
	MaxResolution int `json:"-"`
}

// Default generation constants.
const (
	DefaultSeed              = 0
	DefaultResolution        = 512
	DefaultBaseFrequency     = 10.0
	DefaultElevationExponent = 2.25
	DefaultMoistureExponent  = 1.35
	DefaultOceanLevel        = 0.119
)

// HardMaxResolution bounds Resolution even when MaxResolution is unset, so
// grid sizes stay far from int overflow.
const HardMaxResolution = 1 << 15

// DefaultConfig returns the configuration of the default preset.
func DefaultConfig() Config {
	return Config{
		Seed:              DefaultSeed,
		Resolution:        DefaultResolution,
		Algorithm:         noise.DefaultAlgorithm,
		BaseFrequency:     DefaultBaseFrequency,
		ElevationExponent: DefaultElevationExponent,
		MoistureExponent:  DefaultMoistureExponent,
		Octaves:           DefaultOctaves(),
		OceanClamp:        OceanClamp{Level: DefaultOceanLevel},
		HeightScale:       DefaultBaseFrequency,
	}
}

// Validate checks the configuration before any generation work starts.
func (c Config) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: %d must be positive", ErrInvalidResolution, c.Resolution)
	}
	if c.Resolution > HardMaxResolution {
		return fmt.Errorf("%w: %d exceeds hard limit %d", ErrInvalidResolution, c.Resolution, HardMaxResolution)
	}
	if c.MaxResolution > 0 && c.Resolution > c.MaxResolution {
		return fmt.Errorf("%w: %d exceeds maximum %d", ErrInvalidResolution, c.Resolution, c.MaxResolution)
	}
	if _, err := noise.ParseAlgorithm(string(c.Algorithm)); err != nil && c.Algorithm != noise.Custom {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.BaseFrequency <= 0 {
		return fmt.Errorf("%w: base frequency must be positive, got %g", ErrInvalidConfig, c.BaseFrequency)
	}
	if c.ElevationExponent <= 0 {
		return fmt.Errorf("%w: elevation exponent must be positive, got %g", ErrInvalidConfig, c.ElevationExponent)
	}
	if c.MoistureExponent <= 0 {
		return fmt.Errorf("%w: moisture exponent must be positive, got %g", ErrInvalidConfig, c.MoistureExponent)
	}
	if len(c.Octaves) == 0 {
		return fmt.Errorf("%w: at least one octave is required", ErrInvalidConfig)
	}
	for i, o := range c.Octaves {
		if o.Weight <= 0 || o.Frequency <= 0 {
			return fmt.Errorf("%w: octave %d needs positive weight and frequency", ErrInvalidConfig, i)
		}
	}
	if c.OceanClamp.Enabled && (c.OceanClamp.Level < 0 || c.OceanClamp.Level >= biome.OceanLevel) {
		return fmt.Errorf("%w: ocean clamp level %g must be in [0, %g)", ErrInvalidConfig, c.OceanClamp.Level, biome.OceanLevel)
	}
	if c.HeightScale <= 0 {
		return fmt.Errorf("%w: height scale must be positive, got %g", ErrInvalidConfig, c.HeightScale)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if math.IsNaN(c.CoordinateOffset) || math.IsInf(c.CoordinateOffset, 0) {
		return fmt.Errorf("%w: coordinate offset must be finite, got %g", ErrInvalidConfig, c.CoordinateOffset)
	}
	return nil
}

// totalWeight is the sum of octave weights used to renormalise into [0,1].
func (c Config) totalWeight() float64 {
	var total float64
	for _, o := range c.Octaves {
		total += o.Weight
	}
	return total
}

func (c Config) clone() Config {
	out := c
	out.Octaves = append([]Octave(nil), c.Octaves...)
	return out
}
