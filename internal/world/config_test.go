package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/noise"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr error
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "custom algorithm is accepted", mutate: func(c *Config) { c.Algorithm = noise.Custom }},
		{name: "zero resolution", mutate: func(c *Config) { c.Resolution = 0 }, expectedErr: ErrInvalidResolution},
		{name: "negative resolution", mutate: func(c *Config) { c.Resolution = -4 }, expectedErr: ErrInvalidResolution},
		{name: "resolution above maximum", mutate: func(c *Config) { c.MaxResolution = 256 }, expectedErr: ErrInvalidResolution},
		{name: "resolution at maximum", mutate: func(c *Config) { c.MaxResolution = 512 }},
		{name: "resolution at hard limit", mutate: func(c *Config) { c.Resolution = HardMaxResolution; c.MaxResolution = 0 }},
		{name: "resolution above hard limit", mutate: func(c *Config) { c.Resolution = HardMaxResolution + 1 }, expectedErr: ErrInvalidResolution},
		{name: "nan coordinate offset", mutate: func(c *Config) { c.CoordinateOffset = math.NaN() }, expectedErr: ErrInvalidConfig},
		{name: "negative coordinate offset", mutate: func(c *Config) { c.CoordinateOffset = -0.25 }},
		{name: "resolution whose square overflows", mutate: func(c *Config) { c.Resolution = math.MaxInt32 }, expectedErr: ErrInvalidResolution},
		{name: "hard limit applies over a larger maximum", mutate: func(c *Config) {
			c.Resolution = 2 * HardMaxResolution
			c.MaxResolution = 4 * HardMaxResolution
		}, expectedErr: ErrInvalidResolution},
		{name: "unknown algorithm", mutate: func(c *Config) { c.Algorithm = "value" }, expectedErr: ErrInvalidConfig},
		{name: "zero frequency", mutate: func(c *Config) { c.BaseFrequency = 0 }, expectedErr: ErrInvalidConfig},
		{name: "negative elevation exponent", mutate: func(c *Config) { c.ElevationExponent = -1 }, expectedErr: ErrInvalidConfig},
		{name: "zero moisture exponent", mutate: func(c *Config) { c.MoistureExponent = 0 }, expectedErr: ErrInvalidConfig},
		{name: "no octaves", mutate: func(c *Config) { c.Octaves = nil }, expectedErr: ErrInvalidConfig},
		{name: "zero octave weight", mutate: func(c *Config) { c.Octaves[1].Weight = 0 }, expectedErr: ErrInvalidConfig},
		{name: "ocean clamp at ocean threshold", mutate: func(c *Config) { c.OceanClamp = OceanClamp{Enabled: true, Level: 0.12} }, expectedErr: ErrInvalidConfig},
		{name: "disabled ocean clamp ignores level", mutate: func(c *Config) { c.OceanClamp = OceanClamp{Level: 5} }},
		{name: "zero height scale", mutate: func(c *Config) { c.HeightScale = 0 }, expectedErr: ErrInvalidConfig},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }, expectedErr: ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 512, cfg.Resolution)
	assert.Equal(t, 10.0, cfg.BaseFrequency)
	assert.Equal(t, 2.25, cfg.ElevationExponent)
	assert.Equal(t, 1.35, cfg.MoistureExponent)
	assert.Equal(t, 1.75, cfg.totalWeight())
	assert.False(t, cfg.OceanClamp.Enabled)
	assert.Equal(t, noise.OpenSimplex, cfg.Algorithm)
}

func TestConfig_CloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.clone()
	clone.Octaves[0].Weight = 9
	assert.Equal(t, 1.0, cfg.Octaves[0].Weight)
}

func TestPreset(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		check       func(t *testing.T, cfg Config)
		errContains string
	}{
		{
			name:  "empty selects default",
			input: "",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name:  "canvas",
			input: "Canvas",
			check: func(t *testing.T, cfg Config) {
				assert.Zero(t, cfg.CoordinateOffset)
				assert.Equal(t, 7.5, cfg.BaseFrequency)
				assert.Equal(t, 1.75, cfg.ElevationExponent)
				assert.Equal(t, 1.35, cfg.MoistureExponent)
			},
		},
		{
			name:  "heightmap",
			input: "heightmap",
			check: func(t *testing.T, cfg Config) {
				assert.Equal(t, 2048, cfg.Resolution)
				assert.True(t, cfg.OceanClamp.Enabled)
				assert.Equal(t, 0.119, cfg.OceanClamp.Level)
				assert.Equal(t, 5.0, cfg.HeightScale)
				assert.Equal(t, 0.5, cfg.CoordinateOffset)
			},
		},
		{name: "typo", input: "heightmapp", errContains: `did you mean "heightmap"`},
		{name: "unknown", input: "archipelago", errContains: "unknown preset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Preset(tt.input)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownPreset)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())
			tt.check(t, cfg)
		})
	}
}

func TestPreset_ReturnsFreshCopies(t *testing.T) {
	a, err := Preset("default")
	require.NoError(t, err)
	a.Octaves[0].Weight = 42

	b, err := Preset("default")
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.Octaves[0].Weight)
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"canvas", "default", "heightmap"}, PresetNames())
}
