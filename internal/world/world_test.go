package world

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/testutil"
)

// MockSampler is a testify mock of noise.Sampler.
type MockSampler struct {
	mock.Mock
}

func (m *MockSampler) Sample(x, y float64) float64 {
	args := m.Called(x, y)
	return args.Get(0).(float64)
}

func constant(v float64) noise.Sampler {
	return noise.SamplerFunc(func(_, _ float64) float64 { return v })
}

func smallConfig(seed int64, resolution int) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Resolution = resolution
	return cfg
}

func TestNew_Deterministic(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)

	for _, algorithm := range noise.Algorithms() {
		t.Run(string(algorithm), func(t *testing.T) {
			cfg := smallConfig(1234, 48)
			cfg.Algorithm = algorithm

			a, err := New(ctx, cfg, nil)
			require.NoError(t, err)
			b, err := New(ctx, cfg, nil)
			require.NoError(t, err)

			assert.True(t, a.Elevation().Equal(b.Elevation()), "elevation grids must be bit-identical")
			assert.True(t, a.Moisture().Equal(b.Moisture()), "moisture grids must be bit-identical")
			assert.Equal(t, a.Biomes(), b.Biomes())
			assert.Equal(t, a.Fingerprint(), b.Fingerprint())
			assert.Equal(t, a.ETag(), b.ETag())
		})
	}
}

func TestNew_DifferentSeeds(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)

	a, err := New(ctx, smallConfig(1, 32), nil)
	require.NoError(t, err)
	b, err := New(ctx, smallConfig(2, 32), nil)
	require.NoError(t, err)

	assert.False(t, a.Elevation().Equal(b.Elevation()))
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestNew_RangeInvariant(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)

	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg, err := Preset(name)
			require.NoError(t, err)
			cfg.Seed = 77
			cfg.Resolution = 40

			w, err := New(ctx, cfg, nil)
			require.NoError(t, err)

			for _, g := range []*Grid{w.Elevation(), w.Moisture()} {
				lo, hi := g.MinMax()
				assert.GreaterOrEqual(t, lo, 0.0)
				assert.LessOrEqual(t, hi, 1.0)
			}
		})
	}
}

func TestNew_ChannelsDecorrelated(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	w, err := New(testutil.CreateTestContext(t), smallConfig(5, 32), nil)
	require.NoError(t, err)

	assert.False(t, w.Elevation().Equal(w.Moisture()))
	assert.NotEqual(t, w.Field().SubSeed(noise.Elevation), w.Field().SubSeed(noise.Moisture))
}

func TestNew_WorkerCountDoesNotChangeOutput(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)

	sequential := smallConfig(99, 37)
	sequential.Workers = 1
	reference, err := New(ctx, sequential, nil)
	require.NoError(t, err)

	for _, workers := range []int{0, 2, 3, 8, 64} {
		cfg := smallConfig(99, 37)
		cfg.Workers = workers

		w, err := New(ctx, cfg, nil)
		require.NoError(t, err)
		assert.True(t, reference.Elevation().Equal(w.Elevation()), "workers=%d", workers)
		assert.True(t, reference.Moisture().Equal(w.Moisture()), "workers=%d", workers)
		assert.Equal(t, reference.Fingerprint(), w.Fingerprint(), "workers=%d", workers)
	}
}

func TestNewWithField_ExactValues(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	field := noise.NewFieldFromSamplers(constant(0), constant(0), noise.Bounds{Min: -1, Max: 1})
	w, err := NewWithField(testutil.CreateTestContext(t), smallConfig(0, 8), field, nil)
	require.NoError(t, err)

	// Every octave normalises to 0.5, so the weighted mean is 0.5 before shaping.
	expectedElevation := math.Pow(0.5, DefaultElevationExponent)
	expectedMoisture := math.Pow(0.5, DefaultMoistureExponent)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Equal(t, expectedElevation, w.ElevationAt(x, y))
			assert.Equal(t, expectedMoisture, w.MoistureAt(x, y))
			assert.Equal(t, biome.Classify(expectedElevation, expectedMoisture), w.BiomeAt(x, y))
		}
	}
	assert.Equal(t, noise.Custom, w.Algorithm())
}

func TestNewWithField_SamplesEveryOctave(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	elevation := new(MockSampler)
	moisture := new(MockSampler)
	elevation.On("Sample", mock.Anything, mock.Anything).Return(0.0)
	moisture.On("Sample", mock.Anything, mock.Anything).Return(0.0)

	cfg := smallConfig(0, 4)
	cfg.Workers = 1
	field := noise.NewFieldFromSamplers(elevation, moisture, noise.Bounds{Min: -1, Max: 1})

	_, err := NewWithField(testutil.CreateTestContext(t), cfg, field, nil)
	require.NoError(t, err)

	calls := 4 * 4 * len(DefaultOctaves())
	elevation.AssertNumberOfCalls(t, "Sample", calls)
	moisture.AssertNumberOfCalls(t, "Sample", calls)

	// Cell (2, 1) at the 4x octave samples (2/4*40, 1/4*40).
	elevation.AssertCalled(t, "Sample", 20.0, 10.0)
}

func TestNewWithField_CoordinateOffsetCentresSampling(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	elevation := new(MockSampler)
	moisture := new(MockSampler)
	elevation.On("Sample", mock.Anything, mock.Anything).Return(0.0)
	moisture.On("Sample", mock.Anything, mock.Anything).Return(0.0)

	cfg := smallConfig(0, 4)
	cfg.Workers = 1
	cfg.CoordinateOffset = 0.5
	field := noise.NewFieldFromSamplers(elevation, moisture, noise.Bounds{Min: -1, Max: 1})

	_, err := NewWithField(testutil.CreateTestContext(t), cfg, field, nil)
	require.NoError(t, err)

	// Cell (0, 0) at the 1x octave samples (-0.5*10, -0.5*10).
	elevation.AssertCalled(t, "Sample", -5.0, -5.0)
	// Cell (2, 1) at the 4x octave samples (0*40, -0.25*40).
	elevation.AssertCalled(t, "Sample", 0.0, -10.0)
	elevation.AssertNotCalled(t, "Sample", 20.0, 10.0)
}

func TestNew_HugeResolutionFailsFast(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = math.MaxInt32

	assert.NotPanics(t, func() {
		_, err := New(context.Background(), cfg, nil)
		assert.ErrorIs(t, err, ErrInvalidResolution)
	})
}

func TestNewWithField_NilField(t *testing.T) {
	_, err := NewWithField(context.Background(), DefaultConfig(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOceanClamp(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)
	field := noise.NewFieldFromSamplers(constant(-1), constant(0), noise.Bounds{Min: -1, Max: 1})

	cfg := smallConfig(0, 6)
	unclamped, err := NewWithField(ctx, cfg, field, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, unclamped.ElevationAt(3, 3))

	cfg.OceanClamp = OceanClamp{Enabled: true, Level: DefaultOceanLevel}
	clamped, err := NewWithField(ctx, cfg, field, nil)
	require.NoError(t, err)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			assert.Equal(t, DefaultOceanLevel, clamped.ElevationAt(x, y))
			assert.Equal(t, biome.Ocean, clamped.BiomeAt(x, y))
		}
	}
}

func TestRegenerate(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)

	w, err := New(ctx, smallConfig(10, 32), nil)
	require.NoError(t, err)
	firstField := w.Field()

	t.Run("resolution change replaces grids", func(t *testing.T) {
		require.NoError(t, w.Regenerate(ctx, 10, 12))
		assert.Equal(t, 12, w.Resolution())
		assert.Equal(t, 12, w.Elevation().Resolution())
		assert.Equal(t, 12, w.Moisture().Resolution())
		assert.Len(t, w.Elevation().Values(), 144)
		assert.Len(t, w.Biomes(), 144)
		assert.NotSame(t, firstField, w.Field(), "noise field must be rebuilt")

		_, err := w.Biome(12, 0)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("same parameters reproduce the same world", func(t *testing.T) {
		fresh, err := New(ctx, smallConfig(10, 12), nil)
		require.NoError(t, err)
		assert.True(t, fresh.Elevation().Equal(w.Elevation()))
		assert.Equal(t, fresh.Fingerprint(), w.Fingerprint())
	})

	t.Run("invalid resolution leaves world untouched", func(t *testing.T) {
		before := w.Fingerprint()
		err := w.Regenerate(ctx, 11, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidResolution)
		assert.Equal(t, before, w.Fingerprint())
		assert.Equal(t, int64(10), w.Seed())
		assert.Equal(t, 12, w.Resolution())
	})

	t.Run("cancelled context leaves world untouched", func(t *testing.T) {
		before := w.Fingerprint()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := w.Regenerate(cancelled, 11, 16)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, before, w.Fingerprint())
		assert.Equal(t, 12, w.Resolution())
	})
}

func TestReconfigure(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	ctx := testutil.CreateTestContext(t)

	w, err := New(ctx, smallConfig(3, 16), nil)
	require.NoError(t, err)

	cfg := smallConfig(3, 16)
	cfg.Algorithm = noise.Perlin
	require.NoError(t, w.Reconfigure(ctx, cfg))
	assert.Equal(t, noise.Perlin, w.Algorithm())
	assert.Equal(t, noise.Perlin, w.Field().Algorithm())

	cfg.Algorithm = "simplexx"
	err = w.Reconfigure(ctx, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, noise.Perlin, w.Algorithm())
}

func TestCell(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	w, err := New(testutil.CreateTestContext(t), smallConfig(8, 10), nil)
	require.NoError(t, err)

	tests := []struct {
		name      string
		x, y      int
		expectErr bool
	}{
		{name: "origin", x: 0, y: 0},
		{name: "far corner", x: 9, y: 9},
		{name: "negative x", x: -1, y: 0, expectErr: true},
		{name: "y past edge", x: 0, y: 10, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, err := w.Cell(tt.x, tt.y)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrOutOfBounds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, w.ElevationAt(tt.x, tt.y), cell.Elevation)
			assert.Equal(t, w.MoistureAt(tt.x, tt.y), cell.Moisture)
			assert.Equal(t, biome.Classify(cell.Elevation, cell.Moisture), cell.Biome)
			assert.Equal(t, cell.Biome.Color().Hex(), cell.Color)
		})
	}
}

func TestHistogram(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	w, err := New(testutil.CreateTestContext(t), smallConfig(21, 20), nil)
	require.NoError(t, err)

	total := 0
	for b, n := range w.Histogram() {
		assert.True(t, b.Valid())
		assert.Positive(t, n)
		total += n
	}
	assert.Equal(t, 400, total)
}

func TestGeneratedAtAndDuration(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	w, err := New(testutil.CreateTestContext(t), smallConfig(1, 8), nil)
	require.NoError(t, err)
	assert.False(t, w.GeneratedAt().IsZero())
	assert.GreaterOrEqual(t, int64(w.Duration()), int64(0))
}
