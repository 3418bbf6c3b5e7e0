package biome

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		elevation float64
		moisture  float64
		expected  Biome
	}{
		{name: "deep water", elevation: 0.05, moisture: 0.5, expected: Ocean},
		{name: "shoreline", elevation: 0.13, moisture: 0.5, expected: Beach},
		{name: "dry peak", elevation: 0.9, moisture: 0.05, expected: Scorched},
		{name: "wet peak", elevation: 0.9, moisture: 0.9, expected: Snow},
		{name: "wet upland", elevation: 0.4, moisture: 0.9, expected: TemperateRainForest},
		{name: "wet lowland", elevation: 0.2, moisture: 0.95, expected: TropicalRainForest},

		{name: "ocean threshold is strict", elevation: 0.12, moisture: 0.5, expected: Beach},
		{name: "beach threshold is strict", elevation: 0.14, moisture: 0.5, expected: TropicalSeasonalForest},
		{name: "zero elevation", elevation: 0, moisture: 0, expected: Ocean},
		{name: "top corner", elevation: 1, moisture: 1, expected: Snow},

		{name: "mountain bare", elevation: 0.85, moisture: 0.15, expected: Bare},
		{name: "mountain tundra", elevation: 0.85, moisture: 0.3, expected: Tundra},
		{name: "mountain snow at threshold", elevation: 0.85, moisture: 0.5, expected: Snow},
		{name: "0.8 is not mountain", elevation: 0.8, moisture: 0.05, expected: TemperateDesert},

		{name: "highland desert", elevation: 0.7, moisture: 0.2, expected: TemperateDesert},
		{name: "highland shrubland", elevation: 0.7, moisture: 0.5, expected: Shrubland},
		{name: "highland taiga", elevation: 0.7, moisture: 0.7, expected: Taiga},
		{name: "0.6 is not highland", elevation: 0.6, moisture: 0.7, expected: TemperateDeciduousForest},

		{name: "upland desert", elevation: 0.45, moisture: 0.1, expected: TemperateDesert},
		{name: "upland grassland", elevation: 0.45, moisture: 0.3, expected: Grassland},
		{name: "upland deciduous", elevation: 0.45, moisture: 0.6, expected: TemperateDeciduousForest},
		{name: "0.3 is lowland", elevation: 0.3, moisture: 0.1, expected: SubtropicalDesert},

		{name: "lowland grassland", elevation: 0.2, moisture: 0.2, expected: Grassland},
		{name: "lowland seasonal forest", elevation: 0.2, moisture: 0.5, expected: TropicalSeasonalForest},
		{name: "lowland rain forest at threshold", elevation: 0.2, moisture: 0.66, expected: TropicalRainForest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.elevation, tt.moisture))
		})
	}
}

func TestClassify_Total(t *testing.T) {
	seen := make(map[Biome]bool)
	for ei := 0; ei <= 100; ei++ {
		for mi := 0; mi <= 100; mi++ {
			b := Classify(float64(ei)/100, float64(mi)/100)
			require.True(t, b.Valid(), "classify(%d, %d) returned invalid biome", ei, mi)
			seen[b] = true
		}
	}
	assert.Len(t, seen, Count(), "every biome should be reachable")
}

func TestBiome_Colors(t *testing.T) {
	tests := []struct {
		biome Biome
		hex   string
	}{
		{Ocean, "#43437A"},
		{Beach, "#8D8177"},
		{Snow, "#DEDEE5"},
		{TemperateRainForest, "#438855"},
		{TropicalRainForest, "#337755"},
	}

	for _, tt := range tests {
		t.Run(tt.biome.String(), func(t *testing.T) {
			assert.Equal(t, tt.hex, tt.biome.Color().Hex())
		})
	}

	r, g, b := Ocean.Color().Float()
	assert.InDelta(t, 67.0/255, r, 1e-6)
	assert.InDelta(t, 67.0/255, g, 1e-6)
	assert.InDelta(t, 122.0/255, b, 1e-6)

	assert.Equal(t, uint8(0xff), Grassland.Color().NRGBA().A)
}

func TestBiome_Invalid(t *testing.T) {
	invalid := Biome(200)
	assert.False(t, invalid.Valid())
	assert.Equal(t, "BIOME(200)", invalid.String())
	assert.Equal(t, Color{}, invalid.Color())

	_, err := invalid.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownBiome)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    Biome
		expectErr   bool
		errContains string
	}{
		{name: "canonical", input: "TAIGA", expected: Taiga},
		{name: "lower case", input: "ocean", expected: Ocean},
		{name: "spaces", input: "temperate rain forest", expected: TemperateRainForest},
		{name: "dashes", input: "tropical-seasonal-forest", expected: TropicalSeasonalForest},
		{name: "typo", input: "TUNDRAA", expectErr: true, errContains: `did you mean "TUNDRA"`},
		{name: "garbage", input: "lava", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownBiome)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBiome_JSON(t *testing.T) {
	payload := map[string]Biome{"cell": Shrubland}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cell":"SHRUBLAND"}`, string(data))

	var decoded map[string]Biome
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Shrubland, decoded["cell"])
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 15)
	assert.Equal(t, Ocean, all[0])
	assert.Equal(t, TropicalRainForest, all[len(all)-1])
}

func TestDescribe_Golden(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	testutil.AssertGoldenJSON(t, "biome_table", Describe())
}
