package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/worldgen/internal/biome"
)

type gridSource struct {
	res int
}

func (g gridSource) Resolution() int { return g.res }

func (g gridSource) ElevationAt(x, y int) float64 {
	return float64(x) / float64(g.res-1)
}

func (g gridSource) MoistureAt(x, y int) float64 {
	return float64(y) / float64(g.res-1)
}

func (g gridSource) BiomeAt(x, y int) biome.Biome {
	return biome.Classify(g.ElevationAt(x, y), g.MoistureAt(x, y))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input     string
		expected  Mode
		expectErr bool
	}{
		{input: "", expected: ModeBiome},
		{input: "biome", expected: ModeBiome},
		{input: "ELEVATION", expected: ModeElevation},
		{input: " moisture ", expected: ModeMoisture},
		{input: "heat", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.expectErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseMode("elevaton")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "elevation"`)
}

func TestRender(t *testing.T) {
	src := gridSource{res: 5}

	t.Run("biome", func(t *testing.T) {
		img, err := Render(src, ModeBiome)
		require.NoError(t, err)
		assert.Equal(t, 5, img.Bounds().Dx())
		assert.Equal(t, 5, img.Bounds().Dy())
		assert.Equal(t, biome.Ocean.Color().NRGBA(), img.NRGBAAt(0, 0))
		assert.Equal(t, src.BiomeAt(4, 4).Color().NRGBA(), img.NRGBAAt(4, 4))
	})

	t.Run("elevation", func(t *testing.T) {
		img, err := Render(src, ModeElevation)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{A: 0xff}, img.NRGBAAt(0, 3))
		assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.NRGBAAt(4, 1))
		assert.Equal(t, uint8(128), img.NRGBAAt(2, 0).R)
	})

	t.Run("moisture", func(t *testing.T) {
		img, err := Render(src, ModeMoisture)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: 0xD2, G: 0xB9, B: 0x8B, A: 0xff}, img.NRGBAAt(2, 0))
		assert.Equal(t, color.NRGBA{R: 0x1F, G: 0x4E, B: 0x9C, A: 0xff}, img.NRGBAAt(2, 4))
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := Render(src, Mode("heat"))
		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, gridSource{res: 8}, ModeBiome))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
	assert.Equal(t, 8, decoded.Bounds().Dy())
}
