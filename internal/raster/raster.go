// Package raster draws world grids as 2D images, one pixel per cell.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/suggest"
)

// ErrUnknownMode is returned for an unrecognised render mode.
var ErrUnknownMode = errors.New("unknown render mode")

// Mode selects what a rendered pixel shows.
type Mode string

const (
	ModeBiome     Mode = "biome"
	ModeElevation Mode = "elevation"
	ModeMoisture  Mode = "moisture"
)

// Modes lists every render mode.
func Modes() []Mode {
	return []Mode{ModeBiome, ModeElevation, ModeMoisture}
}

// ParseMode resolves a mode name. The empty string selects ModeBiome.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ModeBiome, nil
	}

	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		if string(m) == key {
			return m, nil
		}
		names = append(names, string(m))
	}
	return "", fmt.Errorf("%w: %q%s", ErrUnknownMode, name, suggest.Hint(key, names))
}

// Source is the view of a world the rasterizer reads.
type Source interface {
	Resolution() int
	ElevationAt(x, y int) float64
	MoistureAt(x, y int) float64
	BiomeAt(x, y int) biome.Biome
}

// Render draws src with x increasing to the right and y increasing downwards.
func Render(src Source, mode Mode) (*image.NRGBA, error) {
	var pixel func(x, y int) color.NRGBA
	switch mode {
	case ModeBiome:
		pixel = func(x, y int) color.NRGBA { return src.BiomeAt(x, y).Color().NRGBA() }
	case ModeElevation:
		pixel = func(x, y int) color.NRGBA { return gray(src.ElevationAt(x, y)) }
	case ModeMoisture:
		pixel = func(x, y int) color.NRGBA { return moistureTint(src.MoistureAt(x, y)) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	res := src.Resolution()
	img := image.NewNRGBA(image.Rect(0, 0, res, res))
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			img.SetNRGBA(x, y, pixel(x, y))
		}
	}
	return img, nil
}

// EncodePNG renders src and writes it to w as PNG.
func EncodePNG(w io.Writer, src Source, mode Mode) error {
	img, err := Render(src, mode)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	default:
		return uint8(v*255 + 0.5)
	}
}

func gray(v float64) color.NRGBA {
	c := channel(v)
	return color.NRGBA{R: c, G: c, B: c, A: 0xff}
}

// moistureTint fades from sand at 0 to deep blue at 1.
func moistureTint(v float64) color.NRGBA {
	dry := color.NRGBA{R: 0xD2, G: 0xB9, B: 0x8B, A: 0xff}
	wet := color.NRGBA{R: 0x1F, G: 0x4E, B: 0x9C, A: 0xff}
	t := float64(channel(v)) / 255
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.NRGBA{R: lerp(dry.R, wet.R), G: lerp(dry.G, wet.G), B: lerp(dry.B, wet.B), A: 0xff}
}
