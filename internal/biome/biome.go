// Package biome defines the fixed set of terrain categories a world cell can
// belong to, their display colors, and the elevation/moisture classifier.
package biome

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/VoidMesh/worldgen/internal/suggest"
)

// ErrUnknownBiome is returned when parsing a name that is not a biome.
var ErrUnknownBiome = errors.New("unknown biome")

// Biome identifies one of the fifteen terrain categories.
type Biome uint8

const (
	Ocean Biome = iota
	Beach
	Scorched
	Bare
	Tundra
	Snow
	TemperateDesert
	Shrubland
	Taiga
	Grassland
	TemperateDeciduousForest
	TemperateRainForest
	SubtropicalDesert
	TropicalSeasonalForest
	TropicalRainForest

	count
)

// Color is an 8-bit RGB display color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the color as #RRGGBB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Float returns the channels scaled into [0,1] for vertex coloring.
func (c Color) Float() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

// NRGBA returns an opaque image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

type info struct {
	name  string
	color Color
}

var table = [count]info{
	Ocean:                    {"OCEAN", Color{0x43, 0x43, 0x7A}},
	Beach:                    {"BEACH", Color{0x8D, 0x81, 0x77}},
	Scorched:                 {"SCORCHED", Color{0x55, 0x55, 0x55}},
	Bare:                     {"BARE", Color{0x88, 0x88, 0x88}},
	Tundra:                   {"TUNDRA", Color{0xBA, 0xBA, 0xA9}},
	Snow:                     {"SNOW", Color{0xDE, 0xDE, 0xE5}},
	TemperateDesert:          {"TEMPERATE_DESERT", Color{0xC9, 0xD2, 0x9B}},
	Shrubland:                {"SHRUBLAND", Color{0x88, 0x99, 0x77}},
	Taiga:                    {"TAIGA", Color{0x99, 0xAB, 0x77}},
	Grassland:                {"GRASSLAND", Color{0x88, 0xAB, 0x55}},
	TemperateDeciduousForest: {"TEMPERATE_DECIDUOUS_FOREST", Color{0x67, 0x93, 0x59}},
	TemperateRainForest:      {"TEMPERATE_RAIN_FOREST", Color{0x43, 0x88, 0x55}},
	SubtropicalDesert:        {"SUBTROPICAL_DESERT", Color{0xD2, 0xB9, 0x8B}},
	TropicalSeasonalForest:   {"TROPICAL_SEASONAL_FOREST", Color{0x56, 0x99, 0x44}},
	TropicalRainForest:       {"TROPICAL_RAIN_FOREST", Color{0x33, 0x77, 0x55}},
}

// All returns every biome in declaration order.
func All() []Biome {
	all := make([]Biome, 0, count)
	for b := Biome(0); b < count; b++ {
		all = append(all, b)
	}
	return all
}

// Count is the number of defined biomes.
func Count() int { return int(count) }

func (b Biome) Valid() bool { return b < count }

func (b Biome) String() string {
	if !b.Valid() {
		return fmt.Sprintf("BIOME(%d)", uint8(b))
	}
	return table[b].name
}

// Color returns the display color. Invalid values render black.
func (b Biome) Color() Color {
	if !b.Valid() {
		return Color{}
	}
	return table[b].color
}

// Parse resolves a biome by name, case-insensitively. Spaces and dashes are
// accepted in place of underscores.
func Parse(name string) (Biome, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

	names := make([]string, 0, count)
	for b := Biome(0); b < count; b++ {
		if table[b].name == key {
			return b, nil
		}
		names = append(names, table[b].name)
	}
	return 0, fmt.Errorf("%w: %q%s", ErrUnknownBiome, name, suggest.Hint(key, names))
}

func (b Biome) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBiome, uint8(b))
	}
	return []byte(table[b].name), nil
}

func (b *Biome) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Info is the serialisable description of a biome.
type Info struct {
	ID    uint8  `json:"id"`
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Color Color  `json:"color"`
}

// Describe returns the full biome table.
func Describe() []Info {
	out := make([]Info, 0, count)
	for _, b := range All() {
		c := b.Color()
		out = append(out, Info{ID: uint8(b), Name: b.String(), Hex: c.Hex(), Color: c})
	}
	return out
}
