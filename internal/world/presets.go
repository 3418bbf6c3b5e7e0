package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/VoidMesh/worldgen/internal/suggest"
)

// ErrUnknownPreset is returned by Preset for an unrecognised name.
var ErrUnknownPreset = errors.New("unknown preset")

// DefaultPreset names the preset used when none is requested.
const DefaultPreset = "default"

// Presets are the named parameter sets worlds can be created from.
var Presets = map[string]func() Config{
	// Balanced map for general use.
	"default": DefaultConfig,

	// Flatter, lower frequency terrain for 2D raster previews.
	"canvas": func() Config {
		c := DefaultConfig()
		c.BaseFrequency = 7.5
		c.ElevationExponent = 1.75
		c.HeightScale = 7.5
		return c
	},

	// High resolution terrain with a flat sea, for 3D meshes. Sampling is
	// centred on the noise origin.
	"heightmap": func() Config {
		c := DefaultConfig()
		c.Resolution = 2048
		c.CoordinateOffset = 0.5
		c.OceanClamp = OceanClamp{Enabled: true, Level: DefaultOceanLevel}
		c.HeightScale = 5
		return c
	},
}

// Preset returns a fresh copy of the named preset. The empty name selects
// DefaultPreset.
func Preset(name string) (Config, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultPreset
	}

	build, ok := Presets[key]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q%s", ErrUnknownPreset, name, suggest.Hint(key, PresetNames()))
	}
	return build(), nil
}

// PresetNames lists preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
