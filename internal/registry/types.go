package registry

import (
	"time"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/world"
)

const (
	// DefaultMaxWorlds bounds how many worlds are kept in memory.
	DefaultMaxWorlds = 16
)

// Options configures a Registry.
type Options struct {
	// MaxWorlds caps the number of live worlds. Zero means DefaultMaxWorlds.
	MaxWorlds int
	// Workers is passed to every generated world.
	Workers int
	// MaxResolution rejects larger worlds when positive.
	MaxResolution int
}

// CreateRequest describes a new world. Nil fields fall back to the preset.
type CreateRequest struct {
	Name       string `json:"name,omitempty"`
	Preset     string `json:"preset,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
	Resolution *int   `json:"resolution,omitempty"`
}

// RegenerateRequest rebuilds an existing world. Seed and Resolution keep
// their current values when nil. Setting Preset or Algorithm swaps the
// shaping parameters as well; the world keeps its seed and resolution
// unless those are also given.
type RegenerateRequest struct {
	Preset     string `json:"preset,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
	Seed       *int64 `json:"seed,omitempty"`
	Resolution *int   `json:"resolution,omitempty"`
}

// Summary is the externally visible description of a registered world.
type Summary struct {
	ID          string              `json:"id"`
	Name        string              `json:"name,omitempty"`
	Preset      string              `json:"preset"`
	Seed        int64               `json:"seed"`
	Resolution  int                 `json:"resolution"`
	Algorithm   noise.Algorithm     `json:"algorithm"`
	Config      world.Config        `json:"config"`
	Fingerprint string              `json:"fingerprint"`
	CreatedAt   time.Time           `json:"created_at"`
	GeneratedAt time.Time           `json:"generated_at"`
	DurationMS  int64               `json:"duration_ms"`
	Histogram   map[biome.Biome]int `json:"histogram,omitempty"`
}
