// Package world turns a seed into elevation and moisture grids and answers
// per-cell biome queries over them.
package world

import (
	"context"
	"fmt"
	"time"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/noise"
)

// World owns one seed's noise field and the grids generated from it.
// Grids are replaced wholesale on regeneration and never edited in place.
// A World is not safe for concurrent mutation; readers may share it as long
// as nobody calls Regenerate or Reconfigure.
type World struct {
	cfg    Config
	field  *noise.Field
	custom bool

	elevation *Grid
	moisture  *Grid
	biomes    []biome.Biome

	fingerprint uint64
	generatedAt time.Time
	duration    time.Duration

	logger logging.LoggerInterface
}

// Cell is everything known about one grid cell.
type Cell struct {
	X         int         `json:"x"`
	Y         int         `json:"y"`
	Elevation float64     `json:"elevation"`
	Moisture  float64     `json:"moisture"`
	Biome     biome.Biome `json:"biome"`
	Color     string      `json:"color"`
}

// New validates cfg and generates a world from its seed.
func New(ctx context.Context, cfg Config, logger logging.LoggerInterface) (*World, error) {
	return newWorld(ctx, cfg, nil, logger)
}

// NewWithField generates a world from caller supplied noise instead of
// seeded backends. The field is kept across regeneration.
func NewWithField(ctx context.Context, cfg Config, field *noise.Field, logger logging.LoggerInterface) (*World, error) {
	if field == nil {
		return nil, fmt.Errorf("%w: nil noise field", ErrInvalidConfig)
	}
	return newWorld(ctx, cfg, field, logger)
}

func newWorld(ctx context.Context, cfg Config, field *noise.Field, logger logging.LoggerInterface) (*World, error) {
	if logger == nil {
		logger = logging.NewDefaultLoggerWrapper()
	}

	w := &World{
		custom: field != nil,
		field:  field,
		logger: logger.With("component", "world"),
	}
	if w.custom {
		cfg.Algorithm = field.Algorithm()
	}
	if err := w.rebuild(ctx, cfg); err != nil {
		return nil, err
	}
	return w, nil
}

// Regenerate discards the current field and grids and rebuilds them for a
// new seed and resolution. On any error the world is left unchanged.
func (w *World) Regenerate(ctx context.Context, seed int64, resolution int) error {
	cfg := w.cfg.clone()
	cfg.Seed = seed
	cfg.Resolution = resolution
	return w.rebuild(ctx, cfg)
}

// Reconfigure regenerates the world with an entirely new configuration.
func (w *World) Reconfigure(ctx context.Context, cfg Config) error {
	if w.custom {
		cfg.Algorithm = w.field.Algorithm()
	}
	return w.rebuild(ctx, cfg)
}

func (w *World) rebuild(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		w.logger.Warn("Rejected world config", "seed", cfg.Seed, "resolution", cfg.Resolution, "error", err)
		return err
	}
	cfg = cfg.clone()

	field := w.field
	if !w.custom {
		f, err := noise.NewField(cfg.Algorithm, cfg.Seed)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		field = f
		cfg.Algorithm = f.Algorithm()
	}

	start := time.Now()
	out, err := generate(ctx, cfg, field)
	if err != nil {
		w.logger.Warn("World generation aborted", "seed", cfg.Seed, "resolution", cfg.Resolution, "error", err)
		return fmt.Errorf("failed to generate world: %w", err)
	}
	elapsed := time.Since(start)

	w.cfg = cfg
	w.field = field
	w.elevation = out.elevation
	w.moisture = out.moisture
	w.biomes = out.biomes
	w.fingerprint = fingerprint(cfg, out)
	w.generatedAt = time.Now()
	w.duration = elapsed

	w.logger.Info("Generated world",
		"seed", cfg.Seed,
		"resolution", cfg.Resolution,
		"algorithm", cfg.Algorithm,
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}

// Config returns a copy of the active configuration.
func (w *World) Config() Config { return w.cfg.clone() }

func (w *World) Seed() int64 { return w.cfg.Seed }

func (w *World) Resolution() int { return w.cfg.Resolution }

func (w *World) Algorithm() noise.Algorithm { return w.cfg.Algorithm }

// Field returns the noise field the current grids were generated from.
func (w *World) Field() *noise.Field { return w.field }

// Elevation returns the read-only elevation grid.
func (w *World) Elevation() *Grid { return w.elevation }

// Moisture returns the read-only moisture grid.
func (w *World) Moisture() *Grid { return w.moisture }

// ElevationAt returns the elevation of an in-bounds cell.
func (w *World) ElevationAt(x, y int) float64 { return w.elevation.At(x, y) }

// MoistureAt returns the moisture of an in-bounds cell.
func (w *World) MoistureAt(x, y int) float64 { return w.moisture.At(x, y) }

// BiomeAt returns the biome of an in-bounds cell.
func (w *World) BiomeAt(x, y int) biome.Biome { return w.biomes[y*w.cfg.Resolution+x] }

// Biome classifies cell (x, y).
func (w *World) Biome(x, y int) (biome.Biome, error) {
	if !w.elevation.InBounds(x, y) {
		return 0, w.outOfBounds(x, y)
	}
	return w.BiomeAt(x, y), nil
}

// Cell returns the full description of cell (x, y).
func (w *World) Cell(x, y int) (Cell, error) {
	if !w.elevation.InBounds(x, y) {
		return Cell{}, w.outOfBounds(x, y)
	}
	b := w.BiomeAt(x, y)
	return Cell{
		X:         x,
		Y:         y,
		Elevation: w.ElevationAt(x, y),
		Moisture:  w.MoistureAt(x, y),
		Biome:     b,
		Color:     b.Color().Hex(),
	}, nil
}

func (w *World) outOfBounds(x, y int) error {
	res := w.cfg.Resolution
	return fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, x, y, res, res)
}

// Biomes returns a copy of the row-major biome grid.
func (w *World) Biomes() []biome.Biome {
	return append([]biome.Biome(nil), w.biomes...)
}

// Histogram counts cells per biome. Biomes with no cells are omitted.
func (w *World) Histogram() map[biome.Biome]int {
	counts := make(map[biome.Biome]int)
	for _, b := range w.biomes {
		counts[b]++
	}
	return counts
}

// GeneratedAt is when the current grids were produced.
func (w *World) GeneratedAt() time.Time { return w.generatedAt }

// Duration is how long the last generation pass took.
func (w *World) Duration() time.Duration { return w.duration }
