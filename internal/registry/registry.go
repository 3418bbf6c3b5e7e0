// Package registry keeps generated worlds in memory under stable IDs so they
// can be queried and regenerated over the HTTP API.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/world"
)

var (
	// ErrWorldNotFound is returned for an unknown world ID.
	ErrWorldNotFound = errors.New("world not found")
	// ErrRegistryFull is returned when MaxWorlds worlds already exist.
	ErrRegistryFull = errors.New("world registry is full")
)

type entry struct {
	mu        sync.RWMutex
	id        string
	name      string
	preset    string
	createdAt time.Time
	world     *world.World
}

// Registry is a concurrency-safe, bounded set of worlds.
type Registry struct {
	mu     sync.RWMutex
	worlds map[string]*entry
	opts   Options
	logger logging.LoggerInterface
}

// New creates an empty registry.
func New(opts Options, logger logging.LoggerInterface) *Registry {
	if opts.MaxWorlds <= 0 {
		opts.MaxWorlds = DefaultMaxWorlds
	}
	if logger == nil {
		logger = logging.NewDefaultLoggerWrapper()
	}
	return &Registry{
		worlds: make(map[string]*entry),
		opts:   opts,
		logger: logger.With("component", "registry"),
	}
}

// Create generates a world from req and registers it.
func (r *Registry) Create(ctx context.Context, req CreateRequest) (*Summary, error) {
	if r.Len() >= r.opts.MaxWorlds {
		return nil, fmt.Errorf("%w: limit is %d", ErrRegistryFull, r.opts.MaxWorlds)
	}

	preset := req.Preset
	if preset == "" {
		preset = world.DefaultPreset
	}
	cfg, err := world.Preset(preset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrInvalidConfig, err)
	}
	if err := r.override(&cfg, req.Algorithm, req.Seed, req.Resolution); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	w, err := world.New(ctx, cfg, r.logger.With("world_id", id))
	if err != nil {
		return nil, err
	}

	e := &entry{
		id:        id,
		name:      req.Name,
		preset:    preset,
		createdAt: time.Now(),
		world:     w,
	}
	summary := e.summary(true)

	r.mu.Lock()
	if len(r.worlds) >= r.opts.MaxWorlds {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: limit is %d", ErrRegistryFull, r.opts.MaxWorlds)
	}
	r.worlds[id] = e
	r.mu.Unlock()

	r.logger.Info("Registered world", "world_id", id, "preset", preset, "seed", cfg.Seed, "resolution", cfg.Resolution)
	return summary, nil
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	e, ok := r.worlds[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWorldNotFound, id)
	}
	return e, nil
}

// Get returns the summary of one world including its biome histogram.
func (r *Registry) Get(id string) (*Summary, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.summary(true), nil
}

// View calls fn with the world under a read lock. fn must not retain w.
func (r *Registry) View(id string, fn func(w *world.World) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.world)
}

// List returns summaries of every world, oldest first, without histograms.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.worlds))
	for _, e := range r.worlds {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].createdAt.Equal(entries[j].createdAt) {
			return entries[i].id < entries[j].id
		}
		return entries[i].createdAt.Before(entries[j].createdAt)
	})

	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		out = append(out, *e.summary(false))
		e.mu.RUnlock()
	}
	return out
}

// Regenerate rebuilds a world with a new seed and/or resolution. Unset
// fields keep their current values.
func (r *Registry) Regenerate(ctx context.Context, id string, req RegenerateRequest) (*Summary, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if req.Preset == "" && req.Algorithm == "" {
		seed := e.world.Seed()
		if req.Seed != nil {
			seed = *req.Seed
		}
		resolution := e.world.Resolution()
		if req.Resolution != nil {
			resolution = *req.Resolution
		}
		if err := e.world.Regenerate(ctx, seed, resolution); err != nil {
			return nil, err
		}
		r.logger.Info("Regenerated world", "world_id", id, "seed", seed, "resolution", resolution)
		return e.summary(true), nil
	}

	preset := e.preset
	cfg := e.world.Config()
	if req.Preset != "" {
		var err error
		if cfg, err = world.Preset(req.Preset); err != nil {
			return nil, fmt.Errorf("%w: %w", world.ErrInvalidConfig, err)
		}
		preset = req.Preset
		cfg.Algorithm = e.world.Algorithm()
		cfg.Seed = e.world.Seed()
		cfg.Resolution = e.world.Resolution()
	}
	if err := r.override(&cfg, req.Algorithm, req.Seed, req.Resolution); err != nil {
		return nil, err
	}

	if err := e.world.Reconfigure(ctx, cfg); err != nil {
		return nil, err
	}
	e.preset = preset
	r.logger.Info("Reconfigured world", "world_id", id, "preset", preset, "algorithm", cfg.Algorithm, "seed", cfg.Seed, "resolution", cfg.Resolution)
	return e.summary(true), nil
}

// override applies request fields and registry limits to cfg.
func (r *Registry) override(cfg *world.Config, algorithm string, seed *int64, resolution *int) error {
	if algorithm != "" {
		a, err := noise.ParseAlgorithm(algorithm)
		if err != nil {
			return fmt.Errorf("%w: %w", world.ErrInvalidConfig, err)
		}
		cfg.Algorithm = a
	}
	if seed != nil {
		cfg.Seed = *seed
	}
	if resolution != nil {
		cfg.Resolution = *resolution
	}
	cfg.Workers = r.opts.Workers
	cfg.MaxResolution = r.opts.MaxResolution
	return nil
}

// Delete removes a world.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.worlds[id]; !ok {
		return fmt.Errorf("%w: %s", ErrWorldNotFound, id)
	}
	delete(r.worlds, id)
	r.logger.Info("Deleted world", "world_id", id)
	return nil
}

// Len returns the number of registered worlds.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.worlds)
}

// MaxWorlds returns the registry capacity.
func (r *Registry) MaxWorlds() int { return r.opts.MaxWorlds }

// summary must be called with e.mu held.
func (e *entry) summary(withHistogram bool) *Summary {
	w := e.world
	s := &Summary{
		ID:          e.id,
		Name:        e.name,
		Preset:      e.preset,
		Seed:        w.Seed(),
		Resolution:  w.Resolution(),
		Algorithm:   w.Algorithm(),
		Config:      w.Config(),
		Fingerprint: strconv.FormatUint(w.Fingerprint(), 16),
		CreatedAt:   e.createdAt,
		GeneratedAt: w.GeneratedAt(),
		DurationMS:  w.Duration().Milliseconds(),
	}
	if withHistogram {
		s.Histogram = w.Histogram()
	}
	return s
}
