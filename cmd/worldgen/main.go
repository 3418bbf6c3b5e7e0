package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/config"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/mesh"
	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/raster"
	"github.com/VoidMesh/worldgen/internal/world"
)

type options struct {
	configPath string
	preset     string
	algorithm  string
	seed       int64
	resolution int
	workers    int
	logLevel   string

	pngPath  string
	mode     string
	jsonPath string
	meshPath string
	step     int
}

// gridExport is the on-disk form of -json. Outer slices are indexed by y.
type gridExport struct {
	Seed        int64           `json:"seed"`
	Resolution  int             `json:"resolution"`
	Algorithm   noise.Algorithm `json:"algorithm"`
	Fingerprint string          `json:"fingerprint"`
	Elevation   [][]float64     `json:"elevation"`
	Moisture    [][]float64     `json:"moisture"`
	Biomes      [][]biome.Biome `json:"biomes"`
}

func main() {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	logOpts := cfg.Logging.Options()
	logOpts.Format = logging.FormatText
	logOpts.Structured = true
	logger := logging.Configure(logOpts)

	wcfg, err := resolveConfig(cfg.Generation, opts)
	if err != nil {
		logger.Fatal("Invalid generation settings", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wd, err := world.New(ctx, wcfg, logging.NewDefaultLoggerWrapper())
	if err != nil {
		logger.Fatal("Generation failed", "error", err)
	}

	printSummary(wd)

	if opts.pngPath != "" {
		if err := writePNG(opts.pngPath, wd, opts.mode); err != nil {
			logger.Fatal("Failed to write map", "path", opts.pngPath, "error", err)
		}
		logger.Info("Wrote map", "path", opts.pngPath, "mode", opts.mode)
	}
	if opts.jsonPath != "" {
		if err := writeGrid(opts.jsonPath, wd); err != nil {
			logger.Fatal("Failed to write grid", "path", opts.jsonPath, "error", err)
		}
		logger.Info("Wrote grid", "path", opts.jsonPath)
	}
	if opts.meshPath != "" {
		m, err := mesh.Build(wd, mesh.Options{HeightScale: wcfg.HeightScale, Step: opts.step})
		if err != nil {
			logger.Fatal("Failed to build mesh", "error", err)
		}
		if err := writeJSON(opts.meshPath, m); err != nil {
			logger.Fatal("Failed to write mesh", "path", opts.meshPath, "error", err)
		}
		logger.Info("Wrote mesh", "path", opts.meshPath, "vertices", m.VertexCount(), "triangles", m.TriangleCount())
	}
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	flag.StringVar(&opts.preset, "preset", "", "named parameter preset ("+fmt.Sprint(world.PresetNames())+")")
	flag.StringVar(&opts.algorithm, "algorithm", "", "noise backend (opensimplex, perlin)")
	flag.Int64Var(&opts.seed, "seed", 0, "world seed")
	flag.IntVar(&opts.resolution, "resolution", 0, "grid width and height in cells")
	flag.IntVar(&opts.workers, "workers", -1, "row workers, 0 uses GOMAXPROCS")
	flag.StringVar(&opts.logLevel, "log", "", "log level (debug, info, warn, error)")
	flag.StringVar(&opts.pngPath, "png", "", "write a PNG map to this path")
	flag.StringVar(&opts.mode, "mode", string(raster.ModeBiome), "PNG coloring (biome, elevation, moisture)")
	flag.StringVar(&opts.jsonPath, "json", "", "write the grid as JSON to this path")
	flag.StringVar(&opts.meshPath, "mesh", "", "write a triangle mesh as JSON to this path")
	flag.IntVar(&opts.step, "step", 1, "mesh sampling step")
	flag.Parse()
	return opts
}

// resolveConfig layers explicitly set flags over the loaded generation config.
func resolveConfig(gen config.GenerationConfig, opts options) (world.Config, error) {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["preset"] {
		gen.Preset = opts.preset
	}
	if set["algorithm"] {
		gen.Algorithm = opts.algorithm
	}
	if set["seed"] {
		gen.Seed = opts.seed
	}
	if set["resolution"] {
		gen.Resolution = opts.resolution
	}
	if set["workers"] {
		gen.Workers = opts.workers
	}

	cfg, err := gen.WorldConfig()
	if err != nil {
		return world.Config{}, err
	}
	return cfg, cfg.Validate()
}

func printSummary(wd *world.World) {
	lo, hi := wd.Elevation().MinMax()
	logging.WithDuration("generate", wd.Duration()).Info("Generated world",
		"seed", wd.Seed(),
		"resolution", wd.Resolution(),
		"algorithm", wd.Algorithm(),
		"fingerprint", fmt.Sprintf("%016x", wd.Fingerprint()),
		"elevation_min", fmt.Sprintf("%.4f", lo),
		"elevation_max", fmt.Sprintf("%.4f", hi),
	)

	hist := wd.Histogram()
	logger := logging.WithSeed(wd.Seed(), wd.Resolution())
	total := float64(wd.Resolution() * wd.Resolution())
	for _, b := range biomesByCount(hist) {
		logger.Info("Biome", "name", b, "cells", hist[b], "share", fmt.Sprintf("%.2f%%", 100*float64(hist[b])/total))
	}
}

// biomesByCount orders biomes by descending cell count, then by id.
func biomesByCount(hist map[biome.Biome]int) []biome.Biome {
	ids := make([]biome.Biome, 0, len(hist))
	for b := range hist {
		ids = append(ids, b)
	}
	sort.Slice(ids, func(i, j int) bool {
		if hist[ids[i]] != hist[ids[j]] {
			return hist[ids[i]] > hist[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func writePNG(path string, wd *world.World, modeName string) error {
	mode, err := raster.ParseMode(modeName)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.EncodePNG(f, wd, mode); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeGrid(path string, wd *world.World) error {
	res := wd.Resolution()
	biomes := wd.Biomes()
	rows := make([][]biome.Biome, res)
	for y := range rows {
		rows[y] = biomes[y*res : (y+1)*res]
	}
	return writeJSON(path, gridExport{
		Seed:        wd.Seed(),
		Resolution:  res,
		Algorithm:   wd.Algorithm(),
		Fingerprint: fmt.Sprintf("%016x", wd.Fingerprint()),
		Elevation:   wd.Elevation().Rows(),
		Moisture:    wd.Moisture().Rows(),
		Biomes:      rows,
	})
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
