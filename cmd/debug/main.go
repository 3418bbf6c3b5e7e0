package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/cmd/debug/models"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/world"
)

func main() {
	preset := flag.String("preset", world.DefaultPreset, "Parameter preset")
	algorithm := flag.String("algorithm", "", "Noise backend (opensimplex, perlin)")
	seed := flag.Int64("seed", world.DefaultSeed, "World seed")
	resolution := flag.Int("resolution", 128, "Grid width and height in cells")
	startView := flag.String("view", "menu", "Starting view (menu, explorer, legend, overview)")
	logLevel := flag.String("log", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Setup logging
	logger := logging.Configure(logging.Options{Level: *logLevel, Format: logging.FormatText, Structured: true})

	// The alt screen owns stdout, so logs go to a file or nowhere.
	if len(os.Getenv("DEBUG")) > 0 {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}
	log.SetDefault(logger)

	cfg, err := world.Preset(*preset)
	if err != nil {
		log.Fatal("Invalid preset", "error", err)
	}
	if *algorithm != "" {
		cfg.Algorithm, err = noise.ParseAlgorithm(*algorithm)
		if err != nil {
			log.Fatal("Invalid algorithm", "error", err)
		}
	}
	cfg.Seed = *seed
	cfg.Resolution = *resolution

	// Generate the initial world
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	wd, err := world.New(ctx, cfg, logging.NewDefaultLoggerWrapper())
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	// Initialize the main app model
	app := models.NewApp(wd, *preset, *startView)

	// Create and run the Bubble Tea program
	program := tea.NewProgram(app, tea.WithAltScreen())

	log.Info("Starting Worldgen Debug Tool", "preset", *preset, "seed", cfg.Seed, "resolution", cfg.Resolution, "start_view", *startView)

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running debug tool:", err)
		os.Exit(1)
	}
}
