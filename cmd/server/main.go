package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/api"
	"github.com/VoidMesh/worldgen/internal/config"
	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/registry"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults to $"+config.ConfigPathEnv+")")
	warm := flag.Bool("warm", false, "generate one world from the configured defaults at startup")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.GetLogger().Fatal("Failed to load configuration", "error", err)
	}

	// Setup logging
	logger := setupLogging(cfg.Logging)
	logger.Debug("Configuration loaded",
		"server_port", cfg.Server.Port,
		"preset", cfg.Generation.Preset,
		"max_worlds", cfg.Generation.MaxWorlds,
		"max_resolution", cfg.Generation.MaxResolution,
	)

	// Initialize world registry
	logger.Debug("Initializing world registry")
	reg := registry.New(registry.Options{
		MaxWorlds:     cfg.Generation.MaxWorlds,
		Workers:       cfg.Generation.Workers,
		MaxResolution: cfg.Generation.MaxResolution,
	}, logging.NewDefaultLoggerWrapper())

	if *warm {
		warmUp(reg, cfg.Generation)
	}

	// Initialize API handlers
	logger.Debug("Initializing API handlers")
	handler := api.NewHandler(reg, logging.NewDefaultLoggerWrapper())
	router := api.SetupRoutes(handler)
	logger.Debug("API routes configured")

	// Create HTTP server
	logger.Debug("Creating HTTP server", "port", cfg.Server.Port, "read_timeout", cfg.Server.ReadTimeout, "write_timeout", cfg.Server.WriteTimeout, "idle_timeout", cfg.Server.IdleTimeout)
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting worldgen server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
		logger.Debug("Server stopped listening")
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down server...", "signal", sig.String())

	// Create context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	} else {
		logger.Debug("Server shutdown completed gracefully")
	}

	logger.Info("Server exited")
}

func setupLogging(cfg config.LoggingConfig) *log.Logger {
	opts := cfg.Options()
	opts.Prefix = "[worldgen] "
	return logging.Configure(opts)
}

// warmUp registers a world built from the configured generation defaults so
// the first client request does not pay for generation.
func warmUp(reg *registry.Registry, gen config.GenerationConfig) {
	logger := logging.WithFields("component", "warmup")

	wcfg, err := gen.WorldConfig()
	if err != nil {
		logger.Error("Invalid warm-up config", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	seed, resolution := wcfg.Seed, wcfg.Resolution
	summary, err := reg.Create(ctx, registry.CreateRequest{
		Name:       "warm",
		Preset:     gen.Preset,
		Algorithm:  string(wcfg.Algorithm),
		Seed:       &seed,
		Resolution: &resolution,
	})
	if err != nil {
		logger.Error("Failed to generate warm-up world", "error", err)
		return
	}
	logging.WithWorld(summary.ID).Info("Warm-up world ready", "seed", summary.Seed, "resolution", summary.Resolution, "preset", summary.Preset)
}
