package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml"

	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/noise"
	"github.com/VoidMesh/worldgen/internal/world"
)

// ErrInvalidConfig is returned by Load and Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// ConfigPathEnv names the environment variable holding the config file path.
const ConfigPathEnv = "WORLDGEN_CONFIG"

type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Generation GenerationConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

type GenerationConfig struct {
	Preset    string
	Seed      int64
	Algorithm string
	// Resolution overrides the preset when positive.
	Resolution    int
	Workers       int
	MaxResolution int
	MaxWorlds     int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     logging.FormatJSON,
			Structured: true,
		},
		Generation: GenerationConfig{
			Preset:        world.DefaultPreset,
			Seed:          world.DefaultSeed,
			MaxResolution: 4096,
			MaxWorlds:     16,
		},
	}
}

// Load builds the configuration from defaults, then the TOML file at path
// (or $WORLDGEN_CONFIG when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server = ServerConfig{
		Port:            getEnvStr("PORT", c.Server.Port),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", c.Server.ReadTimeout),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", c.Server.WriteTimeout),
		IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", c.Server.IdleTimeout),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout),
	}
	c.Logging = LoggingConfig{
		Level:      getEnvStr("LOG_LEVEL", c.Logging.Level),
		Format:     getEnvStr("LOG_FORMAT", c.Logging.Format),
		Structured: getEnvBool("LOG_STRUCTURED", c.Logging.Structured),
	}
	c.Generation = GenerationConfig{
		Preset:        getEnvStr("WORLD_PRESET", c.Generation.Preset),
		Seed:          getEnvInt64("WORLD_SEED", c.Generation.Seed),
		Algorithm:     getEnvStr("NOISE_ALGORITHM", c.Generation.Algorithm),
		Resolution:    getEnvInt("WORLD_RESOLUTION", c.Generation.Resolution),
		Workers:       getEnvInt("GEN_WORKERS", c.Generation.Workers),
		MaxResolution: getEnvInt("MAX_RESOLUTION", c.Generation.MaxResolution),
		MaxWorlds:     getEnvInt("MAX_WORLDS", c.Generation.MaxWorlds),
	}
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("%w: port %q is not a number", ErrInvalidConfig, c.Server.Port)
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"idle_timeout":     c.Server.IdleTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, name)
		}
	}

	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatText, logging.FormatJSON, logging.FormatLogfmt:
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Logging.Format)
	}

	g := c.Generation
	if _, err := world.Preset(g.Preset); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if g.Algorithm != "" {
		if _, err := noise.ParseAlgorithm(g.Algorithm); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	if g.Resolution < 0 {
		return fmt.Errorf("%w: resolution must not be negative", ErrInvalidConfig)
	}
	if g.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	}
	if g.MaxResolution < 0 {
		return fmt.Errorf("%w: max resolution must not be negative", ErrInvalidConfig)
	}
	if g.MaxWorlds <= 0 {
		return fmt.Errorf("%w: max worlds must be positive", ErrInvalidConfig)
	}
	return nil
}

// Options converts the logging section for logging.Configure.
func (l LoggingConfig) Options() logging.Options {
	return logging.Options{
		Level:      l.Level,
		Format:     l.Format,
		Structured: l.Structured,
	}
}

// WorldConfig resolves the preset and applies the overrides of g.
func (g GenerationConfig) WorldConfig() (world.Config, error) {
	cfg, err := world.Preset(g.Preset)
	if err != nil {
		return world.Config{}, err
	}

	cfg.Seed = g.Seed
	if g.Resolution > 0 {
		cfg.Resolution = g.Resolution
	}
	if g.Algorithm != "" {
		algorithm, err := noise.ParseAlgorithm(g.Algorithm)
		if err != nil {
			return world.Config{}, err
		}
		cfg.Algorithm = algorithm
	}
	cfg.Workers = g.Workers
	cfg.MaxResolution = g.MaxResolution
	return cfg, nil
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// fileConfig mirrors the TOML layout. Pointer fields distinguish absent keys
// from zero values.
type fileConfig struct {
	Server struct {
		Port            string `toml:"port"`
		ReadTimeout     string `toml:"read_timeout"`
		WriteTimeout    string `toml:"write_timeout"`
		IdleTimeout     string `toml:"idle_timeout"`
		ShutdownTimeout string `toml:"shutdown_timeout"`
	} `toml:"server"`
	Logging struct {
		Level      string `toml:"level"`
		Format     string `toml:"format"`
		Structured *bool  `toml:"structured"`
	} `toml:"logging"`
	Generation struct {
		Preset        string `toml:"preset"`
		Seed          *int64 `toml:"seed"`
		Algorithm     string `toml:"algorithm"`
		Resolution    *int   `toml:"resolution"`
		Workers       *int   `toml:"workers"`
		MaxResolution *int   `toml:"max_resolution"`
		MaxWorlds     *int   `toml:"max_worlds"`
	} `toml:"generation"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	if f.Server.Port != "" {
		c.Server.Port = f.Server.Port
	}
	durations := []struct {
		key    string
		raw    string
		target *time.Duration
	}{
		{"read_timeout", f.Server.ReadTimeout, &c.Server.ReadTimeout},
		{"write_timeout", f.Server.WriteTimeout, &c.Server.WriteTimeout},
		{"idle_timeout", f.Server.IdleTimeout, &c.Server.IdleTimeout},
		{"shutdown_timeout", f.Server.ShutdownTimeout, &c.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%w: server.%s: %v", ErrInvalidConfig, d.key, err)
		}
		*d.target = parsed
	}

	if f.Logging.Level != "" {
		c.Logging.Level = f.Logging.Level
	}
	if f.Logging.Format != "" {
		c.Logging.Format = f.Logging.Format
	}
	if f.Logging.Structured != nil {
		c.Logging.Structured = *f.Logging.Structured
	}

	if f.Generation.Preset != "" {
		c.Generation.Preset = f.Generation.Preset
	}
	if f.Generation.Seed != nil {
		c.Generation.Seed = *f.Generation.Seed
	}
	if f.Generation.Algorithm != "" {
		c.Generation.Algorithm = f.Generation.Algorithm
	}
	if f.Generation.Resolution != nil {
		c.Generation.Resolution = *f.Generation.Resolution
	}
	if f.Generation.Workers != nil {
		c.Generation.Workers = *f.Generation.Workers
	}
	if f.Generation.MaxResolution != nil {
		c.Generation.MaxResolution = *f.Generation.MaxResolution
	}
	if f.Generation.MaxWorlds != nil {
		c.Generation.MaxWorlds = *f.Generation.MaxWorlds
	}
	return nil
}
