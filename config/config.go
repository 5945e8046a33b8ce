// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Schemas   SchemasConfig   `yaml:"schemas"`
	Output    OutputConfig    `yaml:"output"`
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SchemasConfig locates the raw schema input.
type SchemasConfig struct {
	// Dir holds one JSON schema file per resource type.
	Dir string `yaml:"dir"`
}

// OutputConfig locates the emitted artifacts and the catalog.
type OutputConfig struct {
	// Dir receives one artifact per spec, flat, keyed by spec name.
	Dir string `yaml:"dir"`

	// Catalog is the SQLite catalog path. Empty disables the catalog.
	Catalog string `yaml:"catalog"`
}

// GeneratorConfig tunes the pipeline.
type GeneratorConfig struct {
	// MaxDepth bounds property-tree recursion during translation.
	MaxDepth int `yaml:"max_depth"`

	// PromotionThreshold is the minimum member count for sub-asset
	// extraction.
	PromotionThreshold int `yaml:"promotion_threshold"`

	// Workers bounds the translation fan-out. Zero means NumCPU.
	Workers int `yaml:"workers"`

	// Debounce is how long watch mode waits after the last schema change
	// before regenerating.
	Debounce time.Duration `yaml:"debounce"`
}

// ServerConfig configures the watch-mode HTTP server.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Schemas.Dir == "" {
		cfg.Schemas.Dir = "schemas"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "specs"
	}
	if cfg.Generator.MaxDepth == 0 {
		cfg.Generator.MaxDepth = 32
	}
	if cfg.Generator.PromotionThreshold == 0 {
		cfg.Generator.PromotionThreshold = 2
	}
	if cfg.Generator.Debounce == 0 {
		cfg.Generator.Debounce = 500 * time.Millisecond
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8484
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validate(cfg *Config) error {
	if cfg.Schemas.Dir == "" {
		return fmt.Errorf("schemas.dir is required")
	}
	if cfg.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if cfg.Generator.MaxDepth < 1 {
		return fmt.Errorf("generator.max_depth must be positive")
	}
	if cfg.Generator.PromotionThreshold < 1 {
		return fmt.Errorf("generator.promotion_threshold must be positive")
	}
	if cfg.Generator.Workers < 0 {
		return fmt.Errorf("generator.workers must not be negative")
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q is not one of json, console", cfg.Logging.Format)
	}
	return nil
}
