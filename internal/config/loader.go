package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/thruflo/drizzle/internal/app"
	"github.com/thruflo/drizzle/internal/logging"
	"github.com/thruflo/drizzle/internal/scene"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultFPS           = 30.0
	DefaultTPS           = 10.0
	DefaultBackend       = BackendTcell
	DefaultSceneKind     = string(scene.KindRain)
	DefaultDensity       = 0.15
	DefaultWindPeriod    = 5
	DefaultQueueCapacity = 64
	DefaultLogLevel      = "warn"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		FPS:     DefaultFPS,
		TPS:     DefaultTPS,
		Backend: DefaultBackend,
		Scene: Scene{
			Kind:       DefaultSceneKind,
			Density:    DefaultDensity,
			WindPeriod: DefaultWindPeriod,
		},
		Display: Display{ShowStatus: true},
		Queue:   Queue{Capacity: DefaultQueueCapacity},
		Log:     Log{Level: DefaultLogLevel},
	}
}

// DefaultPath returns <user config dir>/drizzle/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "drizzle", "config.yaml"), nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// LoadConfig reads, parses and validates the config file at path. If the
// file doesn't exist, returns default config.
func LoadConfig(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadConfig reads and parses the config file at path without validating
// it, so callers can apply overrides first. If the file doesn't exist,
// returns default config. Applies defaults for any missing fields.
func ReadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if !positive(cfg.FPS) {
		return ValidationError{Field: "fps", Message: "must be positive"}
	}
	if !positive(cfg.TPS) {
		return ValidationError{Field: "tps", Message: "must be positive"}
	}

	switch cfg.Backend {
	case BackendTcell, BackendANSI:
	default:
		return ValidationError{Field: "backend", Message: fmt.Sprintf("must be %q or %q", BackendTcell, BackendANSI)}
	}

	if _, err := scene.ParseKind(cfg.Scene.Kind); err != nil {
		return ValidationError{Field: "scene.kind", Message: err.Error()}
	}
	if !(cfg.Scene.Density > 0 && cfg.Scene.Density <= 1) {
		return ValidationError{Field: "scene.density", Message: "must be in (0, 1]"}
	}
	if cfg.Scene.WindPeriod <= 0 {
		return ValidationError{Field: "scene.wind_period", Message: "must be positive"}
	}

	if cfg.Queue.Capacity < 1 {
		return ValidationError{Field: "queue.capacity", Message: "must be at least 1"}
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}

	return nil
}

// Rates returns the scheduler cadences.
func (c *Config) Rates() app.Rates {
	return app.Rates{FPS: c.FPS, TPS: c.TPS}
}

// SceneOptions returns the options for building the scene. The config must
// have been validated.
func (c *Config) SceneOptions() scene.Options {
	kind, _ := scene.ParseKind(c.Scene.Kind)
	return scene.Options{
		Kind:       kind,
		Density:    c.Scene.Density,
		Seed:       c.Scene.Seed,
		WindPeriod: c.Scene.WindPeriod,
	}
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
