package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/thruflo/drizzle/internal/config"
)

// resolveConfig loads the config file named by --config (or the default
// path) and applies any flags that were set. Validation runs once, after the
// flags, so a flag can replace a bad value in the file.
func resolveConfig(fs *pflag.FlagSet) (*config.Config, error) {
	path, err := fs.GetString("config")
	if err != nil {
		return nil, err
	}

	if fs.Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else if path == "" {
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.ReadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyFlags(fs, cfg); err != nil {
		return nil, err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags onto cfg.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}

	set("fps", func() (e error) { cfg.FPS, e = fs.GetFloat64("fps"); return })
	set("tps", func() (e error) { cfg.TPS, e = fs.GetFloat64("tps"); return })
	set("backend", func() (e error) { cfg.Backend, e = fs.GetString("backend"); return })
	set("scene", func() (e error) { cfg.Scene.Kind, e = fs.GetString("scene"); return })
	set("density", func() (e error) { cfg.Scene.Density, e = fs.GetFloat64("density"); return })
	set("seed", func() (e error) { cfg.Scene.Seed, e = fs.GetUint64("seed"); return })
	set("show-status", func() (e error) { cfg.Display.ShowStatus, e = fs.GetBool("show-status"); return })
	set("log-level", func() (e error) { cfg.Log.Level, e = fs.GetString("log-level"); return })
	set("log-file", func() (e error) { cfg.Log.File, e = fs.GetString("log-file"); return })

	if err != nil {
		return fmt.Errorf("invalid flag: %w", err)
	}
	return nil
}
