package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thruflo/drizzle/internal/config"
)

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("drizzle", pflag.ContinueOnError)
	bindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestApplyFlags_OnlyChangedFlagsOverride(t *testing.T) {
	t.Parallel()

	fs := parseFlags(t, "--fps", "60", "--scene", "snow", "--show-status=false", "--seed", "7")

	cfg := config.DefaultConfig()
	cfg.TPS = 5 // from a config file
	cfg.Backend = config.BackendANSI

	require.NoError(t, applyFlags(fs, &cfg))

	assert.Equal(t, 60.0, cfg.FPS)
	assert.Equal(t, 5.0, cfg.TPS)
	assert.Equal(t, config.BackendANSI, cfg.Backend)
	assert.Equal(t, "snow", cfg.Scene.Kind)
	assert.Equal(t, uint64(7), cfg.Scene.Seed)
	assert.False(t, cfg.Display.ShowStatus)
	assert.Equal(t, config.DefaultDensity, cfg.Scene.Density)
}

func TestApplyFlags_Logging(t *testing.T) {
	t.Parallel()

	fs := parseFlags(t, "--log-level", "debug", "--log-file", "/tmp/d.log")

	cfg := config.DefaultConfig()
	require.NoError(t, applyFlags(fs, &cfg))

	assert.Equal(t, config.Log{Level: "debug", File: "/tmp/d.log"}, cfg.Log)
}

func TestResolveConfig_FileThenFlags(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tps: 20\nbackend: ansi\n"), 0o644))

	cfg, err := resolveConfig(parseFlags(t, "--config", path, "--tps", "40"))
	require.NoError(t, err)

	assert.Equal(t, 40.0, cfg.TPS)
	assert.Equal(t, config.BackendANSI, cfg.Backend)
	assert.Equal(t, config.DefaultFPS, cfg.FPS)
}

func TestResolveConfig_FlagReplacesInvalidFileValue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 0\nscene:\n  kind: snow\n"), 0o644))

	cfg, err := resolveConfig(parseFlags(t, "--config", path, "--fps", "30"))
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.FPS)
	assert.Equal(t, "snow", cfg.Scene.Kind)
}

func TestResolveConfig_InvalidFileValueWithoutFlag(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 0\n"), 0o644))

	_, err := resolveConfig(parseFlags(t, "--config", path))
	require.Error(t, err)
	assert.True(t, config.IsValidationError(err))
	assert.Contains(t, err.Error(), "fps")
}

func TestResolveConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := resolveConfig(parseFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestResolveConfig_InvalidOverride(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 30\n"), 0o644))

	_, err := resolveConfig(parseFlags(t, "--config", path, "--density", "2"))
	require.Error(t, err)
	assert.True(t, config.IsValidationError(err))
}

func TestConfigCommand_PrintsEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scene:\n  kind: storm\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "--config", path, "--fps", "12"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())

	assert.Contains(t, out.String(), "fps: 12")
	assert.Contains(t, out.String(), "kind: storm")
	assert.Contains(t, out.String(), "backend: tcell")
}

func TestVersionTemplate(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())
	assert.Equal(t, "drizzle version "+Version+"\n", out.String())
}
