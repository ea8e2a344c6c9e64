package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriscorrea/scriptsift/internal/config"
)

// isolate clears every SCRIPTSIFT_ variable for the duration of the test and points the
// loader at an env file that does not exist.
func isolate(t *testing.T) config.Loader {
	t.Helper()
	for _, key := range []string{"MATH_THRESHOLD", "CODE_THRESHOLD", "FORMAT", "CHUNK_SIZE", "MIN_LENGTH", "QUIET", "DEBUG"} {
		name := config.EnvPrefix + "_" + key
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return config.Loader{EnvFile: filepath.Join(t.TempDir(), "missing.env")}
}

func newFlags() *pflag.FlagSet {
	d := config.Default()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64(config.KeyMathThreshold, d.MathThreshold, "")
	flags.Float64(config.KeyCodeThreshold, d.CodeThreshold, "")
	flags.String(config.KeyFormat, d.Format, "")
	flags.Int(config.KeyChunkSize, d.ChunkSize, "")
	flags.Int(config.KeyMinLength, d.MinLength, "")
	flags.Bool(config.KeyQuiet, false, "")
	flags.Bool(config.KeyDebug, false, "")
	return flags
}

func TestLoadDefaults(t *testing.T) {
	loader := isolate(t)

	cfg, err := loader.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = loader.Load(newFlags())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadEnv(t *testing.T) {
	loader := isolate(t)
	t.Setenv("SCRIPTSIFT_MATH_THRESHOLD", "12.5")
	t.Setenv("SCRIPTSIFT_FORMAT", "TEXT")
	t.Setenv("SCRIPTSIFT_QUIET", "true")

	cfg, err := loader.Load(newFlags())
	require.NoError(t, err)
	assert.Equal(t, 12.5, cfg.MathThreshold)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.True(t, cfg.Quiet)
	assert.Equal(t, 1.0, cfg.CodeThreshold)
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	loader := isolate(t)
	t.Setenv("SCRIPTSIFT_CHUNK_SIZE", "200")

	flags := newFlags()
	require.NoError(t, flags.Set(config.KeyChunkSize, "50"))

	cfg, err := loader.Load(flags)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.ChunkSize)
}

func TestLoadConfigFile(t *testing.T) {
	loader := isolate(t)
	path := filepath.Join(t.TempDir(), "scriptsift.yaml")
	require.NoError(t, os.WriteFile(path, []byte("code-threshold: 7\nmin-length: 3\nformat: text\n"), 0o600))
	loader.ConfigFile = path
	t.Setenv("SCRIPTSIFT_MIN_LENGTH", "4")

	cfg, err := loader.Load(newFlags())
	require.NoError(t, err)
	assert.Equal(t, 7.0, cfg.CodeThreshold)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, 4, cfg.MinLength, "environment wins over the config file")
}

func TestLoadMissingConfigFile(t *testing.T) {
	loader := isolate(t)
	loader.ConfigFile = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := loader.Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadEnvFile(t *testing.T) {
	loader := isolate(t)
	loader.EnvFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(loader.EnvFile, []byte("SCRIPTSIFT_CHUNK_SIZE=321\nSCRIPTSIFT_DEBUG=true\n"), 0o600))
	t.Setenv("SCRIPTSIFT_DEBUG", "false")

	cfg, err := loader.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 321, cfg.ChunkSize)
	assert.False(t, cfg.Debug, "variables already set win over .env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{name: "negative math threshold", modify: func(c *config.Config) { c.MathThreshold = -1 }},
		{name: "code threshold over 100", modify: func(c *config.Config) { c.CodeThreshold = 101 }},
		{name: "unknown format", modify: func(c *config.Config) { c.Format = "xml" }},
		{name: "zero chunk size", modify: func(c *config.Config) { c.ChunkSize = 0 }},
		{name: "negative min length", modify: func(c *config.Config) { c.MinLength = -2 }},
	}

	require.NoError(t, config.Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
