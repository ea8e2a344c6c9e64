// Package config resolves scriptsift settings from flags, environment variables, an
// optional config file and a best-effort .env file.
//
// Precedence, highest first: explicitly set flag, SCRIPTSIFT_* environment variable
// (a variable already set wins over the same one in .env), config file, default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key to form its environment variable.
const EnvPrefix = "SCRIPTSIFT"

// Keys, shared with the CLI flag names.
const (
	KeyMathThreshold = "math-threshold"
	KeyCodeThreshold = "code-threshold"
	KeyFormat        = "format"
	KeyChunkSize     = "chunk-size"
	KeyMinLength     = "min-length"
	KeyQuiet         = "quiet"
	KeyDebug         = "debug"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config is the resolved configuration.
type Config struct {
	MathThreshold float64 // percent of non-whitespace characters
	CodeThreshold float64 // percent of non-whitespace characters
	Format        string  // FormatJSON or FormatText
	ChunkSize     int     // passage size limit in code points
	MinLength     int     // minimum passage length in code points
	Quiet         bool
	Debug         bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MathThreshold: 1.0,
		CodeThreshold: 1.0,
		Format:        FormatJSON,
		ChunkSize:     1000,
		MinLength:     10,
	}
}

// Loader reads configuration sources.
type Loader struct {
	// ConfigFile is an optional YAML, TOML or JSON file. Unlike EnvFile it must exist.
	ConfigFile string
	// EnvFile is loaded into the environment when present. Defaults to ".env".
	EnvFile string
}

// Load resolves the configuration, binding every flag in flags to the key of the same name.
// flags may be nil.
func (l Loader) Load(flags *pflag.FlagSet) (Config, error) {
	if err := l.loadEnvFile(); err != nil {
		return Config{}, err
	}

	v := newViper()

	if l.ConfigFile != "" {
		v.SetConfigFile(l.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %q: %w", l.ConfigFile, err)
		}
		slog.Debug("Config file loaded", "path", l.ConfigFile)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	cfg := Config{
		MathThreshold: v.GetFloat64(KeyMathThreshold),
		CodeThreshold: v.GetFloat64(KeyCodeThreshold),
		Format:        strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat))),
		ChunkSize:     v.GetInt(KeyChunkSize),
		MinLength:     v.GetInt(KeyMinLength),
		Quiet:         v.GetBool(KeyQuiet),
		Debug:         v.GetBool(KeyDebug),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MathThreshold < 0 || c.MathThreshold > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %v", KeyMathThreshold, c.MathThreshold)
	}
	if c.CodeThreshold < 0 || c.CodeThreshold > 100 {
		return fmt.Errorf("%s must be between 0 and 100, got %v", KeyCodeThreshold, c.CodeThreshold)
	}
	if c.Format != FormatJSON && c.Format != FormatText {
		return fmt.Errorf("%s must be %q or %q, got %q", KeyFormat, FormatJSON, FormatText, c.Format)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyChunkSize, c.ChunkSize)
	}
	if c.MinLength < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeyMinLength, c.MinLength)
	}
	return nil
}

func (l Loader) loadEnvFile() error {
	path := l.EnvFile
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load env file %q: %w", path, err)
	}
	slog.Debug("Env file loaded", "path", path)
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyMathThreshold, d.MathThreshold)
	v.SetDefault(KeyCodeThreshold, d.CodeThreshold)
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyChunkSize, d.ChunkSize)
	v.SetDefault(KeyMinLength, d.MinLength)
	v.SetDefault(KeyQuiet, d.Quiet)
	v.SetDefault(KeyDebug, d.Debug)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}
