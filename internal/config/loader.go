// Package config provides configuration loading and management for pubsweep.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the project root.
	DefaultConfigPath = ".pubsweep/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "PUBSWEEP"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
//
// When path is empty the default location is used and a missing file is not
// an error: pubsweep runs with defaults in projects that carry no
// configuration. An explicitly requested path that does not exist is an
// error.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, &LoadError{
				Path:    path,
				Message: "config file not found",
				Err:     err,
			}
		}
		cfg := NewConfig()
		l.applyEnvOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, &LoadError{
				Path:    path,
				Message: "configuration validation failed",
				Err:     err,
			}
		}
		return cfg, nil
	}

	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read config file",
			Err:     err,
		}
	}

	// Start with defaults
	cfg := NewConfig()

	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	l.applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .pubsweep/config.yaml in the
// specified directory, falling back to defaults when absent.
func (l *Loader) LoadConfigFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultConfigPath)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return l.LoadConfig("")
	}
	return l.LoadConfig(path)
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// Manifest settings
	if v := os.Getenv(EnvPrefix + "_MANIFEST_PATH"); v != "" {
		cfg.Manifest.Path = v
	}
	if v := os.Getenv(EnvPrefix + "_MANIFEST_PRIMARY_SECTION"); v != "" {
		cfg.Manifest.PrimarySection = v
	}
	if v := os.Getenv(EnvPrefix + "_MANIFEST_DEV_SECTION"); v != "" {
		cfg.Manifest.DevSection = v
	}

	// Scan settings
	if v := os.Getenv(EnvPrefix + "_SCAN_EXTENSION"); v != "" {
		cfg.Scan.Extension = v
	}
	if v := os.Getenv(EnvPrefix + "_SCAN_EXCLUDE"); v != "" {
		cfg.Scan.Exclude = splitList(v)
	}
	if v := os.Getenv(EnvPrefix + "_SCAN_EXTRA"); v != "" {
		cfg.Scan.Extra = splitList(v)
	}

	// Category settings
	if v := os.Getenv(EnvPrefix + "_CATEGORIES_API_URL"); v != "" {
		cfg.Categories.APIURL = v
	}
	if v := os.Getenv(EnvPrefix + "_CATEGORIES_CACHE_PATH"); v != "" {
		cfg.Categories.CachePath = v
	}
	if v := os.Getenv(EnvPrefix + "_CATEGORIES_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Categories.Timeout = d
		}
	}
	if v := os.Getenv(EnvPrefix + "_CATEGORIES_PUBLISH"); v != "" {
		cfg.Categories.Publish = parseBool(v)
	}

	// Output settings
	if v := os.Getenv(EnvPrefix + "_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = OutputFormat(v)
	}
	if v := os.Getenv(EnvPrefix + "_OUTPUT_COLOR"); v != "" {
		cfg.Output.Color = parseBool(v)
	}
}

// splitList splits a comma-separated environment value into a clean list.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
// Returns false for anything else.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
// It composes the standard mapstructure hooks with our custom ones.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	// Snake_case keys in the config file map onto the yaml struct tags.
	dc.TagName = "yaml"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToCustomTypeHookFunc(),
	)
}

// stringToCustomTypeHookFunc creates a decode hook for our custom types.
func stringToCustomTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		if to == reflect.TypeOf(OutputFormat("")) {
			return OutputFormat(data.(string)), nil
		}

		return data, nil
	}
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// LoadFromDir is a convenience function that loads configuration from a directory.
func LoadFromDir(dir string) (*Config, error) {
	return NewLoader().LoadConfigFromDir(dir)
}
