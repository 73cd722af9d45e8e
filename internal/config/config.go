// Package config provides configuration data structures for pubsweep.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the complete pubsweep configuration loaded from
// .pubsweep/config.yaml. Every field has a sensible default so that
// pubsweep works in projects with no configuration at all.
type Config struct {
	Manifest   ManifestConfig   `yaml:"manifest"   json:"manifest"`
	Scan       ScanConfig       `yaml:"scan"       json:"scan"`
	Categories CategoriesConfig `yaml:"categories" json:"categories"`
	Output     OutputConfig     `yaml:"output"     json:"output"`
}

// ManifestConfig configures how the manifest file is located and edited.
type ManifestConfig struct {
	// Path is the manifest path relative to the project root (default: pubspec.yaml).
	Path string `yaml:"path" json:"path"`
	// PrimarySection is the runtime dependencies section key (default: dependencies).
	PrimarySection string `yaml:"primary_section" json:"primary_section"`
	// DevSection is the development dependencies section key (default: dev_dependencies).
	DevSection string `yaml:"dev_section" json:"dev_section"`
	// BackupSuffix is appended to the manifest path for backups (default: .bak).
	BackupSuffix string `yaml:"backup_suffix" json:"backup_suffix"`
}

// ScanConfig configures the source usage scanner.
type ScanConfig struct {
	// LibDir is the library source root (default: lib).
	LibDir string `yaml:"lib_dir" json:"lib_dir"`
	// TestDir is the test source root (default: test).
	TestDir string `yaml:"test_dir" json:"test_dir"`
	// BinDir is the executable source root (default: bin).
	BinDir string `yaml:"bin_dir" json:"bin_dir"`
	// ToolDir is the tooling source root (default: tool).
	ToolDir string `yaml:"tool_dir" json:"tool_dir"`
	// Extra lists additional directories to scan. References found there are
	// recorded and logged but never count toward any usage role.
	Extra []string `yaml:"extra" json:"extra"`
	// Extension is the source file extension filter (default: .dart).
	Extension string `yaml:"extension" json:"extension"`
	// Exclude lists package names excluded from classification and duplicate
	// detection (default: flutter, the SDK pseudo-package).
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// CategoriesConfig configures the category retrieval chain used by
// "pubsweep group".
type CategoriesConfig struct {
	// APIURL is the remote category service base URL.
	APIURL string `yaml:"api_url" json:"api_url"`
	// CachePath is the local category cache file (default: .pubsweep/categories.json).
	CachePath string `yaml:"cache_path" json:"cache_path"`
	// Timeout bounds each remote lookup (default: 5s).
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// Publish enables publishing remote-resolved categories back to the
	// shared store (default: true).
	Publish bool `yaml:"publish" json:"publish"`
}

// OutputFormat defines how analysis results are rendered.
type OutputFormat string

const (
	// OutputFormatPretty renders a styled terminal report.
	OutputFormatPretty OutputFormat = "pretty"
	// OutputFormatPlain renders an unstyled text report.
	OutputFormatPlain OutputFormat = "plain"
	// OutputFormatJSON renders machine-readable JSON.
	OutputFormatJSON OutputFormat = "json"
)

// OutputConfig configures report rendering.
type OutputConfig struct {
	// Format selects the report format (default: pretty).
	Format OutputFormat `yaml:"format" json:"format"`
	// Color enables colored output (default: true).
	Color bool `yaml:"color" json:"color"`
}

// Default values.
const (
	DefaultManifestPath    = "pubspec.yaml"
	DefaultPrimarySection  = "dependencies"
	DefaultDevSection      = "dev_dependencies"
	DefaultBackupSuffix    = ".bak"
	DefaultExtension       = ".dart"
	DefaultCategoryAPIURL  = "https://api.pubsweep.dev/v1/categories"
	DefaultCategoryCache   = ".pubsweep/categories.json"
	DefaultCategoryTimeout = 5 * time.Second
)

// DefaultExclude is the default set of pseudo-packages excluded from
// analysis. The flutter SDK dependency is declared in nearly every Flutter
// manifest but is not a pub.dev package.
var DefaultExclude = []string{"flutter"}

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		Manifest: ManifestConfig{
			Path:           DefaultManifestPath,
			PrimarySection: DefaultPrimarySection,
			DevSection:     DefaultDevSection,
			BackupSuffix:   DefaultBackupSuffix,
		},
		Scan: ScanConfig{
			LibDir:    "lib",
			TestDir:   "test",
			BinDir:    "bin",
			ToolDir:   "tool",
			Extra:     []string{},
			Extension: DefaultExtension,
			Exclude:   append([]string{}, DefaultExclude...),
		},
		Categories: CategoriesConfig{
			APIURL:    DefaultCategoryAPIURL,
			CachePath: DefaultCategoryCache,
			Timeout:   DefaultCategoryTimeout,
			Publish:   true,
		},
		Output: OutputConfig{
			Format: OutputFormatPretty,
			Color:  true,
		},
	}
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.Manifest.Path == "" {
		c.Manifest.Path = defaults.Manifest.Path
	}
	if c.Manifest.PrimarySection == "" {
		c.Manifest.PrimarySection = defaults.Manifest.PrimarySection
	}
	if c.Manifest.DevSection == "" {
		c.Manifest.DevSection = defaults.Manifest.DevSection
	}
	if c.Manifest.BackupSuffix == "" {
		c.Manifest.BackupSuffix = defaults.Manifest.BackupSuffix
	}

	if c.Scan.LibDir == "" {
		c.Scan.LibDir = defaults.Scan.LibDir
	}
	if c.Scan.TestDir == "" {
		c.Scan.TestDir = defaults.Scan.TestDir
	}
	if c.Scan.BinDir == "" {
		c.Scan.BinDir = defaults.Scan.BinDir
	}
	if c.Scan.ToolDir == "" {
		c.Scan.ToolDir = defaults.Scan.ToolDir
	}
	if c.Scan.Extension == "" {
		c.Scan.Extension = defaults.Scan.Extension
	}
	if c.Scan.Extra == nil {
		c.Scan.Extra = []string{}
	}
	if c.Scan.Exclude == nil {
		c.Scan.Exclude = append([]string{}, DefaultExclude...)
	}

	if c.Categories.APIURL == "" {
		c.Categories.APIURL = defaults.Categories.APIURL
	}
	if c.Categories.CachePath == "" {
		c.Categories.CachePath = defaults.Categories.CachePath
	}
	if c.Categories.Timeout == 0 {
		c.Categories.Timeout = defaults.Categories.Timeout
	}

	if c.Output.Format == "" {
		c.Output.Format = defaults.Output.Format
	}
}

// Roots returns the four recognized source roots in role order:
// library, test, executable, tooling.
func (c *ScanConfig) Roots() []string {
	return []string{c.LibDir, c.TestDir, c.BinDir, c.ToolDir}
}

// IsExcluded reports whether a package name is excluded from analysis.
func (c *ScanConfig) IsExcluded(name string) bool {
	for _, ex := range c.Exclude {
		if ex == name {
			return true
		}
	}
	return false
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Manifest.PrimarySection == c.Manifest.DevSection {
		errs = append(errs, &ValidationError{
			Field:   "manifest.dev_section",
			Message: "must differ from manifest.primary_section",
		})
	}
	if c.Manifest.BackupSuffix != "" && !strings.HasPrefix(c.Manifest.BackupSuffix, ".") {
		errs = append(errs, &ValidationError{
			Field:   "manifest.backup_suffix",
			Message: "must start with '.'",
		})
	}

	if c.Scan.Extension != "" && !strings.HasPrefix(c.Scan.Extension, ".") {
		errs = append(errs, &ValidationError{
			Field:   "scan.extension",
			Message: "must start with '.' (e.g. '.dart')",
		})
	}
	seen := map[string]string{}
	for _, root := range []struct{ field, dir string }{
		{"scan.lib_dir", c.Scan.LibDir},
		{"scan.test_dir", c.Scan.TestDir},
		{"scan.bin_dir", c.Scan.BinDir},
		{"scan.tool_dir", c.Scan.ToolDir},
	} {
		if root.dir == "" {
			continue
		}
		if prev, ok := seen[root.dir]; ok {
			errs = append(errs, &ValidationError{
				Field:   root.field,
				Message: fmt.Sprintf("duplicates %s (%q)", prev, root.dir),
			})
		}
		seen[root.dir] = root.field
	}

	if c.Categories.Timeout < 0 {
		errs = append(errs, &ValidationError{
			Field:   "categories.timeout",
			Message: "must be non-negative",
		})
	}

	if c.Output.Format != "" {
		switch c.Output.Format {
		case OutputFormatPretty, OutputFormatPlain, OutputFormatJSON:
			// valid
		default:
			errs = append(errs, &ValidationError{
				Field:   "output.format",
				Message: "must be 'pretty', 'plain', or 'json'",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
