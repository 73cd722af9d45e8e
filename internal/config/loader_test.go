package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Empty path and no file at the default location: full defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Manifest.Path != DefaultManifestPath {
		t.Errorf("Manifest.Path = %q, want %q", cfg.Manifest.Path, DefaultManifestPath)
	}
	if cfg.Manifest.PrimarySection != DefaultPrimarySection {
		t.Errorf("PrimarySection = %q", cfg.Manifest.PrimarySection)
	}
	if cfg.Scan.Extension != DefaultExtension {
		t.Errorf("Extension = %q", cfg.Scan.Extension)
	}
	if len(cfg.Scan.Exclude) != 1 || cfg.Scan.Exclude[0] != "flutter" {
		t.Errorf("Exclude = %v, want [flutter]", cfg.Scan.Exclude)
	}
	if cfg.Categories.Timeout != DefaultCategoryTimeout {
		t.Errorf("Timeout = %v", cfg.Categories.Timeout)
	}
	if cfg.Output.Format != OutputFormatPretty || !cfg.Output.Color {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoadConfigExplicitMissingPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("explicitly requested missing config must fail")
	}
	if _, ok := err.(*LoadError); !ok {
		t.Errorf("error type = %T, want *LoadError", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `manifest:
  backup_suffix: .backup
scan:
  extension: .dart
  exclude:
    - flutter
    - flutter_test
  extra:
    - example
categories:
  timeout: 2s
  publish: false
output:
  format: plain
  color: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Manifest.BackupSuffix != ".backup" {
		t.Errorf("BackupSuffix = %q", cfg.Manifest.BackupSuffix)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Manifest.Path != DefaultManifestPath {
		t.Errorf("Manifest.Path should default, got %q", cfg.Manifest.Path)
	}
	if len(cfg.Scan.Exclude) != 2 || cfg.Scan.Exclude[1] != "flutter_test" {
		t.Errorf("Exclude = %v", cfg.Scan.Exclude)
	}
	if len(cfg.Scan.Extra) != 1 || cfg.Scan.Extra[0] != "example" {
		t.Errorf("Extra = %v", cfg.Scan.Extra)
	}
	if cfg.Categories.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Categories.Timeout)
	}
	if cfg.Categories.Publish {
		t.Error("Publish should be false")
	}
	if cfg.Output.Format != OutputFormatPlain {
		t.Errorf("Format = %q", cfg.Output.Format)
	}
	if cfg.Output.Color {
		t.Error("Color should be false")
	}
}

func TestLoadConfigInvalidFormatFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: fancy\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("unknown output format must fail validation")
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".pubsweep")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("manifest:\n  backup_suffix: .orig\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if cfg.Manifest.BackupSuffix != ".orig" {
		t.Errorf("BackupSuffix = %q, want .orig", cfg.Manifest.BackupSuffix)
	}
}

func TestLoadConfigFromDirWithoutFile(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	if err != nil {
		t.Fatalf("directory without config should load defaults: %v", err)
	}
	if cfg.Manifest.Path != DefaultManifestPath {
		t.Errorf("Manifest.Path = %q", cfg.Manifest.Path)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PUBSWEEP_SCAN_EXCLUDE", "flutter, flutter_test")
	t.Setenv("PUBSWEEP_CATEGORIES_TIMEOUT", "750ms")
	t.Setenv("PUBSWEEP_OUTPUT_FORMAT", "json")
	t.Setenv("PUBSWEEP_CATEGORIES_PUBLISH", "no")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Scan.Exclude) != 2 || cfg.Scan.Exclude[1] != "flutter_test" {
		t.Errorf("Exclude = %v", cfg.Scan.Exclude)
	}
	if cfg.Categories.Timeout != 750*time.Millisecond {
		t.Errorf("Timeout = %v", cfg.Categories.Timeout)
	}
	if cfg.Output.Format != OutputFormatJSON {
		t.Errorf("Format = %q", cfg.Output.Format)
	}
	if cfg.Categories.Publish {
		t.Error("Publish should be overridden to false")
	}
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}

	cfg.Manifest.DevSection = cfg.Manifest.PrimarySection
	if err := cfg.Validate(); err == nil {
		t.Error("identical section names should fail validation")
	}

	cfg = NewConfig()
	cfg.Manifest.BackupSuffix = "bak"
	if err := cfg.Validate(); err == nil {
		t.Error("backup suffix without a leading dot should fail validation")
	}

	cfg = NewConfig()
	cfg.Scan.TestDir = cfg.Scan.LibDir
	if err := cfg.Validate(); err == nil {
		t.Error("duplicate scan roots should fail validation")
	}
}
