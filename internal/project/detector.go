// Package project locates the Dart or Flutter project a command operates on.
package project

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Info contains information about a detected project.
type Info struct {
	// Path is the absolute path to the project directory.
	Path string `json:"path"`
	// Name is the package name from the manifest, falling back to the
	// directory name when the manifest cannot be parsed.
	Name string `json:"name"`
	// ManifestPath is the absolute path to pubspec.yaml.
	ManifestPath string `json:"manifest_path"`
	// IsFlutter indicates whether the manifest declares a flutter dependency.
	IsFlutter bool `json:"is_flutter"`
	// HasLib, HasTest, HasBin and HasTool report which scan roots exist.
	HasLib  bool `json:"has_lib"`
	HasTest bool `json:"has_test"`
	HasBin  bool `json:"has_bin"`
	HasTool bool `json:"has_tool"`
}

// ManifestName is the file that marks a Dart project root.
const ManifestName = "pubspec.yaml"

// Detector detects Dart project directories.
type Detector struct {
	// Manifest is the marker file name, pubspec.yaml unless overridden.
	Manifest string
}

// NewDetector creates a detector with the standard marker.
func NewDetector() *Detector {
	return &Detector{Manifest: ManifestName}
}

// Detect inspects a single directory. Returns nil when the directory holds
// no manifest.
func (d *Detector) Detect(dir string) (*Info, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(abs, d.Manifest)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, nil
	}

	info := &Info{
		Path:         abs,
		Name:         filepath.Base(abs),
		ManifestPath: manifestPath,
	}

	if name, flutter := readManifestHead(manifestPath); name != "" {
		info.Name = name
		info.IsFlutter = flutter
	}

	info.HasLib = dirExists(filepath.Join(abs, "lib"))
	info.HasTest = dirExists(filepath.Join(abs, "test"))
	info.HasBin = dirExists(filepath.Join(abs, "bin"))
	info.HasTool = dirExists(filepath.Join(abs, "tool"))

	return info, nil
}

// FindProject walks upward from startDir to the filesystem root looking for
// the nearest directory holding a manifest. Returns nil when none is found.
func (d *Detector) FindProject(startDir string) (*Info, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		info, err := d.Detect(dir)
		if err != nil {
			return nil, err
		}
		if info != nil {
			return info, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// readManifestHead extracts the package name and flutter flag from the
// manifest. Parse failures return zero values; detection never fails on a
// malformed manifest, the load step reports that properly.
func readManifestHead(path string) (name string, flutter bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var head struct {
		Name         string                 `yaml:"name"`
		Dependencies map[string]interface{} `yaml:"dependencies"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return "", false
	}

	_, flutter = head.Dependencies["flutter"]
	return head.Name, flutter
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
