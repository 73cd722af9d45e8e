package project

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleManifest = `name: demo_app
environment:
  sdk: ">=3.0.0 <4.0.0"

dependencies:
  flutter:
    sdk: flutter
  dio: ^5.0.0

dev_dependencies:
  mockito: ^5.4.0
`

func writeProject(t *testing.T, dir string, roots ...string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, root := range roots {
		if err := os.MkdirAll(filepath.Join(dir, root), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, "lib", "test")

	info, err := NewDetector().Detect(dir)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if info == nil {
		t.Fatal("expected a project")
	}

	if info.Name != "demo_app" {
		t.Errorf("Name = %q, want %q", info.Name, "demo_app")
	}
	if info.Path != dir {
		t.Errorf("Path = %q, want %q", info.Path, dir)
	}
	if info.ManifestPath != filepath.Join(dir, ManifestName) {
		t.Errorf("ManifestPath = %q", info.ManifestPath)
	}
	if !info.IsFlutter {
		t.Error("flutter dependency should set IsFlutter")
	}
	if !info.HasLib || !info.HasTest {
		t.Error("existing roots should be reported")
	}
	if info.HasBin || info.HasTool {
		t.Error("missing roots should not be reported")
	}
}

func TestDetectNoManifest(t *testing.T) {
	info, err := NewDetector().Detect(t.TempDir())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil for a directory without %s, got %+v", ManifestName, info)
	}
}

func TestDetectMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(":\n  - not valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := NewDetector().Detect(dir)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if info == nil {
		t.Fatal("a manifest that fails to parse still marks a project")
	}
	if info.Name != filepath.Base(dir) {
		t.Errorf("Name should fall back to the directory name, got %q", info.Name)
	}
	if info.IsFlutter {
		t.Error("IsFlutter should be false when the manifest is unreadable")
	}
}

func TestDetectPureDartProject(t *testing.T) {
	dir := t.TempDir()
	manifest := "name: cli_tool\ndependencies:\n  args: ^2.4.0\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := NewDetector().Detect(dir)
	if err != nil {
		t.Fatal(err)
	}
	if info.IsFlutter {
		t.Error("no flutter dependency, IsFlutter should be false")
	}
	if info.Name != "cli_tool" {
		t.Errorf("Name = %q", info.Name)
	}
}

func TestFindProjectWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeProject(t, root, "lib")

	nested := filepath.Join(root, "lib", "src", "widgets")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	info, err := NewDetector().FindProject(nested)
	if err != nil {
		t.Fatalf("FindProject failed: %v", err)
	}
	if info == nil {
		t.Fatal("expected to find the project above the start directory")
	}
	if info.Path != root {
		t.Errorf("Path = %q, want %q", info.Path, root)
	}
}

func TestFindProjectPrefersNearest(t *testing.T) {
	outer := t.TempDir()
	writeProject(t, outer)

	inner := filepath.Join(outer, "packages", "child")
	if err := os.MkdirAll(inner, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := "name: child_pkg\n"
	if err := os.WriteFile(filepath.Join(inner, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := NewDetector().FindProject(inner)
	if err != nil {
		t.Fatal(err)
	}
	if info.Name != "child_pkg" {
		t.Errorf("nearest manifest wins, got %q", info.Name)
	}
}

func TestFindProjectNotFound(t *testing.T) {
	info, err := NewDetector().FindProject(t.TempDir())
	if err != nil {
		t.Fatalf("FindProject failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected nil outside any project, got %+v", info)
	}
}
