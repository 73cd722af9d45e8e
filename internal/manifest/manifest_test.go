package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	swerr "github.com/fluttertools/pubsweep/internal/errors"
)

func TestParseSections(t *testing.T) {
	m, err := Parse([]byte(sampleManifest), "pubspec.yaml", "dependencies", "dev_dependencies")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if m.Name != "sample_app" {
		t.Errorf("Name = %q, want sample_app", m.Name)
	}
	if len(m.Primary) != 4 {
		t.Fatalf("len(Primary) = %d, want 4", len(m.Primary))
	}
	if len(m.Dev) != 2 {
		t.Fatalf("len(Dev) = %d, want 2", len(m.Dev))
	}

	dio := m.Find("dio", SectionPrimary)
	if dio == nil {
		t.Fatal("dio not found in primary section")
	}
	if dio.Spec.Kind != SpecSimple || dio.Spec.Version != "^5.4.0" {
		t.Errorf("dio spec = %+v, want simple ^5.4.0", dio.Spec)
	}

	sn := m.Find("state_notifier", SectionPrimary)
	if sn == nil {
		t.Fatal("state_notifier not found")
	}
	if sn.Spec.Kind != SpecStructured {
		t.Errorf("state_notifier should be a structured spec, got %+v", sn.Spec)
	}
	if len(sn.Spec.Keys) != 1 || sn.Spec.Keys[0] != "git" {
		t.Errorf("state_notifier keys = %v, want [git]", sn.Spec.Keys)
	}

	if m.Find("mockito", SectionDev) == nil {
		t.Error("mockito not found in dev section")
	}
	if m.Find("mockito", SectionPrimary) != nil {
		t.Error("mockito must not appear in the primary section")
	}
}

func TestParseEmptySpec(t *testing.T) {
	content := "name: app\ndependencies:\n  anything:\n"
	m, err := Parse([]byte(content), "pubspec.yaml", "dependencies", "dev_dependencies")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	dep := m.Find("anything", SectionPrimary)
	if dep == nil {
		t.Fatal("anything not found")
	}
	if dep.Spec.Kind != SpecEmpty {
		t.Errorf("spec kind = %v, want SpecEmpty", dep.Spec.Kind)
	}
	if got := dep.Spec.Describe(); got != "any" {
		t.Errorf("Describe() = %q, want any", got)
	}
}

func TestContentRoundTrip(t *testing.T) {
	for _, content := range []string{
		sampleManifest,
		"name: app\ndependencies:\n  dio: ^5.0.0", // no trailing newline
	} {
		m, err := Parse([]byte(content), "pubspec.yaml", "dependencies", "dev_dependencies")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if got := m.Content(); got != content {
			t.Errorf("round trip changed content:\ngot:  %q\nwant: %q", got, content)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed\n"), "pubspec.yaml", "dependencies", "dev_dependencies")
	if err == nil {
		t.Fatal("malformed YAML should fail to parse")
	}
	if !errors.Is(err, swerr.ErrManifest) {
		t.Errorf("error should carry the manifest kind, got %v", err)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "pubspec.yaml"), "dependencies", "dev_dependencies")
	if err == nil {
		t.Fatal("missing manifest must be an error")
	}
	if !errors.Is(err, swerr.ErrManifest) {
		t.Errorf("error should carry the manifest kind, got %v", err)
	}
}

func TestWriteBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubspec.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path, "dependencies", "dev_dependencies")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	e := NewEditor(m.Lines(), m.PrimaryKey, m.DevKey)
	e.Remove("dio")
	if err := m.WriteBack(e.Lines()); err != nil {
		t.Fatalf("WriteBack failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := joined(e.Lines())
	if string(data) != want {
		t.Errorf("written content differs from editor buffer")
	}
}

func TestBackupCreateRestore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubspec.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBackup(path, ".bak")
	if !b.Create() {
		t.Fatal("Create should succeed")
	}
	if _, err := os.Stat(b.Path()); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	// Clobber the manifest, then restore.
	if err := os.WriteFile(path, []byte("ruined\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !b.Restore() {
		t.Fatal("Restore should succeed")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleManifest {
		t.Error("restore should bring back the original content exactly")
	}

	b.Remove()
	if _, err := os.Stat(b.Path()); !os.IsNotExist(err) {
		t.Error("Remove should delete the backup file")
	}
}

func TestBackupCreateFailsWithoutSource(t *testing.T) {
	b := NewBackup(filepath.Join(t.TempDir(), "absent.yaml"), ".bak")
	if b.Create() {
		t.Error("Create must report failure when the manifest is missing")
	}
}
