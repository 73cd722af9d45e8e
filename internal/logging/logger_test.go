package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(&Config{
		Level:  LevelDebug,
		LogDir: dir,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer logger.Close()

	logger.Info("hello", "key", "value")
	logger.Debug("debugging")

	path := logger.LogPath()
	if filepath.Dir(path) != dir {
		t.Errorf("log file %q not in configured directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file unreadable: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello") || !strings.Contains(content, "key=value") {
		t.Errorf("log output missing entries:\n%s", content)
	}
	if !strings.Contains(content, "debugging") {
		t.Error("debug entries should pass at LevelDebug")
	}
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(&Config{Level: LevelWarn, LogDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	logger.Info("quiet")
	logger.Warn("loud")

	data, _ := os.ReadFile(logger.LogPath())
	if strings.Contains(string(data), "quiet") {
		t.Error("info entries should be filtered at LevelWarn")
	}
	if !strings.Contains(string(data), "loud") {
		t.Error("warn entries should pass at LevelWarn")
	}
}

func TestJSONFormat(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(&Config{Level: LevelInfo, LogDir: dir, JSONFormat: true})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	logger.Info("structured", "n", 1)

	data, _ := os.ReadFile(logger.LogPath())
	if !strings.Contains(string(data), `"msg":"structured"`) {
		t.Errorf("JSON handler expected:\n%s", data)
	}
}

func TestWithAttributes(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(&Config{Level: LevelInfo, LogDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	logger.With("component", "scanner").Info("walking")

	data, _ := os.ReadFile(logger.LogPath())
	if !strings.Contains(string(data), "component=scanner") {
		t.Errorf("With attribute missing:\n%s", data)
	}
}

func TestNoopLoggerIsSafe(t *testing.T) {
	logger := NewNoop()
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on noop logger: %v", err)
	}
	if logger.LogPath() != "" {
		t.Error("noop logger has no file")
	}
}

func TestCleanupRemovesOldFiles(t *testing.T) {
	dir := t.TempDir()

	// Two stale files, well past the age limit.
	for _, name := range []string{"pubsweep_20200101_000000.log", "pubsweep_20200102_000000.log"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
		old := time.Now().Add(-30 * 24 * time.Hour)
		if err := os.Chtimes(path, old, old); err != nil {
			t.Fatal(err)
		}
	}
	// An unrelated file must never be touched.
	keep := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(keep, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	logger, err := New(&Config{Level: LevelInfo, LogDir: dir, MaxLogFiles: 5, MaxLogAge: 7 * 24 * time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()

	if err := logger.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "pubsweep_2020") {
			t.Errorf("stale log %s should be removed", e.Name())
		}
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("unrelated files must survive cleanup")
	}
	if _, err := os.Stat(logger.LogPath()); err != nil {
		t.Error("the active log file must survive cleanup")
	}
}

func TestGlobalLogger(t *testing.T) {
	dir := t.TempDir()
	if err := InitGlobal(&Config{Level: LevelInfo, LogDir: dir}); err != nil {
		t.Fatalf("InitGlobal failed: %v", err)
	}
	defer func() { _ = CloseGlobal() }()

	Info("global entry", "via", "package")

	path := Global().LogPath()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("global log unreadable: %v", err)
	}
	if !strings.Contains(string(data), "global entry") {
		t.Errorf("global log missing entry:\n%s", data)
	}
}
