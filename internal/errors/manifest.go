// Package errors provides error types for pubsweep.
// This file contains manifest, scan, and backup related errors.
package errors

import (
	"fmt"
)

// Manifest-related error constructors.

// ManifestNotFound creates an error for a missing pubspec.yaml.
// A missing manifest is fatal for an analysis pass.
func ManifestNotFound(path string, cause error) *SweepError {
	return &SweepError{
		Kind:    ErrManifest,
		Message: "pubspec.yaml not found",
		Cause:   cause,
		Details: map[string]string{"path": path},
		Suggestion: `pubsweep must be run inside a Dart or Flutter project.

  1. Check that you are in the project root (or a subdirectory of it)
  2. Pass the manifest explicitly: pubsweep --manifest path/to/pubspec.yaml`,
	}
}

// ManifestReadFailed creates an error for an unreadable manifest.
func ManifestReadFailed(path string, cause error) *SweepError {
	return &SweepError{
		Kind:    ErrManifest,
		Message: "failed to read pubspec.yaml",
		Cause:   cause,
		Details: map[string]string{"path": path},
	}
}

// ManifestParseFailed creates an error for a manifest whose dependency
// sections cannot be decoded.
func ManifestParseFailed(path string, cause error) *SweepError {
	return &SweepError{
		Kind:    ErrManifest,
		Message: "failed to parse pubspec.yaml",
		Cause:   cause,
		Details: map[string]string{"path": path},
		Suggestion: `The dependencies or dev_dependencies section could not be decoded.
Run "dart pub get" to confirm the file is valid YAML.`,
	}
}

// ManifestWriteFailed creates an error for a failed write-back after edits.
// The caller is expected to restore the backup when this occurs.
func ManifestWriteFailed(path string, cause error) *SweepError {
	return &SweepError{
		Kind:    ErrEdit,
		Message: "failed to write modified pubspec.yaml",
		Cause:   cause,
		Details: map[string]string{"path": path},
		Suggestion: `The manifest was restored from backup; no partial edit was left on disk.
Check file permissions and free disk space, then retry.`,
	}
}

// BackupFailed creates an error for a failed backup creation.
// Mutating commands abort before touching the manifest when this occurs.
func BackupFailed(path string, cause error) *SweepError {
	return &SweepError{
		Kind:    ErrBackup,
		Message: "failed to back up pubspec.yaml",
		Cause:   cause,
		Details: map[string]string{"path": path},
		Suggestion: "No changes were applied. Check write permissions in the manifest directory.",
	}
}

// RestoreFailed creates an error for a failed backup restoration.
func RestoreFailed(path string, cause error) *SweepError {
	return &SweepError{
		Kind:    ErrBackup,
		Message: "failed to restore pubspec.yaml from backup",
		Cause:   cause,
		Details: map[string]string{"backup": path},
		Suggestion: fmt.Sprintf("Restore manually: cp %s pubspec.yaml", path),
	}
}

// ScanFailed creates an error for a source-directory walk failure.
func ScanFailed(root string, cause error) *SweepError {
	return &SweepError{
		Kind:    ErrScan,
		Message: fmt.Sprintf("failed to scan %s", root),
		Cause:   cause,
		Details: map[string]string{"root": root},
	}
}
