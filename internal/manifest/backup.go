package manifest

import (
	"io"
	"os"

	"github.com/fluttertools/pubsweep/internal/logging"
)

// Backup copies the manifest aside before an edit batch and restores it if
// the write-back fails. Both operations signal success as a boolean: a
// failed backup aborts the mutation before any line is touched, and a failed
// restore is reported to the user rather than retried.
type Backup struct {
	// ManifestPath is the file being protected.
	ManifestPath string
	// Suffix is appended to the manifest path for the backup copy.
	Suffix string
}

// NewBackup creates a backup handle for the given manifest.
func NewBackup(manifestPath, suffix string) *Backup {
	return &Backup{ManifestPath: manifestPath, Suffix: suffix}
}

// Path returns the backup file location.
func (b *Backup) Path() string {
	return b.ManifestPath + b.Suffix
}

// Create copies the current manifest to the backup path. Must succeed before
// any editor batch runs.
func (b *Backup) Create() bool {
	if err := copyFile(b.ManifestPath, b.Path()); err != nil {
		logging.Error("backup creation failed", "manifest", b.ManifestPath, "backup", b.Path(), "error", err)
		return false
	}
	logging.Debug("backup created", "backup", b.Path())
	return true
}

// Restore copies the backup over the manifest, restoring the original text
// exactly.
func (b *Backup) Restore() bool {
	if err := copyFile(b.Path(), b.ManifestPath); err != nil {
		logging.Error("backup restore failed", "manifest", b.ManifestPath, "backup", b.Path(), "error", err)
		return false
	}
	logging.Info("manifest restored from backup", "backup", b.Path())
	return true
}

// Remove deletes the backup file after a successful edit batch.
func (b *Backup) Remove() {
	if err := os.Remove(b.Path()); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove backup file", "backup", b.Path(), "error", err)
	}
}

// copyFile copies src to dst, preserving the source's permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
