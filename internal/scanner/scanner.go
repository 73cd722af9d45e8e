// Package scanner walks a project's source roots and records which packages
// are imported where. The result is a usage map keyed by package name, with
// one flag per source role (library, test, executable, tooling).
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fluttertools/pubsweep/internal/config"
	"github.com/fluttertools/pubsweep/internal/logging"
)

// DefaultImportPattern matches Dart package imports of the form
// "import 'package:name/...'". The single capture group is the package name;
// it stops at the first path separator or quote.
const DefaultImportPattern = `import\s+['"]package:([^/'"]+)`

// Role identifies which source root a reference was found in.
type Role int

const (
	// RoleLib is the library source root (lib/).
	RoleLib Role = iota
	// RoleTest is the test source root (test/).
	RoleTest
	// RoleBin is the executable source root (bin/).
	RoleBin
	// RoleTool is the tooling source root (tool/).
	RoleTool
	// RoleOther is any extra configured directory. References found there
	// are recorded but never count toward usage.
	RoleOther
)

// String returns the role's directory label.
func (r Role) String() string {
	switch r {
	case RoleLib:
		return "lib"
	case RoleTest:
		return "test"
	case RoleBin:
		return "bin"
	case RoleTool:
		return "tool"
	default:
		return "other"
	}
}

// Usage accumulates where a single package is referenced. One instance exists
// per distinct referenced package name; flags are OR'd, so importing the same
// package many times is idempotent.
type Usage struct {
	Name    string `json:"name"`
	InLib   bool   `json:"in_lib"`
	InTest  bool   `json:"in_test"`
	InBin   bool   `json:"in_bin"`
	InTool  bool   `json:"in_tool"`
	InOther bool   `json:"in_other,omitempty"`
}

// IsUsed reports whether the package is referenced in any recognized source
// role. References in extra directories (InOther) do not count.
func (u *Usage) IsUsed() bool {
	return u.InLib || u.InTest || u.InBin || u.InTool
}

// mark sets the flag for the given role.
func (u *Usage) mark(role Role) {
	switch role {
	case RoleLib:
		u.InLib = true
	case RoleTest:
		u.InTest = true
	case RoleBin:
		u.InBin = true
	case RoleTool:
		u.InTool = true
	case RoleOther:
		u.InOther = true
	}
}

// Scanner extracts package references from source files.
type Scanner struct {
	// LibDir, TestDir, BinDir, ToolDir are the recognized source roots,
	// relative to the project directory.
	LibDir  string
	TestDir string
	BinDir  string
	ToolDir string
	// ExtraDirs are additional directories to scan without assigning a role.
	ExtraDirs []string
	// Extension filters scanned files (e.g. ".dart").
	Extension string
	// Pattern is the compiled import pattern with one capture group.
	Pattern *regexp.Regexp
}

// New creates a Scanner from scan configuration, using the default import
// pattern.
func New(cfg config.ScanConfig) *Scanner {
	return &Scanner{
		LibDir:    cfg.LibDir,
		TestDir:   cfg.TestDir,
		BinDir:    cfg.BinDir,
		ToolDir:   cfg.ToolDir,
		ExtraDirs: cfg.Extra,
		Extension: cfg.Extension,
		Pattern:   regexp.MustCompile(DefaultImportPattern),
	}
}

// Scan walks all configured roots under projectDir and returns the usage map.
// Nonexistent roots are skipped without error. Unreadable files are logged
// and skipped; the walk continues. Scanning performs read-only I/O only.
func (s *Scanner) Scan(projectDir string) (map[string]*Usage, error) {
	usage := make(map[string]*Usage)

	roots := []struct {
		dir  string
		role Role
	}{
		{s.LibDir, RoleLib},
		{s.TestDir, RoleTest},
		{s.BinDir, RoleBin},
		{s.ToolDir, RoleTool},
	}
	for _, extra := range s.ExtraDirs {
		roots = append(roots, struct {
			dir  string
			role Role
		}{extra, RoleOther})
	}

	for _, root := range roots {
		if root.dir == "" {
			continue
		}
		if err := s.scanRoot(filepath.Join(projectDir, root.dir), root.role, usage); err != nil {
			return nil, err
		}
	}

	return usage, nil
}

// scanRoot walks one source root, marking the given role for every package
// referenced by a matching file.
func (s *Scanner) scanRoot(root string, role Role, usage map[string]*Usage) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		logging.Debug("source root does not exist, skipping", "root", root)
		return nil
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries fail only themselves, never the whole walk.
			logging.Warn("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if s.Extension != "" && !strings.HasSuffix(d.Name(), s.Extension) {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			logging.Warn("skipping unreadable file", "path", path, "error", readErr)
			return nil
		}

		s.scanContent(string(data), path, role, usage)
		return nil
	})
}

// scanContent records every package referenced by one file's content.
func (s *Scanner) scanContent(content, path string, role Role, usage map[string]*Usage) {
	matches := s.Pattern.FindAllStringSubmatch(content, -1)
	for _, match := range matches {
		if len(match) < 2 {
			continue
		}
		name := match[1]
		u, ok := usage[name]
		if !ok {
			u = &Usage{Name: name}
			usage[name] = u
		}
		u.mark(role)
		if role == RoleOther {
			logging.Debug("reference outside recognized roots recorded without a usage role",
				"package", name, "path", path)
		}
	}
}
