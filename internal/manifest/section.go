package manifest

import (
	"strings"
)

// SectionInfo is a live pointer into the editor's line buffer. Start is the
// header line index and End the last line index belonging to the section,
// inclusive. The editor adjusts both in place after every mutation so that
// they always match the current buffer.
type SectionInfo struct {
	Name  string
	Start int
	End   int
}

// indentOf returns the number of leading space characters of a line.
// pubspec.yaml is space-indented; a tab would be a YAML error anyway.
func indentOf(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' {
			return i
		}
	}
	return len(line)
}

// isBlank reports whether a line is empty or whitespace-only.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isComment reports whether a line is a YAML comment.
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// isSectionHeader reports whether a line opens a top-level section: zero
// indentation and, after trimming, text ending in ":". Comments and blank
// lines never qualify.
func isSectionHeader(line string) bool {
	if isBlank(line) || isComment(line) || indentOf(line) != 0 {
		return false
	}
	return strings.HasSuffix(strings.TrimSpace(line), ":")
}

// FindSection locates a named section in a line buffer. The section's extent
// runs from its header to the line immediately before the next section
// header, or to end of file. Returns nil when the section does not exist.
func FindSection(lines []string, name string) *SectionInfo {
	header := name + ":"

	for i, line := range lines {
		if indentOf(line) != 0 || strings.TrimSpace(line) != header {
			continue
		}

		end := len(lines) - 1
		for j := i + 1; j < len(lines); j++ {
			if isSectionHeader(lines[j]) {
				end = j - 1
				break
			}
		}

		return &SectionInfo{Name: name, Start: i, End: end}
	}

	return nil
}

// topLevelIndent returns the indentation of the section's direct entries:
// the minimum indentation over its non-blank, non-comment lines. Returns -1
// for a section with no entries.
func topLevelIndent(lines []string, sec *SectionInfo) int {
	indent := -1
	for i := sec.Start + 1; i <= sec.End && i < len(lines); i++ {
		line := lines[i]
		if isBlank(line) || isComment(line) {
			continue
		}
		if w := indentOf(line); indent == -1 || w < indent {
			indent = w
		}
	}
	return indent
}

// declaresName reports whether a trimmed declaration line declares the given
// package: "<name>:" exactly, or "<name>:" followed by whitespace and a
// value. A bare prefix match is not enough ("dio_web:" must not match "dio").
func declaresName(trimmed, name string) bool {
	prefix := name + ":"
	if !strings.HasPrefix(trimmed, prefix) {
		return false
	}
	rest := trimmed[len(prefix):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// entryName extracts the declared package name from a top-level entry line.
func entryName(line string) string {
	trimmed := strings.TrimSpace(line)
	if idx := strings.Index(trimmed, ":"); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}
