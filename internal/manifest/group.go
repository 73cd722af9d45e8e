package manifest

import (
	"sort"
	"strings"
)

// GroupSection rewrites one dependency section so that entries are grouped
// under "# <Category>" comment headers, sorted by name within each group.
// categories maps package name to its primary category; names missing from
// the map fall into fallback.
//
// The rewrite reuses the editor's block-extent detection, so declarations
// with nested structure (git, path, hosted) keep every line of their
// mapping. Existing comment lines inside the section are treated as stale
// group headers and dropped, which makes repeated grouping idempotent.
// Lines outside the section are untouched.
func (e *Editor) GroupSection(key string, categories map[string]string, fallback string) bool {
	sec := e.sections[key]
	if sec == nil {
		return false
	}
	indent := topLevelIndent(e.lines, sec)
	if indent <= 0 {
		return false
	}

	type entry struct {
		name  string
		block []string
	}
	groups := make(map[string][]entry)

	for i := sec.Start + 1; i <= sec.End; i++ {
		line := e.lines[i]
		if isBlank(line) || isComment(line) || indentOf(line) != indent {
			continue
		}
		end := e.blockExtent(i, sec.End)
		name := entryName(line)
		cat := categories[name]
		if cat == "" {
			cat = fallback
		}
		groups[cat] = append(groups[cat], entry{
			name:  name,
			block: append([]string(nil), e.lines[i:end+1]...),
		})
		i = end
	}

	if len(groups) == 0 {
		return false
	}

	// Preserve the blank separator lines at the end of the section's extent.
	trailing := 0
	for i := sec.End; i > sec.Start && isBlank(e.lines[i]); i-- {
		trailing++
	}

	names := make([]string, 0, len(groups))
	for cat := range groups {
		names = append(names, cat)
	}
	sort.Strings(names)

	prefix := strings.Repeat(" ", indent)
	body := make([]string, 0, sec.End-sec.Start)
	for gi, cat := range names {
		if gi > 0 {
			body = append(body, "")
		}
		body = append(body, prefix+"# "+cat)
		entries := groups[cat]
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
		for _, en := range entries {
			body = append(body, en.block...)
		}
	}
	for i := 0; i < trailing; i++ {
		body = append(body, "")
	}

	oldLen := sec.End - sec.Start
	tail := append([]string(nil), e.lines[sec.End+1:]...)
	e.lines = append(e.lines[:sec.Start+1], append(body, tail...)...)
	sec.End = sec.Start + len(body)
	e.shiftOthers(sec, sec.Start+1, len(body)-oldLen)

	return true
}
