package manifest

import (
	"strings"

	"github.com/fluttertools/pubsweep/internal/logging"
)

// ChangeKind is the kind of edit to apply to the manifest.
type ChangeKind int

const (
	// ChangeRemove deletes a declaration from whichever section holds it.
	ChangeRemove ChangeKind = iota
	// ChangeMoveToDev moves a declaration from the primary section to the
	// development section.
	ChangeMoveToDev
	// ChangeMoveToPrimary moves a declaration from the development section
	// to the primary section.
	ChangeMoveToPrimary
	// ChangeRemoveFromPrimary deletes a declaration from the primary
	// section only.
	ChangeRemoveFromPrimary
	// ChangeRemoveFromDev deletes a declaration from the development
	// section only.
	ChangeRemoveFromDev
)

// String returns a human-readable description of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeRemove:
		return "remove"
	case ChangeMoveToDev:
		return "move to dev_dependencies"
	case ChangeMoveToPrimary:
		return "move to dependencies"
	case ChangeRemoveFromPrimary:
		return "remove from dependencies"
	case ChangeRemoveFromDev:
		return "remove from dev_dependencies"
	default:
		return "unknown"
	}
}

// Change is one intended manifest edit. Changes are produced by the caller
// from classification results and consumed once, in list order.
type Change struct {
	Kind ChangeKind
	Name string
}

// Editor applies a batch of changes to the manifest's raw line buffer while
// preserving every byte outside the lines actually touched. It tracks live
// section extents and keeps them correct across destructive edits.
//
// The editor is strictly sequential: each change completes, including any
// section-creation side effect, before the next is attempted.
type Editor struct {
	lines      []string
	primaryKey string
	devKey     string
	sections   map[string]*SectionInfo
}

// NewEditor creates an editor over a copy of the given line buffer.
func NewEditor(lines []string, primaryKey, devKey string) *Editor {
	e := &Editor{
		lines:      append([]string(nil), lines...),
		primaryKey: primaryKey,
		devKey:     devKey,
		sections:   make(map[string]*SectionInfo, 2),
	}
	e.rederive()
	return e
}

// Lines returns a copy of the current line buffer.
func (e *Editor) Lines() []string {
	return append([]string(nil), e.lines...)
}

// Section returns a copy of the tracked extent for a section header name.
func (e *Editor) Section(key string) (SectionInfo, bool) {
	sec := e.sections[key]
	if sec == nil {
		return SectionInfo{}, false
	}
	return *sec, true
}

// Apply applies changes strictly in the order supplied. Every operation
// re-reads current section state, because a prior operation may have shifted
// or created sections. A change whose target cannot be located is a silent
// no-op. Returns the number of changes that took effect.
func (e *Editor) Apply(changes []Change) int {
	applied := 0
	for _, ch := range changes {
		var ok bool
		switch ch.Kind {
		case ChangeRemove:
			ok = e.Remove(ch.Name)
		case ChangeMoveToDev:
			ok = e.Move(ch.Name, e.primaryKey, e.devKey)
		case ChangeMoveToPrimary:
			ok = e.Move(ch.Name, e.devKey, e.primaryKey)
		case ChangeRemoveFromPrimary:
			ok = e.RemoveFrom(ch.Name, e.primaryKey)
		case ChangeRemoveFromDev:
			ok = e.RemoveFrom(ch.Name, e.devKey)
		}
		if ok {
			applied++
		} else {
			logging.Debug("change target not found, skipping", "change", ch.Kind.String(), "package", ch.Name)
		}
	}
	return applied
}

// Remove deletes the block declaring name from whichever of the two sections
// contains it, attempting the primary section first.
func (e *Editor) Remove(name string) bool {
	if e.RemoveFrom(name, e.primaryKey) {
		return true
	}
	return e.RemoveFrom(name, e.devKey)
}

// RemoveFrom deletes the block declaring name from one specific section.
// Returns false when the section or the declaration does not exist.
func (e *Editor) RemoveFrom(name, key string) bool {
	sec := e.sections[key]
	if sec == nil {
		return false
	}
	start := e.findDeclaration(sec, name)
	if start < 0 {
		return false
	}
	end := e.blockExtent(start, sec.End)
	e.deleteRange(sec, start, end)
	return true
}

// Move extracts the block declaring name from fromKey and re-inserts it into
// toKey in sorted position, creating the target section when absent.
func (e *Editor) Move(name, fromKey, toKey string) bool {
	fromSec := e.sections[fromKey]
	if fromSec == nil {
		return false
	}
	start := e.findDeclaration(fromSec, name)
	if start < 0 {
		return false
	}
	end := e.blockExtent(start, fromSec.End)

	block := append([]string(nil), e.lines[start:end+1]...)
	e.deleteRange(fromSec, start, end)

	toSec := e.sections[toKey]
	if toSec == nil {
		toSec = e.createSection(toKey, fromSec)
	}

	at := e.insertionIndex(toSec, name)
	e.insertAt(toSec, at, block)
	return true
}

// rederive recomputes both tracked section extents from the live buffer.
// Used at construction and after any operation whose effects on line
// positions are not worth tracking incrementally (section creation).
func (e *Editor) rederive() {
	e.sections[e.primaryKey] = FindSection(e.lines, e.primaryKey)
	e.sections[e.devKey] = FindSection(e.lines, e.devKey)
}

// findDeclaration locates the line declaring name among a section's
// top-level entries. Nested mapping keys are ignored via the indentation
// filter: a dependency named "path" must not match the "path:" key inside
// another dependency's git block.
func (e *Editor) findDeclaration(sec *SectionInfo, name string) int {
	indent := topLevelIndent(e.lines, sec)
	if indent <= 0 {
		return -1
	}
	for i := sec.Start + 1; i <= sec.End; i++ {
		line := e.lines[i]
		if isBlank(line) || isComment(line) || indentOf(line) != indent {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, ":") {
			continue
		}
		if declaresName(trimmed, name) {
			return i
		}
	}
	return -1
}

// blockExtent returns the last line index of the declaration block starting
// at start, bounded by limit. The block includes every immediately following
// line indented strictly deeper than the declaration. A blank line is
// swallowed only while a later non-blank line within the extent is still
// deeper than the declaration; a trailing blank separator is never taken.
func (e *Editor) blockExtent(start, limit int) int {
	base := indentOf(e.lines[start])
	end := start

	i := start + 1
	for i <= limit {
		line := e.lines[i]
		if isBlank(line) {
			j := i + 1
			deeper := false
			for j <= limit {
				if isBlank(e.lines[j]) {
					j++
					continue
				}
				deeper = indentOf(e.lines[j]) > base
				break
			}
			if !deeper {
				break
			}
			i++
			continue
		}
		if indentOf(line) <= base {
			break
		}
		end = i
		i++
	}

	return end
}

// deleteRange removes lines[from..to] (all inside sec), in reverse order to
// avoid index invalidation mid-deletion, and shifts the bookkeeping of every
// section physically after the mutation point by the exact delta.
func (e *Editor) deleteRange(sec *SectionInfo, from, to int) {
	n := to - from + 1
	for i := to; i >= from; i-- {
		e.lines = append(e.lines[:i], e.lines[i+1:]...)
	}
	sec.End -= n
	e.shiftOthers(sec, from, -n)
}

// insertAt inserts block before index at (inside sec) and adjusts tracking.
func (e *Editor) insertAt(sec *SectionInfo, at int, block []string) {
	n := len(block)
	tail := append([]string(nil), e.lines[at:]...)
	e.lines = append(e.lines[:at], append(block, tail...)...)
	sec.End += n
	e.shiftOthers(sec, at, n)
}

// shiftOthers moves every tracked section other than changed whose start
// lies at or after the mutation point.
func (e *Editor) shiftOthers(changed *SectionInfo, at, delta int) {
	for _, s := range e.sections {
		if s == nil || s == changed {
			continue
		}
		if s.Start >= at {
			s.Start += delta
			s.End += delta
		}
	}
}

// createSection inserts a blank separator and a new zero-indentation header
// immediately after the given section (or at end of file when there is no
// anchor), then re-derives all section extents from scratch: incremental
// arithmetic is not trusted across a section-creation boundary.
func (e *Editor) createSection(key string, after *SectionInfo) *SectionInfo {
	at := len(e.lines)
	if after != nil {
		at = after.End + 1
	}
	tail := append([]string(nil), e.lines[at:]...)
	e.lines = append(e.lines[:at], append([]string{"", key + ":"}, tail...)...)
	e.rederive()
	return e.sections[key]
}

// insertionIndex finds where a block for name belongs inside sec: before the
// first top-level entry whose name sorts after it, otherwise immediately
// after the last entry's block (or right after the header when the section
// is empty). Nested lines are skipped via the indentation filter.
func (e *Editor) insertionIndex(sec *SectionInfo, name string) int {
	indent := topLevelIndent(e.lines, sec)
	lastEnd := sec.Start

	if indent > 0 {
		for i := sec.Start + 1; i <= sec.End; i++ {
			line := e.lines[i]
			if isBlank(line) || isComment(line) || indentOf(line) != indent {
				continue
			}
			if entryName(line) > name {
				return i
			}
			lastEnd = e.blockExtent(i, sec.End)
			i = lastEnd
		}
	}

	return lastEnd + 1
}
