// Package manifest provides the pubspec.yaml model and the
// structure-preserving editor that rewrites it in place.
//
// The manifest is deliberately NOT modeled as a full YAML document: a
// parse/serialize round trip would lose comments and reformat untouched
// entries. Declared dependencies are decoded read-only with yaml.v3, while
// all mutation happens on the raw line buffer.
package manifest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	swerr "github.com/fluttertools/pubsweep/internal/errors"
)

// Section identifies which dependency section a declaration lives in.
type Section int

const (
	// SectionPrimary is the runtime dependencies section.
	SectionPrimary Section = iota
	// SectionDev is the development dependencies section.
	SectionDev
)

// String returns a human-readable section label.
func (s Section) String() string {
	if s == SectionDev {
		return "dev_dependencies"
	}
	return "dependencies"
}

// SpecKind distinguishes simple version constraints from nested mappings.
type SpecKind int

const (
	// SpecSimple is a plain version constraint string (e.g. "^5.0.0").
	SpecSimple SpecKind = iota
	// SpecStructured is a nested mapping (git, path, hosted, or sdk
	// reference) that renders as multiple manifest lines.
	SpecStructured
	// SpecEmpty is a declaration with no value at all ("any" semantics).
	SpecEmpty
)

// Spec is a declared dependency value. The tagged variant is informational
// for callers; the editor operates purely on raw line text and indentation
// regardless of which kind a declaration is.
type Spec struct {
	Kind SpecKind
	// Version is the constraint string for SpecSimple, empty otherwise.
	Version string
	// Keys are the top-level mapping keys for SpecStructured (e.g. "git").
	Keys []string
	// summary is a one-line rendering of a structured value.
	summary string
}

// Describe returns a one-line rendering of the spec for reports.
func (s Spec) Describe() string {
	switch s.Kind {
	case SpecSimple:
		return s.Version
	case SpecStructured:
		return s.summary
	default:
		return "any"
	}
}

// Dependency is a read-only view over one declared manifest entry.
type Dependency struct {
	Name    string
	Spec    Spec
	Section Section
}

// Manifest is a loaded pubspec.yaml: its raw line buffer plus the decoded
// top-level declarations of both dependency sections.
type Manifest struct {
	// Path is the manifest location on disk.
	Path string
	// PrimaryKey and DevKey are the section header names.
	PrimaryKey string
	DevKey     string
	// Name is the declared project name, if any.
	Name string
	// Primary and Dev hold the declared dependencies in file order.
	Primary []Dependency
	Dev     []Dependency

	lines    []string
	trailing bool // original content ended with a newline
}

// Load reads and parses the manifest at path. A missing manifest is a fatal
// error for the analysis pass and is propagated, not swallowed.
func Load(path, primaryKey, devKey string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swerr.ManifestNotFound(path, err)
		}
		return nil, swerr.ManifestReadFailed(path, err)
	}
	return Parse(data, path, primaryKey, devKey)
}

// Parse builds a Manifest from raw content.
func Parse(data []byte, path, primaryKey, devKey string) (*Manifest, error) {
	m := &Manifest{
		Path:       path,
		PrimaryKey: primaryKey,
		DevKey:     devKey,
	}

	raw := string(data)
	if strings.HasSuffix(raw, "\n") {
		m.trailing = true
		raw = strings.TrimSuffix(raw, "\n")
	}
	m.lines = strings.Split(raw, "\n")

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, swerr.ManifestParseFailed(path, err)
	}

	root := documentRoot(&doc)
	if root != nil {
		if nameNode := mappingValue(root, "name"); nameNode != nil && nameNode.Kind == yaml.ScalarNode {
			m.Name = nameNode.Value
		}
		m.Primary = decodeSection(mappingValue(root, primaryKey), SectionPrimary)
		m.Dev = decodeSection(mappingValue(root, devKey), SectionDev)
	}

	return m, nil
}

// Lines returns a copy of the raw line buffer.
func (m *Manifest) Lines() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

// Content reassembles the raw text, byte-identical to what was loaded.
func (m *Manifest) Content() string {
	s := strings.Join(m.lines, "\n")
	if m.trailing {
		s += "\n"
	}
	return s
}

// WriteBack writes a mutated line buffer to the manifest path. On failure
// the caller is expected to restore the backup; WriteBack does not retry.
func (m *Manifest) WriteBack(lines []string) error {
	s := strings.Join(lines, "\n")
	if m.trailing {
		s += "\n"
	}
	if err := os.WriteFile(m.Path, []byte(s), 0644); err != nil {
		return swerr.ManifestWriteFailed(m.Path, err)
	}
	m.lines = append(m.lines[:0], lines...)
	return nil
}

// Find returns the declared dependency with the given name in the given
// section, or nil.
func (m *Manifest) Find(name string, section Section) *Dependency {
	deps := m.Primary
	if section == SectionDev {
		deps = m.Dev
	}
	for i := range deps {
		if deps[i].Name == name {
			return &deps[i]
		}
	}
	return nil
}

// documentRoot unwraps the document node down to the top-level mapping.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil
	}
	return doc
}

// mappingValue returns the value node for a key of a mapping node, or nil.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// decodeSection converts a section's mapping node into dependencies in file
// order. Values are tolerant of any structure: scalars become simple specs,
// mappings become structured specs, anything else is treated as empty.
func decodeSection(node *yaml.Node, section Section) []Dependency {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	deps := make([]Dependency, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		deps = append(deps, Dependency{
			Name:    name,
			Spec:    decodeSpec(node.Content[i+1]),
			Section: section,
		})
	}
	return deps
}

// decodeSpec classifies a single declared value.
func decodeSpec(node *yaml.Node) Spec {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			return Spec{Kind: SpecEmpty}
		}
		return Spec{Kind: SpecSimple, Version: node.Value}
	case yaml.MappingNode:
		keys := make([]string, 0, len(node.Content)/2)
		parts := make([]string, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			keys = append(keys, key)
			value := node.Content[i+1]
			if value.Kind == yaml.ScalarNode && value.Value != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", key, value.Value))
			} else {
				parts = append(parts, key)
			}
		}
		return Spec{
			Kind:    SpecStructured,
			Keys:    keys,
			summary: strings.Join(parts, ", "),
		}
	default:
		return Spec{Kind: SpecEmpty}
	}
}

// SortedNames returns the names declared in a section, sorted. Used for
// deterministic report ordering.
func SortedNames(deps []Dependency) []string {
	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.Name
	}
	sort.Strings(names)
	return names
}
