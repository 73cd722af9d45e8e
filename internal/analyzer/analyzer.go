// Package analyzer classifies declared manifest dependencies against the
// source usage map and detects cross-section duplicates.
package analyzer

import (
	"sort"

	"github.com/fluttertools/pubsweep/internal/manifest"
	"github.com/fluttertools/pubsweep/internal/scanner"
)

// Status is the classification of one declared dependency.
type Status int

const (
	// StatusUsed means the dependency is correctly placed.
	StatusUsed Status = iota
	// StatusTestOnly means the dependency is declared in the wrong section:
	// a primary entry referenced only from test or tooling code, or a dev
	// entry referenced from library or executable code.
	StatusTestOnly
	// StatusUnused means no source file references the dependency.
	StatusUnused
)

// String returns the status label used in reports.
func (s Status) String() string {
	switch s {
	case StatusUsed:
		return "used"
	case StatusTestOnly:
		return "test-only"
	case StatusUnused:
		return "unused"
	default:
		return "unknown"
	}
}

// Info is the immutable classification result for one declared dependency.
// One instance is produced per declaration per analysis pass.
type Info struct {
	Name    string           `json:"name"`
	Version string           `json:"version"`
	Section manifest.Section `json:"-"`
	Status  Status           `json:"-"`

	// SectionName and StatusName are the JSON renderings of the above.
	SectionName string `json:"section"`
	StatusName  string `json:"status"`

	// Usage flags as observed by the scanner; all false when the package is
	// never referenced.
	InLib  bool `json:"in_lib"`
	InTest bool `json:"in_test"`
	InBin  bool `json:"in_bin"`
	InTool bool `json:"in_tool"`
}

// NeedsAction reports whether the declaration calls for a manifest edit:
// unused, or test-only while declared in the primary section. A test-only
// flag on a development-section entry is advisory only.
func (i Info) NeedsAction() bool {
	if i.Status == StatusUnused {
		return true
	}
	return i.Status == StatusTestOnly && i.Section == manifest.SectionPrimary
}

// Duplicate describes a package declared in both sections simultaneously.
type Duplicate struct {
	Name           string           `json:"name"`
	PrimaryVersion string           `json:"primary_version"`
	DevVersion     string           `json:"dev_version"`
	Recommended    manifest.Section `json:"-"`
	RecommendedKey string           `json:"recommended"`

	InLib  bool `json:"in_lib"`
	InTest bool `json:"in_test"`
	InBin  bool `json:"in_bin"`
	InTool bool `json:"in_tool"`
}

// Result is the outcome of one analysis pass.
type Result struct {
	Deps       []Info      `json:"dependencies"`
	Duplicates []Duplicate `json:"duplicates"`
}

// NeedsAction reports whether any dependency or duplicate calls for an edit.
func (r *Result) NeedsAction() bool {
	if len(r.Duplicates) > 0 {
		return true
	}
	for _, d := range r.Deps {
		if d.NeedsAction() {
			return true
		}
	}
	return false
}

// Analyzer classifies manifest declarations.
type Analyzer struct {
	// Exclude lists pseudo-packages skipped entirely (the flutter SDK
	// dependency is not a pub.dev package and must never be flagged).
	Exclude []string
}

// New creates an Analyzer with the given exclusion list.
func New(exclude []string) *Analyzer {
	return &Analyzer{Exclude: exclude}
}

// Analyze combines the declared dependency sets with the usage map.
// Results are ordered by section then name, so repeated runs over an
// unmodified project yield identical output.
func (a *Analyzer) Analyze(m *manifest.Manifest, usage map[string]*scanner.Usage) *Result {
	result := &Result{}

	for _, dep := range m.Primary {
		if a.excluded(dep.Name) {
			continue
		}
		result.Deps = append(result.Deps, a.classify(dep, usage[dep.Name]))
	}
	for _, dep := range m.Dev {
		if a.excluded(dep.Name) {
			continue
		}
		result.Deps = append(result.Deps, a.classify(dep, usage[dep.Name]))
	}

	sort.Slice(result.Deps, func(i, j int) bool {
		if result.Deps[i].Section != result.Deps[j].Section {
			return result.Deps[i].Section < result.Deps[j].Section
		}
		return result.Deps[i].Name < result.Deps[j].Name
	})

	result.Duplicates = a.findDuplicates(m, usage)

	return result
}

// classify assigns a status to one declaration.
//
// Primary section: unused when no usage record exists; used when referenced
// from library or executable code; test-only otherwise.
//
// Development section: never unused, since tooling packages that are not
// imported anywhere are expected there. A dev entry is flagged
// test-only (meaning it should move to primary) only when library or
// executable code references it.
func (a *Analyzer) classify(dep manifest.Dependency, u *scanner.Usage) Info {
	info := Info{
		Name:        dep.Name,
		Version:     dep.Spec.Describe(),
		Section:     dep.Section,
		SectionName: dep.Section.String(),
	}
	if u != nil {
		info.InLib = u.InLib
		info.InTest = u.InTest
		info.InBin = u.InBin
		info.InTool = u.InTool
	}

	runtimeUse := info.InLib || info.InBin

	if dep.Section == manifest.SectionPrimary {
		switch {
		case u == nil || !u.IsUsed():
			info.Status = StatusUnused
		case runtimeUse:
			info.Status = StatusUsed
		default:
			info.Status = StatusTestOnly
		}
	} else {
		if runtimeUse {
			info.Status = StatusTestOnly
		} else {
			info.Status = StatusUsed
		}
	}

	info.StatusName = info.Status.String()
	return info
}

// findDuplicates produces exactly one record per name present in both
// sections. The primary section is recommended only when library code uses
// the package; everything else, including the unused case, recommends the
// development section as the safer default.
func (a *Analyzer) findDuplicates(m *manifest.Manifest, usage map[string]*scanner.Usage) []Duplicate {
	var dups []Duplicate

	for _, dep := range m.Primary {
		if a.excluded(dep.Name) {
			continue
		}
		devDep := m.Find(dep.Name, manifest.SectionDev)
		if devDep == nil {
			continue
		}

		dup := Duplicate{
			Name:           dep.Name,
			PrimaryVersion: dep.Spec.Describe(),
			DevVersion:     devDep.Spec.Describe(),
			Recommended:    manifest.SectionDev,
		}
		if u := usage[dep.Name]; u != nil {
			dup.InLib = u.InLib
			dup.InTest = u.InTest
			dup.InBin = u.InBin
			dup.InTool = u.InTool
			if u.InLib {
				dup.Recommended = manifest.SectionPrimary
			}
		}
		dup.RecommendedKey = dup.Recommended.String()
		dups = append(dups, dup)
	}

	sort.Slice(dups, func(i, j int) bool { return dups[i].Name < dups[j].Name })
	return dups
}

// excluded reports whether a name is on the exclusion list.
func (a *Analyzer) excluded(name string) bool {
	for _, ex := range a.Exclude {
		if ex == name {
			return true
		}
	}
	return false
}
