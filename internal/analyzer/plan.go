package analyzer

import (
	"github.com/fluttertools/pubsweep/internal/manifest"
)

// PlanOptions selects which classes of findings are turned into edits.
// The zero value plans nothing; callers enable exactly what the user asked
// for on the command line.
type PlanOptions struct {
	// RemoveUnused plans deletion of unused primary-section entries.
	RemoveUnused bool
	// MoveMisplaced plans moving test-only primary entries to the
	// development section, and runtime-used development entries to the
	// primary section.
	MoveMisplaced bool
	// ResolveDuplicates plans removal of the non-recommended copy of every
	// duplicated declaration.
	ResolveDuplicates bool
}

// PlanAll enables every change class.
func PlanAll() PlanOptions {
	return PlanOptions{RemoveUnused: true, MoveMisplaced: true, ResolveDuplicates: true}
}

// Plan derives the edit batch for a result. Names declared in both sections
// get exactly one change, the duplicate resolution; their per-section
// classifications are never planned, because a bare removal after the
// duplicate copy is gone would delete the surviving declaration too. Within
// each class, changes follow the result's section-then-name ordering, which
// keeps plans deterministic.
func Plan(result *Result, opts PlanOptions) []manifest.Change {
	var changes []manifest.Change

	duplicated := make(map[string]bool, len(result.Duplicates))
	for _, dup := range result.Duplicates {
		duplicated[dup.Name] = true
		if !opts.ResolveDuplicates {
			continue
		}
		kind := manifest.ChangeRemoveFromDev
		if dup.Recommended == manifest.SectionDev {
			kind = manifest.ChangeRemoveFromPrimary
		}
		changes = append(changes, manifest.Change{Kind: kind, Name: dup.Name})
	}

	for _, dep := range result.Deps {
		if duplicated[dep.Name] {
			continue
		}
		switch {
		case dep.Status == StatusUnused && dep.Section == manifest.SectionPrimary:
			if opts.RemoveUnused {
				changes = append(changes, manifest.Change{Kind: manifest.ChangeRemove, Name: dep.Name})
			}
		case dep.Status == StatusTestOnly && dep.Section == manifest.SectionPrimary:
			if opts.MoveMisplaced {
				changes = append(changes, manifest.Change{Kind: manifest.ChangeMoveToDev, Name: dep.Name})
			}
		case dep.Status == StatusTestOnly && dep.Section == manifest.SectionDev:
			if opts.MoveMisplaced {
				changes = append(changes, manifest.Change{Kind: manifest.ChangeMoveToPrimary, Name: dep.Name})
			}
		}
	}

	return changes
}
