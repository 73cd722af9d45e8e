// Package tui renders analysis results and interactive prompts.
package tui

import (
	"fmt"
	"strings"

	"github.com/fluttertools/pubsweep/internal/analyzer"
	"github.com/fluttertools/pubsweep/internal/manifest"
	"github.com/fluttertools/pubsweep/internal/tui/styles"
)

// Report renders an analysis result for the terminal.
type Report struct {
	// Color disables styling when false, for plain output and pipes.
	Color bool
}

// NewReport creates a report renderer.
func NewReport(color bool) *Report {
	return &Report{Color: color}
}

// Render produces the full report: project header, one block per manifest
// section, duplicate warnings, and a closing summary.
func (r *Report) Render(projectName string, result *analyzer.Result) string {
	var b strings.Builder

	b.WriteString(r.title("pubsweep · " + projectName))
	b.WriteString("\n\n")

	r.renderSection(&b, "dependencies", manifest.SectionPrimary, result)
	r.renderSection(&b, "dev_dependencies", manifest.SectionDev, result)

	if len(result.Duplicates) > 0 {
		b.WriteString(r.sectionTitle("duplicates"))
		b.WriteString("\n")
		for _, dup := range result.Duplicates {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				r.icon(styles.StatusDuplicate, "!"),
				r.pkg(dup.Name),
				r.muted(fmt.Sprintf("declared in both sections, keep in %s", dup.RecommendedKey)),
			))
		}
		b.WriteString("\n")
	}

	b.WriteString(r.summary(result))
	return b.String()
}

func (r *Report) renderSection(b *strings.Builder, heading string, section manifest.Section, result *analyzer.Result) {
	var deps []analyzer.Info
	for _, dep := range result.Deps {
		if dep.Section == section {
			deps = append(deps, dep)
		}
	}
	if len(deps) == 0 {
		return
	}

	b.WriteString(r.sectionTitle(heading))
	b.WriteString("\n")
	for _, dep := range deps {
		b.WriteString(fmt.Sprintf("  %s %s %s%s\n",
			r.statusIcon(dep.Status),
			r.pkg(dep.Name),
			r.muted(dep.Version),
			r.annotation(dep),
		))
	}
	b.WriteString("\n")
}

// annotation explains non-clean statuses in a trailing note.
func (r *Report) annotation(dep analyzer.Info) string {
	switch {
	case dep.Status == analyzer.StatusUnused:
		return "  " + r.errText("unused")
	case dep.Status == analyzer.StatusTestOnly && dep.Section == manifest.SectionPrimary:
		return "  " + r.warnText("only used in tests, move to dev_dependencies")
	case dep.Status == analyzer.StatusTestOnly && dep.Section == manifest.SectionDev:
		return "  " + r.warnText("used in lib/bin, move to dependencies")
	default:
		return ""
	}
}

func (r *Report) summary(result *analyzer.Result) string {
	var unused, misplaced int
	for _, dep := range result.Deps {
		switch {
		case dep.Status == analyzer.StatusUnused:
			unused++
		case dep.Status == analyzer.StatusTestOnly:
			misplaced++
		}
	}

	var line string
	if !result.NeedsAction() {
		line = r.okText("✓ pubspec.yaml is clean")
	} else {
		parts := []string{}
		if unused > 0 {
			parts = append(parts, fmt.Sprintf("%d unused", unused))
		}
		if misplaced > 0 {
			parts = append(parts, fmt.Sprintf("%d misplaced", misplaced))
		}
		if n := len(result.Duplicates); n > 0 {
			parts = append(parts, fmt.Sprintf("%d duplicated", n))
		}
		line = strings.Join(parts, ", ") + "  " + r.muted("run `pubsweep clean` to fix")
	}

	if !r.Color {
		return line + "\n"
	}
	return styles.SummaryBoxStyle.Render(line) + "\n"
}

func (r *Report) statusIcon(s analyzer.Status) string {
	switch s {
	case analyzer.StatusUnused:
		return r.icon(styles.StatusUnused, "x")
	case analyzer.StatusTestOnly:
		return r.icon(styles.StatusTestOnly, "~")
	default:
		return r.icon(styles.StatusUsed, "+")
	}
}

func (r *Report) icon(styled, plain string) string {
	if r.Color {
		return styled
	}
	return plain
}

func (r *Report) title(s string) string {
	if r.Color {
		return styles.TitleStyle.Render(s)
	}
	return s
}

func (r *Report) sectionTitle(s string) string {
	if r.Color {
		return styles.SectionTitleStyle.Render(s)
	}
	return s
}

func (r *Report) pkg(s string) string {
	if r.Color {
		return styles.PackageNameStyle.Render(s)
	}
	return s
}

func (r *Report) muted(s string) string {
	if s == "" {
		return ""
	}
	if r.Color {
		return styles.MutedTextStyle.Render(s)
	}
	return s
}

func (r *Report) errText(s string) string {
	if r.Color {
		return styles.ErrorTextStyle.Render(s)
	}
	return s
}

func (r *Report) warnText(s string) string {
	if r.Color {
		return styles.WarningTextStyle.Render(s)
	}
	return s
}

func (r *Report) okText(s string) string {
	if r.Color {
		return styles.SuccessTextStyle.Render(s)
	}
	return s
}
