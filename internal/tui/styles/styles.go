// Package styles provides Lip Gloss styles for pubsweep's terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	Primary     = lipgloss.Color("#7C3AED") // Purple
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#1F2937") // Dark Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
)

// Header styles.
var (
	// TitleStyle is for the report title bar.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	// SectionTitleStyle is for manifest section headings in the report.
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)
)

// Dependency status styles and icons.
var (
	// StatusUsed marks a correctly placed dependency.
	StatusUsed = lipgloss.NewStyle().
			Foreground(Success).
			Render("✓")

	// StatusTestOnly marks a dependency declared in the wrong section.
	StatusTestOnly = lipgloss.NewStyle().
			Foreground(Warning).
			Render("⇄")

	// StatusUnused marks a dependency nothing imports.
	StatusUnused = lipgloss.NewStyle().
			Foreground(Error).
			Render("✗")

	// StatusDuplicate marks a name declared in both sections.
	StatusDuplicate = lipgloss.NewStyle().
			Foreground(Warning).
			Render("‼")
)

// Box styles.
var (
	// BoxStyle is a standard box with border.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// SummaryBoxStyle wraps the closing summary of a report.
	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)

// Text styles.
var (
	// MutedTextStyle is for de-emphasized text (version specs, hints).
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorTextStyle is for error messages.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	// SuccessTextStyle is for success messages.
	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(Success)

	// WarningTextStyle is for warning messages.
	WarningTextStyle = lipgloss.NewStyle().
				Foreground(Warning)

	// PackageNameStyle is for package names in report lines.
	PackageNameStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Bold(true)

	// KeyStyle is for keyboard shortcut keys in prompts.
	KeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)
)

// Button styles for the confirmation prompt.
var (
	// ButtonDangerStyle is for destructive confirm buttons.
	ButtonDangerStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Error).
				Bold(true).
				Padding(0, 2)

	// ButtonPrimaryStyle is for non-destructive confirm buttons.
	ButtonPrimaryStyle = lipgloss.NewStyle().
				Foreground(Background).
				Background(Primary).
				Bold(true).
				Padding(0, 2)

	// ButtonSecondaryStyle is for cancel buttons.
	ButtonSecondaryStyle = lipgloss.NewStyle().
				Foreground(MutedLight).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Muted).
				Padding(0, 1)
)
