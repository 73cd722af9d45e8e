// Package components provides reusable TUI components for pubsweep.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fluttertools/pubsweep/internal/tui/styles"
)

// ConfirmDialog displays a yes/no prompt before manifest edits are applied.
type ConfirmDialog struct {
	title       string
	message     string
	width       int
	destructive bool

	answered bool
	accepted bool
}

// NewConfirmDialog creates a ConfirmDialog.
func NewConfirmDialog(title, message string, destructive bool) *ConfirmDialog {
	return &ConfirmDialog{
		title:       title,
		message:     message,
		width:       56,
		destructive: destructive,
	}
}

// SetSize sets the dialog width.
func (c *ConfirmDialog) SetSize(width int) {
	c.width = width
}

// Accepted reports the user's answer once the dialog has quit.
func (c *ConfirmDialog) Accepted() bool {
	return c.answered && c.accepted
}

// Init implements tea.Model.
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The dialog quits on the first decisive key.
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "y", "enter":
			c.answered = true
			c.accepted = true
			return c, tea.Quit
		case "n", "esc", "q", "ctrl+c":
			c.answered = true
			c.accepted = false
			return c, tea.Quit
		}
	}
	return c, nil
}

// View implements tea.Model.
func (c *ConfirmDialog) View() string {
	if c.answered {
		return ""
	}

	var b strings.Builder

	titleBg := styles.Warning
	if c.destructive {
		titleBg = styles.Error
	}
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Background(titleBg).
		Bold(true).
		Padding(0, 1).
		Width(c.width - 4)
	b.WriteString(titleStyle.Render(c.title))
	b.WriteString("\n\n")

	msgStyle := lipgloss.NewStyle().
		Foreground(styles.Foreground).
		Width(c.width - 8)
	b.WriteString(msgStyle.Render(c.message))
	b.WriteString("\n\n")

	yesStyle := styles.ButtonDangerStyle
	if !c.destructive {
		yesStyle = styles.ButtonPrimaryStyle
	}
	b.WriteString(yesStyle.Render("[Y]es"))
	b.WriteString("  ")
	b.WriteString(styles.ButtonSecondaryStyle.Render("[N]o"))

	borderColor := styles.Warning
	if c.destructive {
		borderColor = styles.Error
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}

// Confirm runs the dialog as a standalone program and returns the answer.
// Any program error counts as a refusal.
func Confirm(title, message string, destructive bool) bool {
	dialog := NewConfirmDialog(title, message, destructive)
	model, err := tea.NewProgram(dialog).Run()
	if err != nil {
		return false
	}
	if d, ok := model.(*ConfirmDialog); ok {
		return d.Accepted()
	}
	return false
}
