package components

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fluttertools/pubsweep/internal/tui/styles"
)

// ErrInterrupted reports that the user cancelled the running task with
// ctrl+c. Callers must treat the task's outcome as unusable: the background
// goroutine may still be running and its result is discarded.
var ErrInterrupted = errors.New("interrupted")

// Spinner displays an animated spinner with status text while a background
// task runs, and quits on its own when the task finishes.
type Spinner struct {
	spinner    spinner.Model
	statusText string
	startTime  time.Time
	showTime   bool

	task    func() error
	started bool
	err     error
	done    bool
}

// taskDoneMsg carries the background task's result into the update loop.
type taskDoneMsg struct {
	err error
}

// NewSpinner creates a Spinner for the given status line and task.
func NewSpinner(statusText string, task func() error) *Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)
	return &Spinner{
		spinner:    s,
		statusText: statusText,
		showTime:   true,
		task:       task,
	}
}

// SetShowTime controls whether elapsed time is shown.
func (s *Spinner) SetShowTime(show bool) {
	s.showTime = show
}

// Err returns the task's error once the spinner has quit.
func (s *Spinner) Err() error {
	return s.err
}

// Init implements tea.Model: starts the animation and launches the task.
func (s *Spinner) Init() tea.Cmd {
	s.startTime = time.Now()
	s.started = true
	return tea.Batch(
		s.spinner.Tick,
		func() tea.Msg {
			return taskDoneMsg{err: s.task()}
		},
	)
}

// Update implements tea.Model.
func (s *Spinner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case taskDoneMsg:
		// A result arriving after an interrupt is discarded.
		if s.done {
			return s, nil
		}
		s.done = true
		s.err = msg.err
		return s, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			s.done = true
			s.err = ErrInterrupted
			return s, tea.Quit
		}
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View implements tea.Model.
func (s *Spinner) View() string {
	if s.done {
		return ""
	}

	statusStyle := lipgloss.NewStyle().Foreground(styles.Foreground)
	line := fmt.Sprintf("%s %s", s.spinner.View(), statusStyle.Render(s.statusText))

	if s.showTime && !s.startTime.IsZero() {
		timeStyle := lipgloss.NewStyle().Foreground(styles.MutedLight)
		line = fmt.Sprintf("%s %s", line, timeStyle.Render(fmt.Sprintf("(%s)", formatSpinnerDuration(time.Since(s.startTime)))))
	}

	return line
}

// RunWithSpinner runs task behind an animated spinner and returns its error,
// or ErrInterrupted when the user cancels with ctrl+c. When the program fails
// before the task was ever dispatched, the task runs directly without
// animation; once dispatched it is never run a second time.
func RunWithSpinner(statusText string, task func() error) error {
	sp := NewSpinner(statusText, task)
	if _, err := tea.NewProgram(sp).Run(); err != nil {
		if sp.started {
			return err
		}
		return task()
	}
	return sp.Err()
}

// formatSpinnerDuration formats a duration for display.
func formatSpinnerDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
