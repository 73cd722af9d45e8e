package components

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSpinnerTaskCompletion(t *testing.T) {
	taskErr := errors.New("lookup failed")
	sp := NewSpinner("working", func() error { return taskErr })

	model, cmd := sp.Update(taskDoneMsg{err: taskErr})
	if cmd == nil {
		t.Error("task completion should quit the program")
	}

	s := model.(*Spinner)
	if !errors.Is(s.Err(), taskErr) {
		t.Errorf("Err() = %v, want the task's error", s.Err())
	}
}

func TestSpinnerInterruptCancelsTask(t *testing.T) {
	sp := NewSpinner("working", func() error { return nil })

	model, cmd := sp.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("ctrl+c should quit the program")
	}

	s := model.(*Spinner)
	if !errors.Is(s.Err(), ErrInterrupted) {
		t.Errorf("Err() = %v, want ErrInterrupted", s.Err())
	}

	// The orphaned task finishing later must not clear the interrupt:
	// callers decide on Err() and would otherwise proceed to edit the
	// manifest after the user cancelled.
	model, _ = s.Update(taskDoneMsg{err: nil})
	s = model.(*Spinner)
	if !errors.Is(s.Err(), ErrInterrupted) {
		t.Error("late task completion must not override the interrupt")
	}
}

func TestSpinnerMarksTaskDispatched(t *testing.T) {
	sp := NewSpinner("working", func() error { return nil })
	if sp.started {
		t.Error("task must not count as dispatched before Init")
	}

	sp.Init()
	if !sp.started {
		t.Error("Init should mark the task as dispatched, so a failed program run never re-executes it")
	}
}
