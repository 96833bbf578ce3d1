package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/voicetask/internal/command"
	"github.com/marcus/voicetask/internal/store"
)

func sampleTasks() []store.Task {
	now := time.Now()
	return []store.Task{
		{ID: 1, Description: "buy milk", CreatedAt: now},
		{ID: 2, Description: "walk dog", Completed: true, CreatedAt: now},
	}
}

func TestViewShowsTasks(t *testing.T) {
	m := New(nil, sampleTasks())
	view := m.View()

	for _, want := range []string{"buy milk", "walk dog", "[x]", "[ ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := New(nil, nil)
	if !strings.Contains(m.View(), "no tasks yet") {
		t.Error("View() missing empty placeholder")
	}
}

func TestSnapshotMsgReplacesTasksAndClampsSelection(t *testing.T) {
	m := New(nil, sampleTasks())
	m.selected = 1

	updated, _ := m.Update(snapshotMsg{tasks: sampleTasks()[:1]})
	m = updated.(*Model)

	if len(m.tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(m.tasks))
	}
	if m.selected != 0 {
		t.Errorf("selected = %d, want clamped to 0", m.selected)
	}
}

func TestResultMsgSetsFeedback(t *testing.T) {
	m := New(nil, nil)
	m.busy = true

	updated, _ := m.Update(resultMsg{res: command.Result{
		Status:  command.StatusSuccess,
		Message: "Added task 1: buy milk",
	}})
	m = updated.(*Model)

	if m.busy {
		t.Error("busy not cleared after result")
	}
	if !strings.Contains(m.View(), "Added task 1: buy milk") {
		t.Error("View() missing feedback message")
	}
}

func TestTabSwitchesPanels(t *testing.T) {
	m := New(nil, sampleTasks())
	if m.activePanel != PanelInput {
		t.Fatalf("initial panel = %v, want input", m.activePanel)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*Model)
	if m.activePanel != PanelTasks {
		t.Errorf("panel after tab = %v, want tasks", m.activePanel)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(*Model)
	if m.activePanel != PanelInput {
		t.Errorf("panel after second tab = %v, want input", m.activePanel)
	}
}

func TestTaskPanelSelection(t *testing.T) {
	m := New(nil, sampleTasks())
	m.activePanel = PanelTasks
	m.input.Blur()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*Model)
	if m.selected != 1 {
		t.Errorf("selected after down = %d, want 1", m.selected)
	}

	// Doesn't run past the end.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(*Model)
	if m.selected != 1 {
		t.Errorf("selected after down at end = %d, want 1", m.selected)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(*Model)
	if m.selected != 0 {
		t.Errorf("selected after up = %d, want 0", m.selected)
	}
}

func TestActivityLogBounded(t *testing.T) {
	m := New(nil, nil)
	for i := 0; i < maxActivity+10; i++ {
		updated, _ := m.Update(ActivityMsg{Line: "line"})
		m = updated.(*Model)
	}
	if len(m.activity) != maxActivity {
		t.Errorf("activity log = %d lines, want capped at %d", len(m.activity), maxActivity)
	}
}
