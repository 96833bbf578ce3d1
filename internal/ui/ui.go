// Package ui provides the interactive terminal front end for
// voicetask. Uses Bubbletea for a task table plus a command prompt;
// everything it does goes through the session coordinator, the same as
// any other input path.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/voicetask/internal/command"
	"github.com/marcus/voicetask/internal/session"
	"github.com/marcus/voicetask/internal/store"
)

// Panel represents which panel is currently focused.
type Panel int

const (
	PanelInput Panel = iota
	PanelTasks
)

// maxActivity bounds the activity log kept in memory.
const maxActivity = 50

// resultMsg carries a finished submission back into the update loop.
type resultMsg struct {
	res command.Result
	err error
}

// snapshotMsg carries a refreshed task list.
type snapshotMsg struct {
	tasks []store.Task
	err   error
}

// ReloadMsg asks the UI to reload the store and refresh. Sent from
// outside (the data-file watcher) via Program.Send.
type ReloadMsg struct{}

// ActivityMsg appends a line to the activity log. Sent from the
// coordinator's event handler via Program.Send.
type ActivityMsg struct {
	Line string
}

// Model holds the TUI state.
type Model struct {
	coord *session.Coordinator

	width       int
	height      int
	activePanel Panel
	quitting    bool
	busy        bool

	input    textinput.Model
	tasks    []store.Task
	selected int

	feedback       string
	feedbackStatus command.Status
	activity       []string

	styles *Styles
}

// Styles holds lipgloss styles for the UI.
type Styles struct {
	Title          lipgloss.Style
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
	Muted          lipgloss.Style

	TaskSelected lipgloss.Style
	TaskDone     lipgloss.Style
	TaskPending  lipgloss.Style

	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style

	HelpKey  lipgloss.Style
	HelpText lipgloss.Style
}

// newStyles creates the default style set.
func newStyles() *Styles {
	subtle := lipgloss.AdaptiveColor{Light: "#666", Dark: "#888"}
	highlight := lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	green := lipgloss.AdaptiveColor{Light: "#22863a", Dark: "#3fb950"}
	yellow := lipgloss.AdaptiveColor{Light: "#b08800", Dark: "#d29922"}
	red := lipgloss.AdaptiveColor{Light: "#cb2431", Dark: "#f85149"}

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight),

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight),

		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle),

		Muted: lipgloss.NewStyle().
			Foreground(subtle),

		TaskSelected: lipgloss.NewStyle().
			Background(highlight).
			Foreground(lipgloss.Color("#fff")).
			Bold(true),

		TaskDone: lipgloss.NewStyle().
			Foreground(green),

		TaskPending: lipgloss.NewStyle(),

		StatusOK: lipgloss.NewStyle().
			Foreground(green).
			Bold(true),

		StatusWarn: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Foreground(red).
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true),

		HelpText: lipgloss.NewStyle().
			Foreground(subtle),
	}
}

// New creates a new TUI model around the coordinator.
func New(coord *session.Coordinator, initial []store.Task) *Model {
	input := textinput.New()
	input.Placeholder = `try "add buy milk" or "list tasks"`
	input.Focus()
	input.CharLimit = 200

	return &Model{
		coord:       coord,
		width:       80,
		height:      24,
		activePanel: PanelInput,
		input:       input,
		tasks:       initial,
		activity:    make([]string, 0),
		styles:      newStyles(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

// submitCmd runs one command text through the coordinator.
func (m *Model) submitCmd(text string) tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		res, err := coord.Submit(context.Background(), text)
		return resultMsg{res: res, err: err}
	}
}

// refreshCmd re-reads the task list snapshot.
func (m *Model) refreshCmd() tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		tasks, err := coord.Snapshot(context.Background())
		return snapshotMsg{tasks: tasks, err: err}
	}
}

// reloadCmd re-reads the tasks file, then refreshes.
func (m *Model) reloadCmd() tea.Cmd {
	coord := m.coord
	return func() tea.Msg {
		if err := coord.Reload(context.Background()); err != nil {
			return snapshotMsg{err: err}
		}
		tasks, err := coord.Snapshot(context.Background())
		return snapshotMsg{tasks: tasks, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.feedback = msg.err.Error()
			m.feedbackStatus = ""
		} else {
			m.feedback = msg.res.Message
			m.feedbackStatus = msg.res.Status
		}
		return m, m.refreshCmd()

	case snapshotMsg:
		if msg.err != nil {
			m.feedback = msg.err.Error()
			m.feedbackStatus = ""
			return m, nil
		}
		m.tasks = msg.tasks
		m.clampSelection()
		return m, nil

	case ReloadMsg:
		return m, m.reloadCmd()

	case ActivityMsg:
		m.activity = append(m.activity, msg.Line)
		if len(m.activity) > maxActivity {
			m.activity = m.activity[len(m.activity)-maxActivity:]
		}
		return m, nil
	}

	if m.activePanel == PanelInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.activePanel == PanelInput {
			m.activePanel = PanelTasks
			m.input.Blur()
		} else {
			m.activePanel = PanelInput
			m.input.Focus()
		}
		return m, nil
	}

	if m.activePanel == PanelTasks {
		return m.handleTaskKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.busy {
			return m, nil
		}
		m.input.SetValue("")
		m.busy = true
		return m, m.submitCmd(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}

	case "enter", "c":
		if t, ok := m.selectedTask(); ok && !m.busy {
			m.busy = true
			return m, m.submitCmd(fmt.Sprintf("complete %d", t.ID))
		}

	case "d":
		if t, ok := m.selectedTask(); ok && !m.busy {
			m.busy = true
			return m, m.submitCmd(fmt.Sprintf("delete %d", t.ID))
		}
	}
	return m, nil
}

func (m *Model) selectedTask() (store.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return store.Task{}, false
	}
	return m.tasks[m.selected], true
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("voicetask"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTasks())
	b.WriteString("\n")
	b.WriteString(m.renderFeedback())
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderActivity())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m *Model) renderTasks() string {
	if len(m.tasks) == 0 {
		return m.styles.Muted.Render("  no tasks yet")
	}

	var lines []string
	for i, t := range m.tasks {
		mark := "[ ]"
		style := m.styles.TaskPending
		if t.Completed {
			mark = "[x]"
			style = m.styles.TaskDone
		}
		line := fmt.Sprintf("  %3d %s %s", t.ID, mark, t.Description)
		if m.activePanel == PanelTasks && i == m.selected {
			line = m.styles.TaskSelected.Render(line)
		} else {
			line = style.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFeedback() string {
	if m.busy {
		return m.styles.Muted.Render("  working...")
	}
	if m.feedback == "" {
		return ""
	}
	style := m.styles.StatusError
	switch m.feedbackStatus {
	case command.StatusSuccess:
		style = m.styles.StatusOK
	case command.StatusNotFound, command.StatusAmbiguous,
		command.StatusInvalid, command.StatusUnrecognized:
		style = m.styles.StatusWarn
	}
	return "  " + style.Render(m.feedback)
}

func (m *Model) renderInput() string {
	border := m.styles.InactiveBorder
	if m.activePanel == PanelInput {
		border = m.styles.ActiveBorder
	}
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	return border.Width(width).Render(m.input.View())
}

func (m *Model) renderActivity() string {
	if len(m.activity) == 0 {
		return ""
	}
	show := 3
	if len(m.activity) < show {
		show = len(m.activity)
	}
	lines := make([]string, 0, show)
	for _, line := range m.activity[len(m.activity)-show:] {
		lines = append(lines, m.styles.Muted.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHelp() string {
	s := m.styles
	parts := []string{
		s.HelpKey.Render("tab") + s.HelpText.Render(" switch panel"),
		s.HelpKey.Render("enter") + s.HelpText.Render(" submit/complete"),
		s.HelpKey.Render("d") + s.HelpText.Render(" delete"),
		s.HelpKey.Render("ctrl+c") + s.HelpText.Render(" quit"),
	}
	return "  " + strings.Join(parts, s.HelpText.Render("  ·  "))
}
