// Package board is the interactive task board TUI. It keeps tasks and
// labels in collection stores and applies the view filter on every
// render, so server-confirmed mutations show up immediately.
package board

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tdo/internal/apiclient"
	"tdo/internal/collection"
	"tdo/internal/models"
	"tdo/internal/taskview"
)

// MinWidth is the minimum terminal width for proper display
const MinWidth = 40

// MinHeight is the minimum terminal height for proper display
const MinHeight = 10

// RefreshDataMsg carries a fresh server snapshot.
type RefreshDataMsg struct {
	Tasks     []models.Task
	Labels    []models.Label
	Timestamp time.Time
}

// TaskUpdatedMsg carries a single server-confirmed task mutation.
type TaskUpdatedMsg struct {
	Task models.Task
}

// TaskDeletedMsg reports a server-confirmed delete.
type TaskDeletedMsg struct {
	ID string
}

// ErrMsg carries a failed server call.
type ErrMsg struct {
	Err error
}

// Model is the main Bubble Tea model for the board TUI
type Model struct {
	Client *apiclient.Client
	UserID string

	// Window dimensions
	Width  int
	Height int

	// Stores survive for the life of the board and are closed on quit.
	Tasks  *collection.Store[models.Task]
	Labels *collection.Store[models.Label]

	// UI state
	Criteria    taskview.Criteria
	Cursor      int
	ShowDone    bool
	ShowHelp    bool
	Loading     bool
	Spinner     spinner.Model
	LastRefresh time.Time
	Err         error
}

// NewModel creates a new board model
func NewModel(client *apiclient.Client, userID string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		Client:  client,
		UserID:  userID,
		Tasks:   collection.New(func(t models.Task) string { return t.ID }),
		Labels:  collection.New(func(l models.Label) string { return l.ID }),
		Spinner: sp,
		Loading: true,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchData(),
		m.Spinner.Tick,
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case RefreshDataMsg:
		m.Tasks.ReplaceAll(msg.Tasks)
		m.Labels.ReplaceAll(msg.Labels)
		m.LastRefresh = msg.Timestamp
		m.Loading = false
		m.Err = nil
		m.clampCursor()
		return m, nil

	case TaskUpdatedMsg:
		// Only server-confirmed state goes into the store.
		m.Tasks.ReplaceOne(msg.Task.ID, msg.Task)
		m.Loading = false
		m.Err = nil
		return m, nil

	case TaskDeletedMsg:
		m.Tasks.RemoveOne(msg.ID)
		m.Loading = false
		m.Err = nil
		m.clampCursor()
		return m, nil

	case ErrMsg:
		m.Loading = false
		m.Err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKey processes key input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Tasks.Close()
		m.Labels.Close()
		return m, tea.Quit

	case "j", "down":
		m.Cursor++
		m.clampCursor()
		return m, nil

	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case "u":
		m.Criteria.UrgentOnly = !m.Criteria.UrgentOnly
		m.clampCursor()
		return m, nil

	case "t":
		m.Criteria.DueToday = !m.Criteria.DueToday
		m.clampCursor()
		return m, nil

	case "T":
		m.Criteria.DueTomorrow = !m.Criteria.DueTomorrow
		m.clampCursor()
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		labels := m.Labels.Items()
		if idx < len(labels) {
			m.toggleLabel(labels[idx].ID)
			m.clampCursor()
		}
		return m, nil

	case "c":
		m.Criteria = taskview.Criteria{}
		m.clampCursor()
		return m, nil

	case "a":
		m.ShowDone = !m.ShowDone
		m.clampCursor()
		return m, nil

	case " ", "enter":
		// One mutation at a time: further toggles wait until the
		// server confirms the one in flight.
		if m.Loading {
			return m, nil
		}
		if task, ok := m.taskUnderCursor(); ok {
			m.Loading = true
			return m, tea.Batch(m.toggleTask(task.ID), m.Spinner.Tick)
		}
		return m, nil

	case "x", "delete":
		if m.Loading {
			return m, nil
		}
		if task, ok := m.taskUnderCursor(); ok {
			m.Loading = true
			return m, tea.Batch(m.deleteTask(task.ID), m.Spinner.Tick)
		}
		return m, nil

	case "r":
		if m.Loading {
			return m, nil
		}
		m.Loading = true
		return m, tea.Batch(m.fetchData(), m.Spinner.Tick)

	case "?":
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}

	return m, nil
}

// toggleLabel flips a label id in or out of the selected set.
func (m *Model) toggleLabel(id string) {
	for i, sel := range m.Criteria.SelectedLabelIDs {
		if sel == id {
			m.Criteria.SelectedLabelIDs = append(
				m.Criteria.SelectedLabelIDs[:i], m.Criteria.SelectedLabelIDs[i+1:]...)
			return
		}
	}
	m.Criteria.SelectedLabelIDs = append(m.Criteria.SelectedLabelIDs, id)
}

// visibleTasks applies the view filter to the store contents.
func (m Model) visibleTasks() []models.Task {
	visible := taskview.Visible(m.Tasks.Items(), m.Criteria, time.Now())
	if m.ShowDone {
		return visible
	}
	open := make([]models.Task, 0, len(visible))
	for _, t := range visible {
		if !t.IsCompleted {
			open = append(open, t)
		}
	}
	return open
}

func (m Model) taskUnderCursor() (models.Task, bool) {
	visible := m.visibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return models.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if n == 0 {
		m.Cursor = 0
	} else if m.Cursor >= n {
		m.Cursor = n - 1
	}
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}
