package board

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fetchData returns a command that pulls a fresh snapshot of tasks and
// labels from the server.
func (m Model) fetchData() tea.Cmd {
	client, userID := m.Client, m.UserID
	return func() tea.Msg {
		tasks, err := client.ListTasks(userID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		labels, err := client.UserLabels(userID)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return RefreshDataMsg{Tasks: tasks, Labels: labels, Timestamp: time.Now()}
	}
}

// toggleTask flips completion on the server; the store is only touched
// once the confirmed task comes back.
func (m Model) toggleTask(id string) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		task, err := client.ToggleTask(id)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return TaskUpdatedMsg{Task: *task}
	}
}

// deleteTask removes a task on the server, then reports the id for
// store removal.
func (m Model) deleteTask(id string) tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		if err := client.DeleteTask(id); err != nil {
			return ErrMsg{Err: err}
		}
		return TaskDeletedMsg{ID: id}
	}
}
