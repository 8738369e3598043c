package board

import (
	"fmt"
	"strings"
	"time"

	"tdo/internal/models"
	"tdo/internal/taskview"
)

// renderView draws the whole board.
func (m Model) renderView() string {
	if m.Width > 0 && (m.Width < MinWidth || m.Height < MinHeight) {
		return subtleStyle.Render("Terminal too small for the board.")
	}

	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderLabelBar())
	sb.WriteString("\n\n")
	sb.WriteString(m.renderTasks())

	if m.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(errStyle.Render("error: " + m.Err.Error()))
	}

	sb.WriteString("\n")
	if m.ShowHelp {
		sb.WriteString(m.renderHelp())
	} else {
		sb.WriteString(helpStyle.Render("j/k move · space toggle · x delete · u/t/T/1-9 filter · c clear · r reload · ? help · q quit"))
	}
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderHeader() string {
	title := headerStyle.Render(" tdo board ")

	var filters []string
	filters = append(filters, renderFlag("urgent", m.Criteria.UrgentOnly))
	filters = append(filters, renderFlag("today", m.Criteria.DueToday))
	filters = append(filters, renderFlag("tomorrow", m.Criteria.DueTomorrow))
	filters = append(filters, renderFlag("done", m.ShowDone))

	status := ""
	if m.Loading {
		status = " " + m.Spinner.View()
	} else if !m.LastRefresh.IsZero() {
		status = subtleStyle.Render(" refreshed " + m.LastRefresh.Format("15:04:05"))
	}

	return title + "  " + strings.Join(filters, " ") + status
}

func renderFlag(name string, on bool) string {
	if on {
		return filterOnStyle.Render("[" + name + "]")
	}
	return filterOffStyle.Render("[" + name + "]")
}

// renderLabelBar shows the user's labels with their filter hotkeys.
func (m Model) renderLabelBar() string {
	labels := m.Labels.Items()
	if len(labels) == 0 {
		return subtleStyle.Render("no labels")
	}

	selected := make(map[string]bool, len(m.Criteria.SelectedLabelIDs))
	for _, id := range m.Criteria.SelectedLabelIDs {
		selected[id] = true
	}

	var parts []string
	for i := range labels {
		if i >= 9 {
			break
		}
		l := &labels[i]
		name := fmt.Sprintf("%d:%s", i+1, l.Name)
		if selected[l.ID] {
			parts = append(parts, labelStyle(l).Bold(true).Underline(true).Render(name))
		} else {
			parts = append(parts, labelStyle(l).Render(name))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderTasks() string {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		if m.Tasks.Len() == 0 {
			return subtleStyle.Render("  No tasks.")
		}
		return subtleStyle.Render("  No tasks match the current filters.")
	}

	labelIdx := make(map[string]*models.Label)
	labels := m.Labels.Items()
	for i := range labels {
		labelIdx[labels[i].ID] = &labels[i]
	}

	now := time.Now()
	var sb strings.Builder
	for i := range visible {
		prefix := "  "
		if i == m.Cursor {
			prefix = cursorStyle.Render("> ")
		}
		sb.WriteString(prefix)
		sb.WriteString(m.renderTaskLine(&visible[i], labelIdx, now))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderTaskLine(t *models.Task, labelIdx map[string]*models.Label, now time.Time) string {
	var parts []string

	if t.IsCompleted {
		parts = append(parts, checkStyle.Render("[x]"))
	} else {
		parts = append(parts, "[ ]")
	}
	parts = append(parts, formatPriority(t.Priority))

	if t.IsCompleted {
		parts = append(parts, doneStyle.Render(t.Title))
	} else {
		parts = append(parts, t.Title)
	}

	if t.Deadline != "" {
		if offset, ok := taskview.DayOffset(t.Deadline, now); ok {
			switch {
			case offset < 0:
				parts = append(parts, errStyle.Render("overdue"))
			case offset == 0:
				parts = append(parts, filterOnStyle.Render("today"))
			case offset == 1:
				parts = append(parts, subtleStyle.Render("tomorrow"))
			default:
				parts = append(parts, subtleStyle.Render(fmt.Sprintf("in %dd", offset)))
			}
		}
	}

	for _, id := range t.LabelIDs {
		if l, ok := labelIdx[id]; ok {
			parts = append(parts, labelStyle(l).Render("●"+l.Name))
		}
	}

	return strings.Join(parts, " ")
}

func (m Model) renderHelp() string {
	lines := []string{
		"j/k, up/down   move cursor",
		"space, enter   toggle completion",
		"x, delete      delete task",
		"u              only High priority",
		"t / T          due today / due tomorrow",
		"1-9            toggle label filter",
		"c              clear all filters",
		"a              show completed tasks",
		"r              reload from server",
		"q              quit",
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}
