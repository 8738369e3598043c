// Package output provides styled terminal output helpers (success, error,
// warning, task formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tdo/internal/models"
)

var (
	// Styles
	titleStyle     = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// FormatPriority formats a priority with color
func FormatPriority(p models.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return fmt.Sprintf("[%s]", p)
	}
	return style.Render(fmt.Sprintf("[%s]", p))
}

// CheckMark returns the completion indicator for a task.
func CheckMark(done bool) string {
	if done {
		return successStyle.Render("[x]")
	}
	return "[ ]"
}

// LabelSwatch renders a label name tinted with its color.
func LabelSwatch(l *models.Label) string {
	if !models.IsValidColor(l.Color) {
		return l.Name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color)).Render("● " + l.Name)
}

// FormatDeadline renders a deadline for list output, marking overdue
// and due-soon tasks. Unparsable values come back verbatim.
func FormatDeadline(deadline string, now time.Time) string {
	if deadline == "" {
		return ""
	}
	t, err := parseDeadline(deadline)
	if err != nil {
		return subtleStyle.Render(deadline)
	}
	label := t.Format("2006-01-02")
	switch {
	case t.Before(now):
		return overdueStyle.Render(label + " (overdue)")
	case t.Before(now.AddDate(0, 0, 2)):
		return warningStyle.Render(label)
	default:
		return subtleStyle.Render(label)
	}
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// FormatTaskShort formats a task in one-line list format.
func FormatTaskShort(task *models.Task, labels map[string]*models.Label, now time.Time) string {
	var parts []string
	parts = append(parts, CheckMark(task.IsCompleted))
	parts = append(parts, subtleStyle.Render(ShortID(task.ID)))
	parts = append(parts, FormatPriority(task.Priority))

	if task.IsCompleted {
		parts = append(parts, doneStyle.Render(task.Title))
	} else {
		parts = append(parts, task.Title)
	}

	if d := FormatDeadline(task.Deadline, now); d != "" {
		parts = append(parts, d)
	}

	for _, id := range task.LabelIDs {
		if l, ok := labels[id]; ok {
			parts = append(parts, LabelSwatch(l))
		}
	}

	return strings.Join(parts, "  ")
}

// FormatTaskLong formats a task in detail format, one field per line.
// The description is left to the caller so it can go through the
// markdown renderer.
func FormatTaskLong(task *models.Task, labels map[string]*models.Label, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(task.Title))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("ID: %s\n", task.ID))
	sb.WriteString(fmt.Sprintf("Priority: %s\n", FormatPriority(task.Priority)))

	if task.IsCompleted {
		done := "Done"
		if task.CompletedAt != nil {
			if t, err := time.Parse(time.RFC3339, *task.CompletedAt); err == nil {
				done = fmt.Sprintf("Done (%s)", FormatTimeAgo(t, now))
			}
		}
		sb.WriteString(fmt.Sprintf("Status: %s\n", successStyle.Render(done)))
	} else {
		sb.WriteString("Status: Open\n")
	}

	if task.Deadline != "" {
		sb.WriteString(fmt.Sprintf("Deadline: %s\n", FormatDeadline(task.Deadline, now)))
	}

	if len(task.LabelIDs) > 0 {
		var names []string
		for _, id := range task.LabelIDs {
			if l, ok := labels[id]; ok {
				names = append(names, LabelSwatch(l))
			} else {
				names = append(names, id)
			}
		}
		sb.WriteString(fmt.Sprintf("Labels: %s\n", strings.Join(names, ", ")))
	}

	if task.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, task.CreatedAt); err == nil {
			sb.WriteString(subtleStyle.Render(fmt.Sprintf("Created %s", FormatTimeAgo(t, now))))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FormatLabelLine formats a label in one-line list format.
func FormatLabelLine(l *models.Label) string {
	var parts []string
	parts = append(parts, LabelSwatch(l))
	parts = append(parts, subtleStyle.Render(ShortID(l.ID)))
	parts = append(parts, subtleStyle.Render(l.Color))
	if l.Description != "" {
		parts = append(parts, l.Description)
	}
	return strings.Join(parts, "  ")
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("2006-01-02")
	}
}

// ShortID shortens an id to 8 characters for list display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// SectionHeader returns a formatted section header for CLI output
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// LabelIndex builds an id-keyed lookup for formatting helpers.
func LabelIndex(labels []models.Label) map[string]*models.Label {
	idx := make(map[string]*models.Label, len(labels))
	for i := range labels {
		idx[labels[i].ID] = &labels[i]
	}
	return idx
}
