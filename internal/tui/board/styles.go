package board

import (
	"github.com/charmbracelet/lipgloss"

	"tdo/internal/models"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	successColor = lipgloss.Color("42")
	warningColor = lipgloss.Color("214")
	errorColor   = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	cursorStyle    = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	errStyle       = lipgloss.NewStyle().Foreground(errorColor)
	doneStyle      = lipgloss.NewStyle().Foreground(mutedColor).Strikethrough(true)
	checkStyle     = lipgloss.NewStyle().Foreground(successColor)
	filterOnStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	filterOffStyle = lipgloss.NewStyle().Foreground(mutedColor)

	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(warningColor),
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
)

// formatPriority renders a priority with color
func formatPriority(p models.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return string(p)
	}
	return style.Render(string(p))
}

// labelStyle tints text with a label's color, falling back to muted for
// malformed colors.
func labelStyle(l *models.Label) lipgloss.Style {
	if !models.IsValidColor(l.Color) {
		return subtleStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color))
}
