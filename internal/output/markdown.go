package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Task descriptions are markdown. They render wrapped to the terminal,
// capped so long lines stay readable on wide screens.
const (
	maxDescriptionWidth = 100
	minDescriptionWidth = 24
)

// descriptionWidth picks a wrap width for the current terminal. COLUMNS
// covers the no-tty case (pipes, CI).
func descriptionWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
			w = n
		} else {
			w = 80
		}
	}
	if w > maxDescriptionWidth {
		w = maxDescriptionWidth
	}
	if w < minDescriptionWidth {
		w = minDescriptionWidth
	}
	return w
}

// RenderDescription renders a task description as styled markdown sized
// to the terminal. Blank input renders as nothing.
func RenderDescription(md string) (string, error) {
	return RenderDescriptionWidth(md, descriptionWidth())
}

// RenderDescriptionWidth is RenderDescription with a fixed wrap width.
func RenderDescriptionWidth(md string, width int) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if width < minDescriptionWidth {
		width = minDescriptionWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
