package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tdo/internal/output"
	"tdo/internal/tui/board"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"ui"},
	Short:   "Interactive task board",
	GroupID: "tasks",
	Long: `Open the interactive task board.

Keys: j/k move, space toggles completion, x deletes, u/t/T and 1-9
toggle filters, r reloads, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, creds, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		m := board.NewModel(client, creds.UserID)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("board: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
