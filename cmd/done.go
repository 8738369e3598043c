package cmd

import (
	"github.com/spf13/cobra"

	"tdo/internal/output"
)

var doneCmd = &cobra.Command{
	Use:     "done <task-id>",
	Aliases: []string{"toggle"},
	Short:   "Toggle a task's completion",
	GroupID: "tasks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, creds, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		taskID, err := resolveTaskID(client, creds.UserID, args[0])
		if err != nil {
			return renderError(err)
		}

		task, err := client.ToggleTask(taskID)
		if err != nil {
			return renderError(err)
		}

		if task.IsCompleted {
			output.Success("Done: %s", task.Title)
		} else {
			output.Info("Reopened: %s", task.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
