package cmd

import (
	"github.com/spf13/cobra"

	"tdo/internal/output"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <task-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
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

		if err := client.DeleteTask(taskID); err != nil {
			return renderError(err)
		}
		output.Success("Deleted %s", output.ShortID(taskID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
