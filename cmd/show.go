package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tdo/internal/output"
)

var showCmd = &cobra.Command{
	Use:     "show <task-id>",
	Aliases: []string{"view"},
	Short:   "Show a task in full",
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

		task, err := client.GetTask(taskID)
		if err != nil {
			return renderError(err)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(task)
		}

		labels, err := client.UserLabels(creds.UserID)
		if err != nil {
			return renderError(err)
		}

		fmt.Print(output.FormatTaskLong(task, output.LabelIndex(labels), time.Now()))

		if task.Description != "" {
			rendered, err := output.RenderDescription(task.Description)
			if err != nil {
				// Fall back to the raw text rather than failing the command.
				rendered = task.Description
			}
			fmt.Println(rendered)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "Output as JSON")
}
