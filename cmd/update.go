package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tdo/internal/dateparse"
	"tdo/internal/models"
	"tdo/internal/output"
)

var updateCmd = &cobra.Command{
	Use:     "update <task-id>",
	Aliases: []string{"edit"},
	Short:   "Update a task",
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

		patch := models.TaskPatch{}
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			patch.Title = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			patch.Description = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetString("priority")
			p := models.NormalizePriority(v)
			patch.Priority = &p
		}
		if cmd.Flags().Changed("deadline") {
			v, _ := cmd.Flags().GetString("deadline")
			parsed, err := dateparse.ParseDeadline(v)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			patch.Deadline = &parsed
		}
		if cmd.Flags().Changed("label") {
			names, _ := cmd.Flags().GetStringSlice("label")
			var nonEmpty []string
			for _, n := range names {
				if n != "" && n != "none" {
					nonEmpty = append(nonEmpty, n)
				}
			}
			ids := []string{}
			if len(nonEmpty) > 0 {
				if ids, err = resolveLabelNames(client, nonEmpty); err != nil {
					return renderError(err)
				}
			}
			patch.LabelIDs = ids
		}

		if patch.Title == nil && patch.Description == nil && patch.Priority == nil &&
			patch.Deadline == nil && patch.LabelIDs == nil {
			return fmt.Errorf("nothing to update (see --help for flags)")
		}

		task, err := client.UpdateTask(taskID, &patch)
		if err != nil {
			return renderError(err)
		}
		output.Success("Updated %s: %s", output.ShortID(task.ID), task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringP("title", "t", "", "New title")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().StringP("priority", "p", "", "New priority: high, medium, low")
	updateCmd.Flags().String("deadline", "", "New deadline")
	updateCmd.Flags().StringSliceP("label", "l", nil, "Replace label set (empty value clears)")
}
