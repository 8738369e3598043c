package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tdo/internal/collection"
	"tdo/internal/models"
	"tdo/internal/output"
	"tdo/internal/taskview"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your tasks",
	GroupID: "tasks",
	Long: `List your tasks, optionally filtered.

Label filters AND together: a task must carry every selected label.
--today and --tomorrow combine the same way, so asking for both always
yields nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, creds, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		tasks, err := client.ListTasks(creds.UserID)
		if err != nil {
			return renderError(err)
		}
		labels, err := client.UserLabels(creds.UserID)
		if err != nil {
			return renderError(err)
		}

		store := collection.New(func(t models.Task) string { return t.ID })
		store.ReplaceAll(tasks)

		criteria := taskview.Criteria{}
		criteria.UrgentOnly, _ = cmd.Flags().GetBool("urgent")
		criteria.DueToday, _ = cmd.Flags().GetBool("today")
		criteria.DueTomorrow, _ = cmd.Flags().GetBool("tomorrow")

		labelNames, _ := cmd.Flags().GetStringSlice("label")
		if len(labelNames) > 0 {
			ids, err := resolveLabelNames(client, labelNames)
			if err != nil {
				return renderError(err)
			}
			criteria.SelectedLabelIDs = ids
		}

		showDone, _ := cmd.Flags().GetBool("all")
		visible := taskview.Visible(store.Items(), criteria, time.Now())
		if !showDone {
			open := visible[:0]
			for _, t := range visible {
				if !t.IsCompleted {
					open = append(open, t)
				}
			}
			visible = open
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(visible)
		}

		if len(visible) == 0 {
			if criteria.Empty() && showDone {
				fmt.Println("No tasks. Create one with \"tdo create\".")
			} else {
				fmt.Println("No tasks match.")
			}
			return nil
		}

		idx := output.LabelIndex(labels)
		now := time.Now()
		for i := range visible {
			fmt.Println(output.FormatTaskShort(&visible[i], idx, now))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringSliceP("label", "l", nil, "Only tasks carrying every named label (repeatable)")
	listCmd.Flags().BoolP("urgent", "u", false, "Only High priority tasks")
	listCmd.Flags().Bool("today", false, "Only tasks due today")
	listCmd.Flags().Bool("tomorrow", false, "Only tasks due tomorrow")
	listCmd.Flags().BoolP("all", "a", false, "Include completed tasks")
	listCmd.Flags().Bool("json", false, "Output as JSON")
}
