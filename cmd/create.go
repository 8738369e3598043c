package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"tdo/internal/dateparse"
	"tdo/internal/models"
	"tdo/internal/output"
)

var createCmd = &cobra.Command{
	Use:     "create [title]",
	Aliases: []string{"add", "new"},
	Short:   "Create a task",
	GroupID: "tasks",
	Long: `Create a task. With a title argument the task is created directly
from flags; without one an interactive form opens.

Deadlines accept "2026-09-15", "today", "tomorrow", "+3d", "+1w" or a
weekday name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		in := models.TaskCreate{
			Title: strings.TrimSpace(strings.Join(args, " ")),
		}
		in.Description, _ = cmd.Flags().GetString("description")
		priority, _ := cmd.Flags().GetString("priority")
		deadline, _ := cmd.Flags().GetString("deadline")
		labelNames, _ := cmd.Flags().GetStringSlice("label")

		if in.Title == "" {
			if err := runCreateForm(&in, &priority, &deadline); err != nil {
				return err
			}
		}

		in.Priority = models.NormalizePriority(priority)

		if deadline != "" {
			parsed, err := dateparse.ParseDeadline(deadline)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			in.Deadline = parsed
		}

		if len(labelNames) > 0 {
			ids, err := resolveLabelNames(client, labelNames)
			if err != nil {
				return renderError(err)
			}
			in.LabelIDs = ids
		}

		task, err := client.CreateTask(&in)
		if err != nil {
			return renderError(err)
		}

		output.Success("Created %s: %s", output.ShortID(task.ID), task.Title)
		return nil
	},
}

// runCreateForm collects task fields interactively.
func runCreateForm(in *models.TaskCreate, priority, deadline *string) error {
	if *priority == "" {
		*priority = string(models.PriorityMedium)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&in.Title).
			Placeholder("What needs doing?").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewText().
			Title("Description").
			Value(&in.Description).
			Placeholder("Optional details (markdown)...").
			Lines(3),
		huh.NewSelect[string]().
			Title("Priority").
			Options(
				huh.NewOption("High", string(models.PriorityHigh)),
				huh.NewOption("Medium", string(models.PriorityMedium)),
				huh.NewOption("Low", string(models.PriorityLow)),
			).
			Value(priority),
		huh.NewInput().
			Title("Deadline").
			Value(deadline).
			Placeholder("tomorrow, +3d, 2026-09-15...").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("deadline is required")
				}
				_, err := dateparse.ParseDeadline(s)
				return err
			}),
	).Title("New Task"))

	return form.Run()
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringP("description", "d", "", "Task description (markdown)")
	createCmd.Flags().StringP("priority", "p", "", "Priority: high, medium, low")
	createCmd.Flags().String("deadline", "", "Deadline (required unless using the form)")
	createCmd.Flags().StringSliceP("label", "l", nil, "Attach labels by name (repeatable)")
}
