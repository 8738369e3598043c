package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tdo/internal/apiclient"
	"tdo/internal/models"
	"tdo/internal/output"
)

var labelCmd = &cobra.Command{
	Use:     "label",
	Short:   "Manage labels",
	GroupID: "labels",
}

var labelListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, creds, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		labels, err := client.UserLabels(creds.UserID)
		if err != nil {
			return renderError(err)
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(labels)
		}

		if len(labels) == 0 {
			fmt.Println("No labels yet. Create one with \"tdo label create\".")
			return nil
		}
		for i := range labels {
			fmt.Println(output.FormatLabelLine(&labels[i]))
		}
		return nil
	},
}

var labelCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		in := models.LabelCreate{Name: args[0]}
		in.Color, _ = cmd.Flags().GetString("color")
		in.Description, _ = cmd.Flags().GetString("description")

		label, err := client.CreateLabel(&in)
		if err != nil {
			return renderError(err)
		}
		output.Success("Created label %s", output.LabelSwatch(label))
		return nil
	},
}

var labelUpdateCmd = &cobra.Command{
	Use:   "update <name-or-id>",
	Short: "Update a label",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		label, err := findLabel(client, args[0])
		if err != nil {
			return renderError(err)
		}

		patch := models.LabelPatch{}
		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			patch.Name = &v
		}
		if cmd.Flags().Changed("color") {
			v, _ := cmd.Flags().GetString("color")
			patch.Color = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			patch.Description = &v
		}

		updated, err := client.UpdateLabel(label.ID, &patch)
		if err != nil {
			return renderError(err)
		}
		output.Success("Updated label %s", output.LabelSwatch(updated))
		return nil
	},
}

var labelDeleteCmd = &cobra.Command{
	Use:     "delete <name-or-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a label",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		label, err := findLabel(client, args[0])
		if err != nil {
			return renderError(err)
		}
		if err := client.DeleteLabel(label.ID); err != nil {
			return renderError(err)
		}
		output.Success("Deleted label %s", label.Name)
		return nil
	},
}

// findLabel resolves user input to a label, by exact id first, then
// case-insensitive name. Ownership is enforced server-side.
func findLabel(client *apiclient.Client, nameOrID string) (*models.Label, error) {
	labels, err := client.ListLabels()
	if err != nil {
		return nil, err
	}
	for i := range labels {
		if labels[i].ID == nameOrID {
			return &labels[i], nil
		}
	}
	for i := range labels {
		if strings.EqualFold(labels[i].Name, nameOrID) {
			return &labels[i], nil
		}
	}
	return nil, fmt.Errorf("unknown label %q", nameOrID)
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.AddCommand(labelListCmd, labelCreateCmd, labelUpdateCmd, labelDeleteCmd)

	labelListCmd.Flags().Bool("json", false, "Output as JSON")
	labelCreateCmd.Flags().String("color", "", "Hex color like #FF5733 (default "+models.DefaultLabelColor+")")
	labelCreateCmd.Flags().StringP("description", "d", "", "Label description")
	labelUpdateCmd.Flags().String("name", "", "New name")
	labelUpdateCmd.Flags().String("color", "", "New hex color")
	labelUpdateCmd.Flags().StringP("description", "d", "", "New description")
}

// resolveLabelNames maps label names (or ids) to label ids, creating
// nothing; unknown names error out.
func resolveLabelNames(client *apiclient.Client, names []string) ([]string, error) {
	labels, err := client.ListLabels()
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, name := range names {
		id := ""
		for i := range labels {
			if labels[i].ID == name || strings.EqualFold(labels[i].Name, name) {
				id = labels[i].ID
				break
			}
		}
		if id == "" {
			return nil, fmt.Errorf("unknown label %q", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
