package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tdo/internal/output"
	"tdo/internal/session"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change CLI settings",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := session.LoadConfig()
		if err != nil {
			output.Error("read config: %v", err)
			return err
		}
		creds, _ := session.Load()
		fmt.Printf("Server URL: %s\n", session.ServerURL(creds))
		if cfg.ServerURL != "" {
			fmt.Printf("Configured default: %s\n", cfg.ServerURL)
		}
		return nil
	},
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server <url>",
	Short: "Set the default server URL for future logins",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := session.LoadConfig()
		if err != nil {
			output.Error("read config: %v", err)
			return err
		}
		cfg.ServerURL = args[0]
		if err := session.SaveConfig(cfg); err != nil {
			output.Error("write config: %v", err)
			return err
		}
		output.Success("Default server set to %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetServerCmd)
	rootCmd.AddCommand(configCmd)
}
