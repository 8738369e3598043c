package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tdo/internal/apiclient"
	"tdo/internal/output"
	"tdo/internal/session"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in to the server",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			var err error
			username, err = promptLine("Username: ")
			if err != nil {
				return err
			}
		}
		if username == "" {
			return fmt.Errorf("username required")
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		client := anonClient()
		resp, err := client.Login(username, password)
		if err != nil {
			return renderError(err)
		}

		creds := &session.Credentials{
			AccessToken: resp.AccessToken,
			UserID:      resp.User.ID,
			Username:    resp.User.Username,
			ServerURL:   client.BaseURL,
		}
		if err := session.Save(creds); err != nil {
			output.Error("save credentials: %v", err)
			return err
		}

		output.Success("Logged in as %s", creds.Username)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create an account",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")

		var err error
		if username == "" {
			if username, err = promptLine("Username: "); err != nil {
				return err
			}
		}
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		client := anonClient()
		user, err := client.Register(&apiclient.RegisterRequest{
			Username: username,
			Email:    email,
			Password: password,
		})
		if err != nil {
			return renderError(err)
		}

		// Log straight in so the account is usable immediately.
		resp, err := client.Login(user.Username, password)
		if err != nil {
			return renderError(err)
		}
		creds := &session.Credentials{
			AccessToken: resp.AccessToken,
			UserID:      resp.User.ID,
			Username:    resp.User.Username,
			ServerURL:   client.BaseURL,
		}
		if err := session.Save(creds); err != nil {
			output.Error("save credentials: %v", err)
			return err
		}

		output.Success("Registered and logged in as %s", creds.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Log out and discard stored credentials",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Clear(); err != nil {
			output.Error("logout: %v", err)
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the logged-in account",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, creds, err := newClient()
		if err != nil {
			output.Error("%v", err)
			return err
		}

		user, err := client.Me()
		if err != nil {
			return renderError(err)
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		fmt.Printf("Server: %s\n", session.ServerURL(creds))
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().String("username", "", "Username (prompted if omitted)")
	registerCmd.Flags().String("username", "", "Username (prompted if omitted)")
	registerCmd.Flags().String("email", "", "Email (prompted if omitted)")
}
