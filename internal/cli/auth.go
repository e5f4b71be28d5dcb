package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login USERNAME",
	Short: "Log in and print a bearer token",
	Long:  "Logs in with a password read from stdin and prints the issued token. Export it as IPAMCTL_TOKEN or pass it with --token.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readLine(cmd, "password: ")
		if err != nil {
			return err
		}

		token, err := apiClient.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the password of the logged-in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		current, err := readLine(cmd, "current password: ")
		if err != nil {
			return err
		}
		next, err := readLine(cmd, "new password: ")
		if err != nil {
			return err
		}

		if err := apiClient.ChangePassword(cmd.Context(), current, next); err != nil {
			return err
		}
		fmt.Println("password changed")
		return nil
	},
}

func readLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(loginCmd, passwdCmd)
}
