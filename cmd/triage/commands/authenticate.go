package commands

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/myrtus0x0/triage/internal/constants"
)

// NewAuthenticateCommand creates the authenticate command. The endpoint
// comes from the global --url flag and defaults to the public instance.
func NewAuthenticateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authenticate [token]",
		Short: "Store the API token",
		Long:  "Store the API token and endpoint in the token file. Prompts for the token when it is not passed as an argument.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string

			if len(args) == 1 {
				token = args[0]
			} else {
				fmt.Fprint(os.Stderr, "API token: ")

				tokenBytes, err := term.ReadPassword(int(syscall.Stdin))

				fmt.Fprintln(os.Stderr)

				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}

				token = strings.TrimSpace(string(tokenBytes))
			}

			if token == "" {
				return constants.ErrNotAuthenticated
			}

			endpoint := viper.GetString("url")
			if endpoint == "" {
				endpoint = constants.DefaultRootURL
			}

			err := writeTokenFile(endpoint, token)
			if err != nil {
				return err
			}

			path, err := tokenFilePath()
			if err != nil {
				return err
			}

			fmt.Println("Token written to", path)

			return nil
		},
	}

	return cmd
}
