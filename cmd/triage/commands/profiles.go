package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/myrtus0x0/triage/internal/constants"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// CreateProfileOptions holds the options for creating a profile.
type CreateProfileOptions struct {
	Name    string
	Tags    string
	Network string
	Timeout int
}

// NewCreateProfileCommand creates the create-profile command.
func NewCreateProfileCommand() *cobra.Command {
	var opts CreateProfileOptions

	cmd := &cobra.Command{
		Use:   "create-profile",
		Short: "Create an analysis profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Name == "" {
				return constants.ErrProfileNameRequired
			}

			if opts.Timeout <= 0 {
				return constants.ErrProfileTimeoutRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.CreateProfile(cmd.Context(), opts.Name, splitTags(opts.Tags),
				triage.NetworkType(opts.Network), opts.Timeout)
			if err != nil {
				return err
			}

			fmt.Println("Profile created:", opts.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "the name of the new profile")
	cmd.Flags().StringVar(&opts.Tags, "tags", "", "a comma separated set of tags")
	cmd.Flags().StringVar(&opts.Network, "network", "", `the network type to use, either "internet", "drop" or unset`)
	cmd.Flags().IntVar(&opts.Timeout, "timeout", 0, "the timeout of the profile in seconds")

	return cmd
}

// NewDeleteProfileCommand creates the delete-profile command.
func NewDeleteProfileCommand() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "delete-profile",
		Short: "Delete an analysis profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if profile == "" {
				return constants.ErrProfileNameRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.DeleteProfile(cmd.Context(), profile)
			if err != nil {
				return err
			}

			fmt.Println("Profile deleted:", profile)

			return nil
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "", "the name or ID of the profile")

	return cmd
}

// NewListProfilesCommand creates the list-profiles command.
func NewListProfilesCommand() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "list-profiles",
		Short: "List analysis profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			profiles, err := client.Profiles(cmd.Context(), max).All()
			if err != nil {
				return err
			}

			return outputProfiles(profiles)
		},
	}

	cmd.Flags().IntVarP(&max, "max", "n", constants.DefaultMaxResults, "the maximum number of profiles to return")

	return cmd
}

func outputProfiles(profiles []triage.Profile) error {
	return outputObject(profiles, func() error {
		if len(profiles) == 0 {
			fmt.Println("No profiles found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "ID", "Network", "Timeout", "Tags")

		for _, profile := range profiles {
			_ = table.Append(profile.Name, profile.ID, string(profile.Network),
				fmt.Sprintf("%ds", profile.Timeout), strings.Join(profile.Tags, ","))
		}

		return table.Render()
	})
}

// splitTags parses the comma separated --tags value, dropping empty items.
func splitTags(tags string) []string {
	parts := strings.Split(tags, ",")

	result := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}

	return result
}
