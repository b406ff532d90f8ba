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

// ListOptions holds the options for listing samples.
type ListOptions struct {
	Max    int
	Public bool
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var opts ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			paginator := client.OwnedSamples(cmd.Context(), opts.Max)
			if opts.Public {
				paginator = client.PublicSamples(cmd.Context(), opts.Max)
			}

			samples, err := paginator.All()
			if err != nil {
				return err
			}

			return outputSamples(samples)
		},
	}

	cmd.Flags().IntVarP(&opts.Max, "max", "n", constants.DefaultMaxResults, "the maximum number of samples to return")
	cmd.Flags().BoolVarP(&opts.Public, "public", "p", false, "list public samples")

	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	var max int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			samples, err := client.Search(cmd.Context(), args[0], max).All()
			if err != nil {
				return err
			}

			return outputSamples(samples)
		},
	}

	cmd.Flags().IntVarP(&max, "max", "n", constants.DefaultMaxResults, "the maximum number of samples to return")

	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete SAMPLE",
		Short: "Delete a sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.DeleteSample(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println("Sample deleted:", args[0])

			return nil
		},
	}
}

func outputSamples(samples []triage.Sample) error {
	return outputObject(samples, func() error {
		if len(samples) == 0 {
			fmt.Println("No samples found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Status", "Tasks", "Target", "Submitted")

		for _, sample := range samples {
			target := sample.URL
			if target == "" {
				target = sample.Filename
			}

			if target == "" {
				target = "-"
			}

			tasks := make([]string, 0, len(sample.Tasks))
			for _, task := range sample.Tasks {
				tasks = append(tasks, task.ID)
			}

			_ = table.Append(sample.ID, string(sample.Status), strings.Join(tasks, ","),
				target, sample.Submitted.Format("2006-01-02 15:04"))
		}

		return table.Render()
	})
}
