package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myrtus0x0/triage/pkg/triage"
)

// NewEventsCommand creates the events command.
func NewEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events SAMPLE_ID",
		Short: "Stream status events of a running sample",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			events, err := client.SampleEvents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer func() { _ = events.Close() }()

			for {
				event, err := events.Next()
				if errors.Is(err, triage.ErrEndOfStream) {
					return nil
				}

				if err != nil {
					return err
				}

				printEvent(event)
			}
		},
	}
}

func printEvent(event *triage.SampleEvent) {
	target := event.Filename
	if target == "" {
		target = event.URL
	}

	if target != "" {
		fmt.Printf("%s %s %s\n", event.Status, event.ID, target)

		return
	}

	fmt.Printf("%s %s\n", event.Status, event.ID)
}
