package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/myrtus0x0/triage/internal/constants"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// NewSelectProfileCommand creates the select-profile command.
func NewSelectProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select-profile SAMPLE",
		Short: "Interactively select profiles for an interactive submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			return selectProfileFlow(cmd.Context(), client, args[0])
		},
	}
}

// selectProfileFlow waits for static analysis, prompts for files and
// profiles, and falls back to automatic selection when nothing is chosen.
func selectProfileFlow(ctx context.Context, client triage.Client, sampleID string) error {
	err := waitForStaticAnalysis(ctx, client, sampleID)
	if err != nil {
		return err
	}

	static, err := client.StaticReport(ctx, sampleID)
	if err != nil {
		return err
	}

	pick, defaultSelection, err := promptSelectFiles(static)
	if err != nil {
		return err
	}

	// Fetch profiles before deciding on automatic selection; with no
	// profiles available the only option is automatic.
	profiles, err := client.Profiles(ctx, constants.DefaultMaxResults).All()
	if err != nil {
		return err
	}

	if defaultSelection || len(profiles) == 0 {
		if len(profiles) == 0 {
			fmt.Println("No profiles are available, using automatic profiles instead.")
		}

		return client.SetSampleProfileAutomatic(ctx, sampleID, pick)
	}

	selections, err := promptSelectProfiles(profiles, pick)
	if err != nil {
		return err
	}

	if len(selections) == 0 {
		fmt.Println("Skipping profile selection, choosing automatically")

		return client.SetSampleProfileAutomatic(ctx, sampleID, pick)
	}

	return client.SetSampleProfile(ctx, sampleID, selections)
}

// waitForStaticAnalysis consumes the event stream until the sample reaches
// static analysis.
func waitForStaticAnalysis(ctx context.Context, client triage.Client, sampleID string) error {
	events, err := client.SampleEvents(ctx, sampleID)
	if err != nil {
		return err
	}
	defer func() { _ = events.Close() }()

	for {
		event, err := events.Next()
		if err != nil {
			if errors.Is(err, triage.ErrEndOfStream) {
				return constants.ErrProfileNotNeeded
			}

			return err
		}

		switch event.Status {
		case triage.SampleStatusPending:
			fmt.Println("waiting for static analysis to finish")
		case triage.SampleStatusStaticAnalysis:
			return nil
		case triage.SampleStatusFailed:
			return constants.ErrSampleFailed
		default:
			return constants.ErrProfileNotNeeded
		}
	}
}

// promptSelectFiles asks which archive members to analyze. An empty
// selection keeps the server's emphasized files and automatic profiles.
func promptSelectFiles(static *triage.StaticReport) (pick []string, defaultSelection bool, err error) {
	if len(static.Files) == 0 {
		return nil, true, nil
	}

	options := make([]huh.Option[string], 0, len(static.Files))
	for _, file := range static.Files {
		options = append(options, huh.NewOption(file.Filename, file.Relpath))
	}

	var selected []string

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Select the files from the archive to analyze").
			Description("Leave blank to continue with the emphasized files and automatic profiles.").
			Options(options...).
			Value(&selected),
	))

	err = form.Run()
	if err != nil {
		return nil, false, fmt.Errorf("selecting files: %w", err)
	}

	if len(selected) == 0 {
		fmt.Println("Using default selection")

		for _, file := range static.Files {
			if file.Selected {
				pick = append(pick, file.Relpath)
			}
		}

		return pick, true, nil
	}

	return selected, false, nil
}

// promptSelectProfiles asks which profiles to run for every picked file.
func promptSelectProfiles(profiles []triage.Profile, pick []string) ([]triage.ProfileSelection, error) {
	options := make([]huh.Option[string], 0, len(profiles))
	for _, profile := range profiles {
		options = append(options, huh.NewOption(profile.Name, profile.ID))
	}

	var selections []triage.ProfileSelection

	for _, target := range pick {
		var selected []string

		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select the profiles to use for " + target).
				Options(options...).
				Value(&selected),
		))

		err := form.Run()
		if err != nil {
			return nil, fmt.Errorf("selecting profiles: %w", err)
		}

		for _, profileID := range selected {
			selections = append(selections, triage.ProfileSelection{
				Profile: profileID,
				Pick:    target,
			})
		}
	}

	return selections, nil
}
