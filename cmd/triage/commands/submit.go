package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/myrtus0x0/triage/internal/constants"
	"github.com/myrtus0x0/triage/pkg/triage"
)

// SubmitOptions holds the options for submitting a sample.
type SubmitOptions struct {
	Interactive bool
	Profiles    []string
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand() *cobra.Command {
	var opts SubmitOptions

	cmd := &cobra.Command{
		Use:   "submit TARGET",
		Short: "Submit a file or URL for analysis",
		Long: `Submit a sample for analysis. TARGET is a local file path or a URL;
an existing file path is submitted as a file, anything else as a URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmitCommand(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Interactive, "interactive", "i", false,
		"perform interactive submission where you can manually select the profile and files")
	cmd.Flags().StringArrayVarP(&opts.Profiles, "profile", "p", nil, "the profile names or IDs to use")

	return cmd
}

func runSubmitCommand(cmd *cobra.Command, target string, opts SubmitOptions) error {
	if opts.Interactive && len(opts.Profiles) > 0 {
		return constants.ErrInteractiveWithProfiles
	}

	client, err := createClient()
	if err != nil {
		return err
	}

	profiles := make([]triage.ProfileSelection, 0, len(opts.Profiles))
	for _, profile := range opts.Profiles {
		profiles = append(profiles, triage.ProfileSelection{Profile: profile})
	}

	ctx := cmd.Context()

	var sample *triage.Sample

	if _, statErr := os.Stat(target); statErr == nil {
		file, openErr := os.Open(target)
		if openErr != nil {
			return fmt.Errorf("opening sample file: %w", openErr)
		}
		defer func() { _ = file.Close() }()

		sample, err = client.SubmitSampleFile(ctx, filepath.Base(target), file, opts.Interactive, profiles)
	} else {
		sample, err = client.SubmitSampleURL(ctx, target, opts.Interactive, profiles)
	}

	if err != nil {
		return err
	}

	fmt.Println("Sample submitted")
	fmt.Println("  ID:      ", sample.ID)
	fmt.Println("  Status:  ", sample.Status)

	if sample.Kind == triage.SampleKindFile {
		fmt.Println("  Filename:", sample.Filename)
	} else {
		fmt.Println("  URL:     ", sample.URL)
	}

	if opts.Interactive {
		// Give static analysis a moment before prompting for profiles.
		time.Sleep(2 * time.Second)

		return selectProfileFlow(ctx, client, sample.ID)
	}

	return nil
}
