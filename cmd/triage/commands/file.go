package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myrtus0x0/triage/internal/constants"
)

// NewFileCommand creates the file download command.
func NewFileCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "file SAMPLE TASK FILE",
		Short: "Download a task file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			content, err := client.SampleTaskFile(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = os.Stdout.Write(content)
				if err != nil {
					return fmt.Errorf("writing to stdout: %w", err)
				}

				return nil
			}

			if output == "" {
				output = sanitizeFilename(args[2])
			}

			err = os.WriteFile(output, content, 0600)
			if err != nil {
				return fmt.Errorf("writing file: %w", err)
			}

			fmt.Println("Saved to", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "",
		"the path where the downloaded file should be saved; `-` copies the file to stdout")

	return cmd
}

// ArchiveOptions holds the options for the archive command.
type ArchiveOptions struct {
	Format string
	Output string
}

// NewArchiveCommand creates the archive download command.
func NewArchiveCommand() *cobra.Command {
	var opts ArchiveOptions

	cmd := &cobra.Command{
		Use:   "archive SAMPLE",
		Short: "Download a sample archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			var content []byte

			switch opts.Format {
			case "tar":
				content, err = client.SampleArchiveTar(cmd.Context(), args[0])
			case "zip":
				content, err = client.SampleArchiveZip(cmd.Context(), args[0])
			default:
				return fmt.Errorf("%w: %s", constants.ErrUnknownArchiveFormat, opts.Format)
			}

			if err != nil {
				return err
			}

			output := opts.Output
			if output == "-" {
				_, err = os.Stdout.Write(content)
				if err != nil {
					return fmt.Errorf("writing to stdout: %w", err)
				}

				return nil
			}

			if output == "" {
				output = fmt.Sprintf("%s.%s", args[0], opts.Format)
			}

			err = os.WriteFile(output, content, 0600)
			if err != nil {
				return fmt.Errorf("writing archive: %w", err)
			}

			fmt.Println("Saved to", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "tar", "the archive format, either tar or zip")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "",
		"the target file name; `-` copies the archive to stdout, default is the sample ID with the format extension")

	return cmd
}

// sanitizeFilename strips path separators and shell-hostile characters from
// server-provided file names before using them locally.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '<', '>', '|':
			return -1
		}

		return r
	}, name)
}
