package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/myrtus0x0/triage/pkg/triage"
)

// ReportOptions holds the options for the report command.
type ReportOptions struct {
	Static bool
	Task   string
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	var opts ReportOptions

	cmd := &cobra.Command{
		Use:   "report SAMPLE",
		Short: "Show a sample report",
		Long:  "Show the overview report of a sample, its static report, or the report of a single task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			switch {
			case opts.Static:
				report, err := client.StaticReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return outputObject(report, func() error {
					renderStaticReport(report)

					return nil
				})
			case opts.Task != "":
				report, err := client.TaskReport(cmd.Context(), args[0], opts.Task)
				if err != nil {
					return err
				}

				return outputObject(report, func() error {
					renderTaskReport(opts.Task, report)

					return nil
				})
			default:
				report, err := client.OverviewReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return outputObject(report, func() error {
					renderOverviewReport(report)

					return nil
				})
			}
		},
	}

	cmd.Flags().BoolVar(&opts.Static, "static", false, "query the static report")
	cmd.Flags().StringVarP(&opts.Task, "task", "t", "", "the ID of the task report")

	return cmd
}

func renderStaticReport(report *triage.StaticReport) {
	fmt.Println("~Static Report~")

	for _, file := range report.Files {
		selected := ""
		if file.Selected {
			selected = " (selected)"
		}

		fmt.Printf("%s%s\n", file.Filename, selected)
		fmt.Println("  md5: ", file.MD5)
		fmt.Println("  tags:", strings.Join(file.Tags, ","))
		fmt.Println("  kind:", file.Kind)
	}
}

func renderTaskReport(taskID string, report *triage.TaskReport) {
	fmt.Printf("~%s Report~\n", taskID)

	if len(report.Errors) > 0 {
		for _, reportErr := range report.Errors {
			fmt.Println("error:", reportErr.Reason)
		}

		return
	}

	fmt.Println(report.Task.Target)
	fmt.Println("  md5:  ", report.Task.MD5)

	if report.Analysis != nil {
		fmt.Println("  score:", report.Analysis.Score)
		fmt.Println("  tags: ", strings.Join(report.Analysis.Tags, ","))
	}
}

func renderOverviewReport(report *triage.OverviewReport) {
	fmt.Println("~Overview~")

	if len(report.Errors) > 0 {
		fmt.Println("Triage produced the following errors:")

		for _, reportErr := range report.Errors {
			fmt.Printf("  %s: %s\n", reportErr.Task, reportErr.Reason)
		}
	}

	fmt.Println(report.Sample.Target)
	fmt.Println("  md5:   ", report.Sample.MD5)

	if report.Analysis != nil {
		fmt.Println("  score: ", report.Analysis.Score)
		fmt.Println("  family:", strings.Join(report.Analysis.Family, ","))
		fmt.Println("  tags:  ", strings.Join(report.Analysis.Tags, ","))
	}

	fmt.Println()

	for _, task := range report.Tasks {
		fmt.Println(" ", task.Name)
		fmt.Println("    score:", task.Score)

		if task.Kind != "static" {
			fmt.Println("    platform:", task.Platform)
		}

		fmt.Println("    tags:", strings.Join(task.Tags, ","))
	}
}
