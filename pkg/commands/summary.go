package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/runner/summary"
)

func addSummary(topLevel *cobra.Command) {
	yo := &options.YearOptions{}
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:     "summary",
		Aliases: []string{"stats"},
		Short:   "print statistics for a roadmap year",
		Example: `
roadmap summary
roadmap summary --year 2026 -o json
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return fo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()
			r := summary.Summary{
				Service: s.svc,
				Year:    s.year(yo.Year),
				Format:  fo.Output,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddYearArgs(cmd, yo)
	options.AddFormatArg(cmd, fo)

	topLevel.AddCommand(cmd)
}
