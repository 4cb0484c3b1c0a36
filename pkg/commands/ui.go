package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	yo := &options.YearOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the roadmap board",
		Long: options.Wrap80("Open the roadmap board. Drag a feature to move it, drag its first or " +
			"last cell to resize it, and drop it on another lane to change its theme."),
		Example: `
roadmap ui
roadmap ui --year 2026 --roadmap Platform
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(true)
			if err != nil {
				return err
			}
			defer s.Close()
			i := ui.UI{
				Service: s.svc,
				Year:    s.year(yo.Year),
				Order:   s.order(yo.SortByStart),
				Log:     s.log,
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddYearArgs(cmd, yo)
	options.AddSortArgs(cmd, yo)

	topLevel.AddCommand(cmd)
}
