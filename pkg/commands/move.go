package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/commands/options"
	"tableflip.dev/roadmap/pkg/drag"
	rdrag "tableflip.dev/roadmap/pkg/runner/drag"
)

func parseDelta(s string) (int, error) {
	d, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("months must be a whole number, got %q", s)
	}
	return d, nil
}

func runDrag(cmd *cobra.Command, d *rdrag.Drag) error {
	s, err := openSession(false)
	if err != nil {
		return oo.HandleError(err)
	}
	defer s.Close()
	d.Service = s.svc
	d.Log = s.log
	return oo.HandleError(d.Do(cmd.Context()))
}

func addMove(topLevel *cobra.Command) {
	theme := ""

	cmd := &cobra.Command{
		Use:   "move <id> <months>",
		Short: "shift a feature by whole months",
		Long: options.Wrap80("Shift a feature by whole months, keeping its duration. The feature " +
			"stops at January and December. Use -- before a negative number of months."),
		Example: `
roadmap move <id> 2
roadmap move <id> -- -1
roadmap move <id> 0 --theme <theme id>
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: featureCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseDelta(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			d := &rdrag.Drag{Kind: drag.Move, ID: args[0], Delta: delta}
			if cmd.Flags().Changed("theme") {
				id := theme
				if id == options.Ungrouped {
					id = ""
				}
				d.ThemeID = &id
			}
			return runDrag(cmd, d)
		},
	}

	cmd.Flags().StringVarP(&theme, "theme", "t", "", `Drop the feature on this theme's lane, or "-" for Unassigned.`)
	_ = cmd.RegisterFlagCompletionFunc("theme", themeCompletions)

	topLevel.AddCommand(cmd)
}

func addResize(topLevel *cobra.Command) {
	startEdge := false
	endEdge := false

	cmd := &cobra.Command{
		Use:   "resize <id> <months>",
		Short: "drag the start or end edge of a feature",
		Long: options.Wrap80("Drag the start or end edge of a feature by whole months. An edge " +
			"never passes the other one, so a feature is always at least one month long."),
		Example: `
roadmap resize <id> 2 --end-edge
roadmap resize <id> --start-edge -- -1
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: featureCompletions,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if startEdge == endEdge {
				return fmt.Errorf("pick one of --start-edge or --end-edge")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := parseDelta(args[1])
			if err != nil {
				return oo.HandleError(err)
			}
			kind := drag.ResizeEnd
			if startEdge {
				kind = drag.ResizeStart
			}
			return runDrag(cmd, &rdrag.Drag{Kind: kind, ID: args[0], Delta: delta})
		},
	}

	cmd.Flags().BoolVar(&startEdge, "start-edge", false, "Move the start month.")
	cmd.Flags().BoolVar(&endEdge, "end-edge", false, "Move the end month.")

	topLevel.AddCommand(cmd)
}

func addAssign(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "assign <id> <theme id|->",
		Short: "move a feature to another theme's lane",
		Example: `
roadmap assign <id> <theme id>
roadmap assign <id> -
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: featureCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[1]
			if id == options.Ungrouped {
				id = ""
			}
			return runDrag(cmd, &rdrag.Drag{Kind: drag.Move, ID: args[0], ThemeID: &id})
		},
	}

	topLevel.AddCommand(cmd)
}
