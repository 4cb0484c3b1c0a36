package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(roadmap completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(roadmap completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// completionService opens storage quietly for shell completion.
func completionService() (*app.Service, bool) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, false
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, false
	}
	name := cfg.Roadmap
	if ro.Roadmap != "" {
		name = ro.Roadmap
	}
	return &app.Service{Persistence: p, Roadmap: name}, true
}

func featureCompletions(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, ok := completionService()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	features, err := svc.Features(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(features))
	for _, f := range features {
		out = append(out, fmt.Sprintf("%s\t%s (%d %s)", f.ID, f.Name, f.Year, f.Bounds()))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func themeCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	svc, ok := completionService()
	if !ok {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	themes, err := svc.Themes(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(themes))
	for _, t := range themes {
		out = append(out, fmt.Sprintf("%s\t%s", t.ID, t.Name))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
