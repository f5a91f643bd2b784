package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	workspace string
	policy    string
	format    string
	debug     bool
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		renderError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "sumlist",
		Short:         "sumlist sums the numeric elements of lists",
		Long:          "Without a subcommand, sumlist sums [1, 2, 3, 4, 5] and then [1, 2, '3', 4, 5].",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, g)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected from sumlist.yaml if omitted)")
	pf.StringVar(&g.policy, "policy", "", "Non-numeric element policy: reject|skip (default from sumlist.yaml, else reject)")
	pf.StringVar(&g.format, "format", "", "Output format: pretty|json (default from sumlist.yaml, else pretty)")
	pf.BoolVar(&g.debug, "debug", false, "enable verbose logging to .sumlist/logs/sumlist.log")

	cmd.AddCommand(
		demoCmd(g),
		sumCmd(g),
		runCmd(g),
		listsCmd(g),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
