package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/infra/yamllist"
	"github.com/aalvaropc/sumlist/internal/usecase"
)

const (
	demoValid = "[1, 2, 3, 4, 5]"
	demoMixed = "[1, 2, '3', 4, 5]"
)

func demoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Sum " + demoValid + " and then " + demoMixed,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, g)
		},
	}
}

func demoLists() []domain.NamedList {
	return []domain.NamedList{
		{Name: "first", Values: yamllist.MustParseLiteral(demoValid)},
		{Name: "second", Values: yamllist.MustParseLiteral(demoMixed)},
	}
}

func runDemo(cmd *cobra.Command, g *globalFlags) error {
	app, cleanup, err := loadApp(cmd, g)
	if err != nil {
		return err
	}
	defer cleanup()

	uc := usecase.NewSumLists(usecase.WithPolicy(app.policy), usecase.WithLogger(app.log))
	report, err := uc.Execute(cmd.Context(), demoLists())
	return finish(cmd, app, report, err)
}

// finish prints whatever completed, then returns the run error.
func finish(cmd *cobra.Command, app *appCtx, report domain.Report, runErr error) error {
	if runErr == nil || len(report.Results) > 0 {
		if err := printReport(cmd.OutOrStdout(), report, app.format); err != nil {
			return err
		}
	}
	return runErr
}
