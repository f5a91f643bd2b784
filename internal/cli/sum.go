package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/infra/yamllist"
	"github.com/aalvaropc/sumlist/internal/usecase"
)

func sumCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sum LIST...",
		Short: "Sum list literals such as '[1, 2.5, 3]'",
		Example: `  sumlist sum '[1, 2, 3, 4, 5]'
  sumlist sum --policy skip "[1, 2, '3', 4, 5]"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer cleanup()

			lists := make([]domain.NamedList, 0, len(args))
			for i, a := range args {
				values, err := yamllist.ParseLiteral(a)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				lists = append(lists, domain.NamedList{Name: a, Values: values})
			}

			uc := usecase.NewSumLists(usecase.WithPolicy(app.policy), usecase.WithLogger(app.log))
			report, err := uc.Execute(cmd.Context(), lists)
			return finish(cmd, app, report, err)
		},
	}
}
