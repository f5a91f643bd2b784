package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/ports"
	"github.com/aalvaropc/sumlist/internal/usecase"
)

func runCmd(g *globalFlags) *cobra.Command {
	var listName string
	var jsonPath string

	c := &cobra.Command{
		Use:   "run FILE|NAME",
		Short: "Sum the lists in a YAML, JSON or HCL file",
		Long: `Sum the lists in a file. The extension picks the format:
.yaml/.yml (lists: [{name, values}] or a bare sequence), .json (selected
with --jsonpath) and .hcl (list "name" { values = [...] } blocks).
A bare NAME is looked up in the workspace lists directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := resolveListPath(app, args[0])
			if err != nil {
				return err
			}

			var src ports.ListSource = app.source(jsonPath)
			if strings.TrimSpace(listName) != "" {
				src = namedListFilter{next: src, name: strings.TrimSpace(listName)}
			}

			uc := usecase.NewSumLists(usecase.WithPolicy(app.policy), usecase.WithLogger(app.log))
			report, err := uc.ExecuteSource(cmd.Context(), src, path)
			return finish(cmd, app, report, err)
		},
	}

	c.Flags().StringVarP(&listName, "list", "l", "", "Only sum the list with this name")
	c.Flags().StringVar(&jsonPath, "jsonpath", "$", "JSONPath selecting the list in .json files")
	return c
}

// namedListFilter keeps the list whose name matches, case-insensitively.
type namedListFilter struct {
	next ports.ListSource
	name string
}

func (f namedListFilter) LoadLists(path string) ([]domain.NamedList, error) {
	lists, err := f.next.LoadLists(path)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(lists))
	for _, l := range lists {
		if strings.EqualFold(l.Name, f.name) {
			return []domain.NamedList{l}, nil
		}
		names = append(names, l.Name)
	}

	return nil, &domain.OpError{
		Op:   "cli.select_list",
		Kind: domain.KindNotFound,
		Path: path,
		Err:  fmt.Errorf("list %q not found (available: %s): %w", f.name, strings.Join(names, ", "), domain.ErrNotFound),
	}
}
