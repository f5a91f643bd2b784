package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/sumlist/internal/domain"
)

func listsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "List the list files in a workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer cleanup()

			if app.root == "" {
				return &domain.OpError{
					Op:   "workspacefinder.findroot",
					Kind: domain.KindNotFound,
					Err:  fmt.Errorf("no sumlist.yaml found (tip: run `sumlist init`): %w", domain.ErrNotFound),
				}
			}

			refs, err := app.catalog.ListFiles(app.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no list files found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", app.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(app.root, r.Path)
				names := "unreadable"
				if len(r.Names) > 0 {
					names = strings.Join(r.Names, ", ")
				}
				fmt.Fprintf(out, "- %s  (%s)\n", rel, names)
			}
			return nil
		},
	}
}
