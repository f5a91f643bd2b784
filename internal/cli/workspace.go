package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/infra/listfile"
	"github.com/aalvaropc/sumlist/internal/infra/logger"
	"github.com/aalvaropc/sumlist/internal/infra/workspacefinder"
	"github.com/aalvaropc/sumlist/internal/ports"
)

type appCtx struct {
	root    string // empty when no workspace was found
	cfg     domain.Config
	catalog ports.ListCatalog

	policy domain.Policy
	format string
	log    *slog.Logger
}

// loadApp resolves the optional workspace, merges flags over sumlist.yaml and
// sets up the file logger. The returned cleanup is never nil.
func loadApp(cmd *cobra.Command, g *globalFlags) (*appCtx, func(), error) {
	noop := func() {}

	root, err := resolveWorkspaceRoot(workspacefinder.NewFinder(), g.workspace)
	if err != nil {
		return nil, noop, err
	}

	cfg := domain.DefaultConfig()
	if root != "" {
		cfg, err = workspacefinder.LoadConfig(root)
		// A --workspace directory without sumlist.yaml runs on defaults.
		if err != nil && !domain.IsKind(err, domain.KindNotFound) {
			return nil, noop, err
		}
	}

	app := &appCtx{
		root:   root,
		cfg:    cfg,
		policy: cfg.Defaults.Policy,
		format: cfg.Defaults.Format,
	}
	app.catalog = app.source("")

	if cmd.Flags().Changed("policy") {
		p, err := domain.ParsePolicy(g.policy)
		if err != nil {
			return nil, noop, err
		}
		app.policy = p
	}
	if cmd.Flags().Changed("format") {
		f, err := domain.ParseFormat(g.format)
		if err != nil {
			return nil, noop, err
		}
		app.format = f
	}

	cleanup := noop
	if root != "" {
		closeLog, lerr := logger.Setup(logger.Config{
			Root:  root,
			Dir:   cfg.Paths.LogsDir,
			Debug: g.debug,
		})
		if lerr == nil && closeLog != nil {
			cleanup = func() { _ = closeLog() }
		}
	}
	if g.debug {
		if logger.IsReady() == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "debug log: %s\n", logger.Path())
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "debug log: disabled")
		}
	}
	app.log = logger.L()
	app.log.Debug("cli.start", "command", cmd.CommandPath(), "root", root, "policy", string(app.policy))

	return app, cleanup, nil
}

func (a *appCtx) source(jsonPath string) *listfile.Source {
	return listfile.NewSource(
		listfile.WithListsDir(a.cfg.Paths.ListsDir),
		listfile.WithJSONPath(jsonPath),
	)
}

// resolveWorkspaceRoot returns "" when no flag is given and no sumlist.yaml
// exists above the working directory.
func resolveWorkspaceRoot(loc ports.WorkspaceLocator, workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	root, err := loc.FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return "", nil
		}
		return "", err
	}
	return root, nil
}

func resolveListPath(app *appCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		return "", fmt.Errorf("list file is required")
	}

	if looksLikePath(in) || fileExists(in) {
		p := in
		if !filepath.IsAbs(p) && app.root != "" && !fileExists(p) {
			p = filepath.Join(app.root, p)
		}
		return filepath.Clean(p), nil
	}

	if app.root == "" {
		return "", &domain.OpError{
			Op:   "cli.resolve_list",
			Kind: domain.KindNotFound,
			Path: in,
			Err:  fmt.Errorf("list file %q not found and no workspace to search (tip: run `sumlist init`): %w", in, domain.ErrNotFound),
		}
	}

	listsDir := filepath.Join(app.root, app.cfg.Paths.ListsDir)

	// "example.yaml" is a file under the lists dir.
	if listfile.Supported(in) {
		p := filepath.Join(listsDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	// "example" tries each supported extension.
	for _, ext := range []string{".yaml", ".yml", ".json", ".hcl"} {
		p := filepath.Join(listsDir, in+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	return "", &domain.OpError{
		Op:   "cli.resolve_list",
		Kind: domain.KindNotFound,
		Path: listsDir,
		Err:  fmt.Errorf("list file %q not found: %w", in, domain.ErrNotFound),
	}
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
