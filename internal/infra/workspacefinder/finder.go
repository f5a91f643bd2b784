package workspacefinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/ports"
)

// ConfigFile is the name that marks a workspace root.
const ConfigFile = "sumlist.yaml"

// Finder walks from a start directory up to the filesystem root and stops
// at the first directory holding a sumlist.yaml file.
type Finder struct{}

func NewFinder() *Finder {
	return &Finder{}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("start directory is empty: %w", domain.ErrInvalidConfig),
		}
	}

	start, err := searchStart(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Path: startDir,
			Err:  err,
		}
	}

	for dir := start; ; {
		if isWorkspace(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", &domain.OpError{
		Op:   "workspacefinder.findroot",
		Kind: domain.KindNotFound,
		Path: start,
		Err:  fmt.Errorf("no %s in this directory or any parent: %w", ConfigFile, domain.ErrNotFound),
	}
}

// searchStart makes p absolute and steps out of it when it names a file.
func searchStart(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return filepath.Clean(abs), nil
}

func isWorkspace(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ConfigFile))
	return err == nil && !info.IsDir()
}
