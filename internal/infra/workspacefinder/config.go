package workspacefinder

import (
	"os"
	"path/filepath"

	"github.com/aalvaropc/sumlist/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads sumlist.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	if y.Sumlist.Defaults.Policy != "" {
		p, err := domain.ParsePolicy(y.Sumlist.Defaults.Policy)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Defaults.Policy = p
	}
	if y.Sumlist.Defaults.Format != "" {
		f, err := domain.ParseFormat(y.Sumlist.Defaults.Format)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Defaults.Format = f
	}
	if y.Sumlist.Paths.ListsDir != "" {
		cfg.Paths.ListsDir = y.Sumlist.Paths.ListsDir
	}
	if y.Sumlist.Paths.LogsDir != "" {
		cfg.Paths.LogsDir = y.Sumlist.Paths.LogsDir
	}

	return cfg, nil
}

type yamlConfig struct {
	Sumlist struct {
		Defaults struct {
			Policy string `yaml:"policy"`
			Format string `yaml:"format"`
		} `yaml:"defaults"`

		Paths struct {
			ListsDir string `yaml:"lists_dir"`
			LogsDir  string `yaml:"logs_dir"`
		} `yaml:"paths"`
	} `yaml:"sumlist"`
}
