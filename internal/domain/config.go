package domain

import (
	"fmt"
	"strings"
)

// Output formats understood by the console.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// ParseFormat accepts "pretty" or "json" in any case; empty means FormatPretty.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatPretty:
		return FormatPretty, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected pretty|json): %w", s, ErrInvalidConfig)
	}
}

// Config represents the sumlist configuration loaded from sumlist.yaml.
type Config struct {
	Defaults DefaultsConfig
	Paths    PathsConfig
}

type DefaultsConfig struct {
	Policy Policy
	Format string
}

type PathsConfig struct {
	ListsDir string
	LogsDir  string
}

// DefaultConfig provides sane defaults if sumlist.yaml is partially missing or absent.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Policy: PolicyReject,
			Format: FormatPretty,
		},
		Paths: PathsConfig{
			ListsDir: "lists",
			LogsDir:  ".sumlist/logs",
		},
	}
}
