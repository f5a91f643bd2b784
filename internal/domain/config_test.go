package domain

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Defaults.Policy != PolicyReject {
		t.Fatalf("expected default policy reject, got %q", cfg.Defaults.Policy)
	}
	if cfg.Defaults.Format != "pretty" {
		t.Fatalf("expected default format pretty, got %q", cfg.Defaults.Format)
	}
	if cfg.Paths.ListsDir != "lists" {
		t.Fatalf("expected lists dir=lists, got %q", cfg.Paths.ListsDir)
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", FormatPretty},
		{"pretty", FormatPretty},
		{" JSON ", FormatJSON},
	}
	for _, c := range cases {
		got, err := ParseFormat(c.in)
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for xml, got %v", err)
	}
}
