package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/sumlist/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var ee *domain.ElementError
	if errors.As(err, &ee) {
		return ee.Error()
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindNotFound:
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace not found"
			}
			if strings.Contains(oe.Op, "select_list") {
				return "List not found"
			}
			return "List file not found"

		case domain.KindOverflow:
			return "Integer overflow"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid config at " + base + " line " + line
			}
			return "Invalid config at " + base

		case domain.KindInvalidInput:
			base := "input"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}
			if line := extractLine(err.Error()); line != "" {
				return "Invalid list at " + base + " line " + line
			}
			return "Invalid list at " + base

		default:
			return "Unexpected error (see logs)"
		}
	}

	if errors.Is(err, domain.ErrInvalidConfig) {
		return "Invalid config"
	}
	return "Unexpected error"
}

// renderError writes the short message and, when it adds anything, the full cause.
func renderError(w io.Writer, err error) {
	if err == nil {
		return
	}
	t := newTheme(w)

	msg := userMessage(err)
	fmt.Fprintln(w, t.Label.Render("error:")+" "+msg)

	detail := err.Error()
	if detail != msg {
		fmt.Fprintln(w, "  "+t.Detail.Render(detail))
	}
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
