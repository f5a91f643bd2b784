package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/aalvaropc/sumlist/internal/domain"
)

type jsonReport struct {
	Policy  string       `json:"policy"`
	Count   int          `json:"count"`
	Skipped int          `json:"skipped"`
	Results []jsonResult `json:"results"`
}

type jsonResult struct {
	Name    string `json:"name"`
	Source  string `json:"source,omitempty"`
	Sum     any    `json:"sum"`
	Kind    string `json:"kind"`
	Count   int    `json:"count"`
	Skipped []int  `json:"skipped"`
}

func printReport(w io.Writer, report domain.Report, format string) error {
	f, err := domain.ParseFormat(format)
	if err != nil {
		return err
	}

	if f == domain.FormatPretty {
		for _, r := range report.Results {
			fmt.Fprintln(w, prettyLine(r.Sum))
		}
		return nil
	}

	out := jsonReport{Policy: string(report.Policy), Results: make([]jsonResult, 0, len(report.Results))}
	counts := make([]int, 0, len(report.Results))
	skips := make([]int, 0, len(report.Results))
	for _, r := range report.Results {
		skipped := r.Sum.Skipped
		if skipped == nil {
			skipped = []int{}
		}
		out.Results = append(out.Results, jsonResult{
			Name:    r.Name,
			Source:  r.Source,
			Sum:     jsonSum(r.Sum.Total),
			Kind:    string(r.Sum.Total.Kind),
			Count:   r.Sum.Count,
			Skipped: skipped,
		})
		counts = append(counts, r.Sum.Count)
		skips = append(skips, len(skipped))
	}
	out.Count = domain.SumOf(counts)
	out.Skipped = domain.SumOf(skips)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func prettyLine(s domain.SumResult) string {
	line := "The sum of the list is: " + s.Total.String()
	switch n := len(s.Skipped); {
	case n == 1:
		line += " (skipped 1 element)"
	case n > 1:
		line += fmt.Sprintf(" (skipped %d elements)", n)
	}
	return line
}

// jsonSum keeps the printed digits. JSON has no nan or inf so those become strings.
func jsonSum(v domain.Value) any {
	if v.Kind == domain.ValueFloat && (math.IsNaN(v.Float) || math.IsInf(v.Float, 0)) {
		return v.String()
	}
	return json.Number(v.String())
}
