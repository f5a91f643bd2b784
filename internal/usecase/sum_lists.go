package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/sumlist/internal/domain"
	"github.com/aalvaropc/sumlist/internal/ports"
)

type SumLists struct {
	policy domain.Policy
	log    *slog.Logger
	now    func() time.Time
}

type SumOption func(*SumLists)

func WithPolicy(p domain.Policy) SumOption {
	return func(uc *SumLists) {
		if p != "" {
			uc.policy = p
		}
	}
}

func WithLogger(l *slog.Logger) SumOption {
	return func(uc *SumLists) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) SumOption {
	return func(uc *SumLists) {
		if now != nil {
			uc.now = now
		}
	}
}

func NewSumLists(opts ...SumOption) *SumLists {
	uc := &SumLists{
		policy: domain.PolicyReject,
		log:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute sums each list in order.
//
// The first failure stops the run: the returned report holds the lists that
// completed before it, and the error names the failing list. Nothing is
// retried or recovered.
func (uc *SumLists) Execute(ctx context.Context, lists []domain.NamedList) (domain.Report, error) {
	report := domain.Report{
		Policy:    uc.policy,
		StartedAt: uc.now(),
		Results:   make([]domain.ListResult, 0, len(lists)),
	}

	for _, l := range lists {
		if err := ctx.Err(); err != nil {
			report.EndedAt = uc.now()
			return report, err
		}

		res, err := domain.Sum(l.Values, uc.policy)
		if err != nil {
			uc.log.Error("sum.failed", "list", l.Name, "source", l.Source, "policy", string(uc.policy), "err", err)
			report.EndedAt = uc.now()
			return report, fmt.Errorf("list %q: %w", l.Name, err)
		}

		uc.log.Debug("sum.done",
			"list", l.Name,
			"total", res.Total.String(),
			"kind", string(res.Total.Kind),
			"count", res.Count,
			"skipped", len(res.Skipped),
		)

		report.Results = append(report.Results, domain.ListResult{
			Name:   l.Name,
			Source: l.Source,
			Sum:    res,
		})
	}

	report.EndedAt = uc.now()
	return report, nil
}

// ExecuteSource loads lists through src and sums them.
func (uc *SumLists) ExecuteSource(ctx context.Context, src ports.ListSource, ref string) (domain.Report, error) {
	lists, err := src.LoadLists(ref)
	if err != nil {
		return domain.Report{Policy: uc.policy}, err
	}
	uc.log.Info("lists.loaded", "source", ref, "count", len(lists))
	return uc.Execute(ctx, lists)
}
