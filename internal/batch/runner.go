// Package batch runs the resolve-then-score flow over many input rows
// with bounded concurrency, preserving input order in the output.
package batch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/portscout/portscout/internal/model"
)

// DefaultConcurrency bounds simultaneous rows. Resolution and scoring both
// hit public rate-limited APIs, so this stays small.
const DefaultConcurrency = 5

// Resolver turns a raw input string into a coordinate.
type Resolver interface {
	Resolve(ctx context.Context, input string) (model.Coordinate, error)
}

// Scorer produces a visibility breakdown for a coordinate.
type Scorer interface {
	Score(ctx context.Context, pt model.Coordinate) model.Breakdown
}

// Runner fans batch rows out over a worker pool.
type Runner struct {
	resolver    Resolver
	scorer      Scorer
	concurrency int
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency overrides the worker limit. Values below one fall back
// to the default.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// NewRunner builds a Runner over the given resolver and scorer.
func NewRunner(resolver Resolver, scorer Scorer, opts ...Option) *Runner {
	r := &Runner{
		resolver:    resolver,
		scorer:      scorer,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run processes every input and returns one row per input, in input order.
// A row that fails to resolve carries its error message; it never aborts
// the rest of the batch. Run itself only errors when the context is
// cancelled.
func (r *Runner) Run(ctx context.Context, inputs []string) ([]model.BatchRow, error) {
	results := make([]model.BatchRow, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			row := model.BatchRow{Index: i, Input: input}

			coord, err := r.resolver.Resolve(gCtx, input)
			if err != nil {
				zap.L().Warn("batch: row not resolved",
					zap.Int("row", i),
					zap.String("input", input),
					zap.Error(err),
				)
				row.Err = err.Error()
				results[i] = row
				return nil // don't abort batch on individual failure
			}

			breakdown := r.scorer.Score(gCtx, coord)
			row.Coordinate = &coord
			row.Breakdown = &breakdown
			results[i] = row

			zap.L().Debug("batch: row scored",
				zap.Int("row", i),
				zap.String("coordinate", coord.Key()),
				zap.Float64("score", breakdown.Total),
				zap.String("rank", string(breakdown.Rank)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
