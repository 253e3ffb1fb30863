package pairwise

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/barmetric/emd"
	"github.com/katalvlaran/barmetric/matrix"
)

// Option configures an Engine.
type Option func(*Engine)

// WithSolver replaces the default emd.NetworkSolver. The solver must be
// safe for concurrent use when WithConcurrency > 1.
func WithSolver(s emd.Solver) Option {
	if s == nil {
		panic("pairwise: WithSolver(nil)")
	}
	return func(e *Engine) { e.solver = s }
}

// WithConcurrency bounds the number of rows solved in parallel.
// n <= 1 selects the sequential path.
func WithConcurrency(n int) Option {
	return func(e *Engine) { e.concurrency = n }
}

// WithPlans retains the transport plan of every pair in Result.Plans.
func WithPlans() Option {
	return func(e *Engine) { e.plans = true }
}

// WithProgress installs a progress sink. It is called from worker
// goroutines and must be safe for concurrent use.
func WithProgress(p ProgressSink) Option {
	if p == nil {
		panic("pairwise: WithProgress(nil)")
	}
	return func(e *Engine) { e.progress = p }
}

// WithProgressEvery reports progress every n completed pairs (and on the
// last one). Panics if n < 1.
func WithProgressEvery(n int) Option {
	if n < 1 {
		panic("pairwise: WithProgressEvery(n<1)")
	}
	return func(e *Engine) { e.every = int64(n) }
}

// WithLogger attaches a logger for run summaries.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithInitial seeds the distance matrix. Cells not reached before
// cancellation keep these values; the diagonal is always reset to 0.
func WithInitial(d *matrix.Dense) Option {
	return func(e *Engine) { e.initial = d }
}
