// SPDX-License-Identifier: MIT

// Package pairwise computes the full recipe×recipe EMD matrix.
//
// Every unordered pair (i, j), i < j, is solved once on the union of the two
// rows' precomputed supports and mirrored into (j, i). The diagonal is 0 by
// definition. Pairs are independent, so rows can be spread over a bounded
// errgroup; each task owns the cells of its row pairs and no locking is
// needed on the matrix. Cancellation is observed between pairs, never
// mid-solve.
package pairwise

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/barmetric/emd"
	"github.com/katalvlaran/barmetric/matrix"
)

// ErrNilInput is returned when volumes or cost is nil.
var ErrNilInput = errors.New("pairwise: nil input matrix")

// ErrInitialShape is returned when the WithInitial matrix is not r×r.
var ErrInitialShape = errors.New("pairwise: initial matrix shape mismatch")

// Pair identifies an unordered recipe pair with I < J.
type Pair struct {
	I, J int
}

// NewPair orders i and j.
func NewPair(i, j int) Pair {
	if i > j {
		i, j = j, i
	}

	return Pair{I: i, J: j}
}

// Result holds the distance matrix and, when requested, the plans.
// Completed counts solved pairs; it equals Total unless the run was cancelled.
type Result struct {
	Distances *matrix.Dense
	Plans     map[Pair]emd.Plan
	Completed int64
	Total     int64
}

// Engine computes pairwise EMD matrices. An Engine is immutable after
// NewEngine and may be reused across rounds.
type Engine struct {
	solver      emd.Solver
	concurrency int
	plans       bool
	progress    ProgressSink
	every       int64
	logger      zerolog.Logger
	initial     *matrix.Dense
}

// NewEngine returns a sequential engine using emd.NewNetworkSolver unless
// options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		solver:      emd.NewNetworkSolver(),
		concurrency: 1,
		progress:    NopProgress{},
		every:       1,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	return e
}

// Concurrency reports the configured worker bound (1 means sequential).
func (e *Engine) Concurrency() int {
	if e.concurrency < 1 {
		return 1
	}

	return e.concurrency
}

// run is the per-call state shared by workers.
type run struct {
	e       *Engine
	cost    matrix.Matrix
	rows    [][]float64
	support [][]int
	out     []float64
	r       int

	mu    sync.Mutex
	plans map[Pair]emd.Plan

	done  atomic.Int64
	total int64
}

// Compute returns the r×r EMD matrix for the rows of volumes under cost.
//
// Stage 1 (Validate): non-nil inputs, volumes.Cols() == cost dimension.
// Stage 2 (Prepare):  dense copy and support of each row, output seeded
// from WithInitial or zeros.
// Stage 3 (Execute):  solve every i<j pair sequentially or on an errgroup.
//
// On cancellation the partial Result is returned together with the context
// error: solved cells are valid, the rest keep their initial values.
//
// Errors: ErrNilInput, *emd.ShapeMismatchError, ErrInitialShape, solver
// errors (wrapped with the pair), ctx.Err().
// Complexity: O(r²) solves; memory O(r·n + r²).
func (e *Engine) Compute(ctx context.Context, volumes, cost matrix.Matrix) (*Result, error) {
	// Stage 1: validate.
	if volumes == nil || cost == nil {
		return nil, ErrNilInput
	}
	n := cost.Rows()
	if cost.Cols() != n || volumes.Cols() != n {
		return nil, fmt.Errorf("pairwise: Compute: %w",
			&emd.ShapeMismatchError{Want: n, GotA: volumes.Cols(), GotB: cost.Cols()})
	}
	r := volumes.Rows()

	// Stage 2: prepare.
	var d *matrix.Dense
	if e.initial != nil {
		if e.initial.Rows() != r || e.initial.Cols() != r {
			return nil, fmt.Errorf("pairwise: Compute: initial %dx%d for %d recipes: %w",
				e.initial.Rows(), e.initial.Cols(), r, ErrInitialShape)
		}
		d = e.initial.Copy()
	} else {
		var err error
		if d, err = matrix.NewDense(r, r); err != nil {
			return nil, fmt.Errorf("pairwise: Compute: %w", err)
		}
	}
	st := &run{
		e:       e,
		cost:    cost,
		rows:    make([][]float64, r),
		support: make([][]int, r),
		out:     d.Data(),
		r:       r,
		total:   int64(r) * int64(r-1) / 2,
	}
	for i := 0; i < r; i++ {
		st.rows[i] = make([]float64, n)
		if err := matrix.RowInto(st.rows[i], volumes, i); err != nil {
			return nil, fmt.Errorf("pairwise: Compute: row %d: %w", i, err)
		}
		st.support[i] = emd.Support(st.rows[i])
		st.out[i*r+i] = 0
	}
	if e.plans {
		st.plans = make(map[Pair]emd.Plan, st.total)
	}

	// Stage 3: execute.
	start := time.Now()
	workers := e.Concurrency()
	e.logger.Debug().
		Int("recipes", r).
		Int("ingredients", n).
		Int64("pairs", st.total).
		Int("concurrency", workers).
		Msg("pairwise emd started")
	e.progress.Pairs(0, st.total)

	var err error
	if workers == 1 {
		err = st.sequential(ctx)
	} else {
		err = st.parallel(ctx, workers)
	}

	res := &Result{Distances: d, Plans: st.plans, Completed: st.done.Load(), Total: st.total}
	if err != nil {
		e.logger.Warn().Err(err).
			Int64("completed", res.Completed).
			Int64("pairs", res.Total).
			Msg("pairwise emd stopped early")
		return res, fmt.Errorf("pairwise: Compute: %w", err)
	}
	e.logger.Info().
		Int("recipes", r).
		Int64("pairs", res.Total).
		Dur("elapsed", time.Since(start)).
		Msg("pairwise emd finished")

	return res, nil
}

func (st *run) sequential(ctx context.Context) error {
	for i := 0; i < st.r; i++ {
		if err := st.row(ctx, i); err != nil {
			return err
		}
	}

	return nil
}

// parallel hands one row (all j > i) to each task. Rows are queued in
// order, so the shrinking tail keeps workers busy.
func (st *run) parallel(ctx context.Context, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < st.r-1; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error { return st.row(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}

// row solves (i, j) for every j > i, checking ctx before each pair.
func (st *run) row(ctx context.Context, i int) error {
	opts := make([]emd.Option, 0, 2)
	for j := i + 1; j < st.r; j++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		opts = append(opts[:0], emd.WithSupport(emd.Union(st.support[i], st.support[j])))
		if st.plans != nil {
			opts = append(opts, emd.WithPlan())
		}
		res, err := st.e.solver.Solve(st.rows[i], st.rows[j], st.cost, opts...)
		if err != nil {
			return fmt.Errorf("pair (%d,%d): %w", i, j, err)
		}

		st.out[i*st.r+j] = res.Distance
		st.out[j*st.r+i] = res.Distance
		if st.plans != nil {
			st.mu.Lock()
			st.plans[Pair{I: i, J: j}] = res.Plan
			st.mu.Unlock()
		}

		done := st.done.Add(1)
		if done%st.e.every == 0 || done == st.total {
			st.e.progress.Pairs(done, st.total)
		}
	}

	return nil
}
