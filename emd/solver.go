package emd

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/barmetric/matrix"
)

// PlanEpsilon is the mass below which flows are dropped from a Plan.
const PlanEpsilon = 1e-10

const (
	flowEpsilon = 1e-15 // residual capacities at or below this are saturated
	costEpsilon = 1e-12 // minimum improvement accepted by a relaxation
)

// Flow is one entry of a transport plan: Mass moved From → To at unit Cost.
type Flow struct {
	From int     `json:"from"`
	To   int     `json:"to"`
	Mass float64 `json:"mass"`
	Cost float64 `json:"cost"`
}

// Plan is a sparse transport plan in original index space.
type Plan []Flow

// Total returns the summed mass of the plan.
func (p Plan) Total() float64 {
	var s float64
	for _, f := range p {
		s += f.Mass
	}

	return s
}

// Result is the outcome of one Solve call. Plan is nil unless WithPlan was given.
type Result struct {
	Distance float64
	Plan     Plan
}

// Solver computes optimal transport between two mass vectors.
// Implementations must be safe for concurrent use.
type Solver interface {
	Solve(a, b []float64, cost matrix.Matrix, opts ...Option) (Result, error)
}

// NetworkSolver is the exact min-cost-flow Solver. It holds no state.
type NetworkSolver struct{}

var _ Solver = (*NetworkSolver)(nil)

// NewNetworkSolver returns the default exact solver.
func NewNetworkSolver() *NetworkSolver { return &NetworkSolver{} }

var defaultSolver = NewNetworkSolver()

// Distance is shorthand for NewNetworkSolver().Solve(a, b, cost) returning
// only the scalar.
func Distance(a, b []float64, cost matrix.Matrix) (float64, error) {
	res, err := defaultSolver.Solve(a, b, cost)

	return res.Distance, err
}

// Solve returns the EMD between a and b under cost.
//
// Stage 1 (Validate): shapes, masses, optional support indices.
// Stage 2 (Reduce):   restrict to the support; empty support or zero total
// mass on either side returns distance 0.
// Stage 3 (Execute):  build the bipartite network on unit-normalized masses
// and augment along cheapest residual paths until no mass is left.
//
// Errors: ErrNilCost, *ShapeMismatchError, ErrInvalidMass, ErrInvalidSupport,
// ErrInvalidCost (NaN, ±Inf or negative cost on a used arc).
func (s *NetworkSolver) Solve(a, b []float64, cost matrix.Matrix, opts ...Option) (Result, error) {
	cfg := newSolveConfig(opts)

	// Stage 1: validate.
	if cost == nil {
		return Result{}, ErrNilCost
	}
	n := cost.Rows()
	if cost.Cols() != n || len(a) != n || len(b) != n {
		return Result{}, &ShapeMismatchError{Want: n, GotA: len(a), GotB: len(b)}
	}

	support := cfg.support
	if support == nil {
		for i := 0; i < n; i++ {
			if err := checkMass(a, b, i); err != nil {
				return Result{}, err
			}
		}
		support = Union(Support(a), Support(b))
	} else {
		support = slices.Compact(slices.Sorted(slices.Values(support)))
		for _, i := range support {
			if i < 0 || i >= n {
				return Result{}, fmt.Errorf("emd: Solve: index %d of %d: %w", i, n, ErrInvalidSupport)
			}
			if err := checkMass(a, b, i); err != nil {
				return Result{}, err
			}
		}
	}

	// Stage 2: reduce.
	var src, dst []int
	var totA, totB float64
	for _, i := range support {
		if a[i] > 0 {
			src = append(src, i)
			totA += a[i]
		}
		if b[i] > 0 {
			dst = append(dst, i)
			totB += b[i]
		}
	}
	if len(src) == 0 || len(dst) == 0 {
		return emptyResult(cfg.plan), nil
	}

	// Stage 3: network s → src → dst → t.
	p, q := len(src), len(dst)
	g := newNetwork(p + q + 2)
	source, sink := 0, p+q+1
	for k, i := range src {
		g.addEdge(source, 1+k, a[i]/totA, 0)
	}
	for l, j := range dst {
		g.addEdge(1+p+l, sink, b[j]/totB, 0)
	}
	arcs := make([]int, 0, p*q)
	unit := make([]float64, 0, p*q)
	for k, i := range src {
		for l, j := range dst {
			c := costAt(cost, n, i, j)
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				return Result{}, fmt.Errorf("emd: Solve: cost[%d][%d]=%v: %w", i, j, c, ErrInvalidCost)
			}
			arcs = append(arcs, g.addEdge(1+k, 1+p+l, math.Inf(1), c))
			unit = append(unit, c)
		}
	}

	g.minCostFlow(source, sink, 4*(p+1)*(q+1)+16)

	res := Result{}
	if cfg.plan {
		res.Plan = Plan{}
	}
	for idx, ei := range arcs {
		f := g.edges[ei].flow
		if f <= 0 {
			continue
		}
		res.Distance += f * unit[idx]
		if cfg.plan && f > PlanEpsilon {
			res.Plan = append(res.Plan, Flow{From: src[idx/q], To: dst[idx%q], Mass: f, Cost: unit[idx]})
		}
	}

	return res, nil
}

func emptyResult(withPlan bool) Result {
	if withPlan {
		return Result{Plan: Plan{}}
	}

	return Result{}
}

func checkMass(a, b []float64, i int) error {
	for _, v := range [2]float64{a[i], b[i]} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("emd: Solve: mass[%d]=%v: %w", i, v, ErrInvalidMass)
		}
	}

	return nil
}

func costAt(cost matrix.Matrix, n, i, j int) float64 {
	if d, ok := cost.(*matrix.Dense); ok {
		return d.Data()[i*n+j]
	}
	v, err := cost.At(i, j)
	if err != nil {
		return math.NaN()
	}

	return v
}
