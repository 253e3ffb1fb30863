package emd

// Option customizes a single Solve call.
type Option func(*solveConfig)

type solveConfig struct {
	support []int
	plan    bool
}

// WithSupport supplies a precomputed support index set. It must cover every
// index where a or b is nonzero; mass outside it is ignored. Batch callers
// use this to avoid rescanning full vectors for every pair.
func WithSupport(idx []int) Option {
	return func(c *solveConfig) { c.support = idx }
}

// WithPlan requests the sparse transport plan alongside the distance.
func WithPlan() Option {
	return func(c *solveConfig) { c.plan = true }
}

func newSolveConfig(opts []Option) solveConfig {
	var c solveConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}
