// SPDX-License-Identifier: MIT
// Package: barmetric/builder
//
// options.go — functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//   • No hidden globals; everything flows through builderConfig.

package builder

import (
	"math"

	"github.com/rs/zerolog"
)

// BuilderOption customizes a builder by mutating a builderConfig before the
// matrix is assembled. Complexity: applying N options costs O(N).
type BuilderOption func(*builderConfig)

// WithTolerance sets the row-sum tolerance for volume rows.
// Panics on NaN, ±Inf or negative values.
func WithTolerance(tol float64) BuilderOption {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic("builder: WithTolerance(tol<0 or non-finite)")
	}
	return func(c *builderConfig) { c.tolerance = tol }
}

// WithSparse makes VolumeMatrix return a *matrix.CSR instead of *matrix.Dense.
func WithSparse() BuilderOption {
	return func(c *builderConfig) { c.sparse = true }
}

// WithNormalize rescales each recipe row to unit sum before the row-sum
// check. Intended for snapshots that store absolute volumes.
func WithNormalize() BuilderOption {
	return func(c *builderConfig) { c.normalize = true }
}

// WithLogger attaches a logger for build summaries (debug level).
func WithLogger(l zerolog.Logger) BuilderOption {
	return func(c *builderConfig) { c.logger = l }
}
