// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric policy of new
// matrices. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error).
//
// Notes:
//   - validateNaNInf controls whether Set() rejects NaN/Inf at all.
//   - allowInf is a narrow exception for +Inf as "unreachable" in distance
//     matrices; NaN and -Inf remain rejected under validation.
package matrix

// Numeric policy defaults (single source of truth).
const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true

	// DefaultAllowInf permits +Inf values in distance-style matrices.
	DefaultAllowInf = false
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps            float64
	validateNaNInf bool
	allowInf       bool
}

// WithEpsilon sets the numeric tolerance used by structural checks that
// consume Options (see NewOptions / Options.Epsilon).
// Panics when eps is negative or non-finite.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithNoValidateNaNInf disables NaN/Inf validation on Set for new matrices.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithAllowInf permits +Inf entries on Set (distance "unreachable" sentinel).
func WithAllowInf() Option {
	return func(o *Options) { o.allowInf = true }
}

// NewOptions resolves opts over the documented defaults.
// Complexity: O(len(opts)).
func NewOptions(opts ...Option) Options {
	o := Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		allowInf:       DefaultAllowInf,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// Epsilon returns the resolved structural tolerance.
func (o Options) Epsilon() float64 { return o.eps }
