// SPDX-License-Identifier: MIT
// Package: barmetric/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • tolerance = 1e-6  (row-sum check)
//   • sparse    = false (dense output)
//   • normalize = false (fractions must already sum to 1)
//   • logger    = zerolog.Nop()

package builder

import "github.com/rs/zerolog"

// DefaultTolerance is the default allowed |Σ row − 1| for volume rows.
const DefaultTolerance = 1e-6

// builderConfig aggregates all knobs used by the builders.
type builderConfig struct {
	tolerance float64
	sparse    bool
	normalize bool
	logger    zerolog.Logger
}

// newBuilderConfig applies options in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	c := builderConfig{
		tolerance: DefaultTolerance,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}
