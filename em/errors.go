package em

import "errors"

var (
	// ErrBadConfig is returned for out-of-range AggregateConfig/UpdateConfig values.
	ErrBadConfig = errors.New("em: invalid configuration")

	// ErrPlanIndex is returned when a plan references an ingredient outside T_sum.
	ErrPlanIndex = errors.New("em: plan ingredient index out of range")

	// ErrNegativeMatch is returned when T_sum has negative or non-finite entries.
	ErrNegativeMatch = errors.New("em: match matrix must be finite and non-negative")

	// ErrPriorShape is returned when the prior cost matrix does not match T_sum.
	ErrPriorShape = errors.New("em: prior shape mismatch")

	// ErrPlansDisabled is returned by Learner when its engine does not retain plans.
	ErrPlansDisabled = errors.New("em: pairwise engine does not retain plans")
)
