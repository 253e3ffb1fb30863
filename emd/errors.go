package emd

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is matched by every *ShapeMismatchError.
var ErrShapeMismatch = errors.New("emd: shape mismatch")

// ErrInvalidMass is returned for negative, NaN or infinite mass entries.
var ErrInvalidMass = errors.New("emd: invalid mass")

// ErrInvalidCost is returned when a cost entry used by the solve is NaN or infinite.
var ErrInvalidCost = errors.New("emd: invalid cost")

// ErrInvalidSupport is returned when a supplied support index is out of range.
var ErrInvalidSupport = errors.New("emd: support index out of range")

// ErrNilCost is returned when the cost matrix is nil.
var ErrNilCost = errors.New("emd: cost matrix is nil")

// ShapeMismatchError reports vector lengths that disagree with the cost
// matrix dimension.
type ShapeMismatchError struct {
	Want int // cost matrix dimension (or Cols for a rectangular operand)
	GotA int
	GotB int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("emd: shape mismatch: cost is %d×%d, got len(a)=%d len(b)=%d",
		e.Want, e.Want, e.GotA, e.GotB)
}

// Unwrap lets errors.Is(err, ErrShapeMismatch) match.
func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }
