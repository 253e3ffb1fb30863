// SPDX-License-Identifier: MIT

package tree

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree construction and distance queries.
var (
	// ErrMalformedPath is matched by every *MalformedPathError.
	ErrMalformedPath = errors.New("tree: malformed path")

	// ErrNoCommonAncestor is matched by every *NoCommonAncestorError.
	ErrNoCommonAncestor = errors.New("tree: no common ancestor")

	// ErrUnknownNode is returned when a distance query names an id not in the tree.
	ErrUnknownNode = errors.New("tree: unknown node")

	// ErrInvalidWeight is returned for NaN, ±Inf or negative edge weights.
	ErrInvalidWeight = errors.New("tree: invalid edge weight")
)

// MalformedPathError describes a hierarchy record whose path does not parse
// into a numeric ancestor chain ending in the record id, or which contradicts
// a previously seen parent.
type MalformedPathError struct {
	ID     string
	Path   string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("tree: malformed path %q for id %q: %s", e.Path, e.ID, e.Reason)
}

// Unwrap lets errors.Is(err, ErrMalformedPath) match.
func (e *MalformedPathError) Unwrap() error { return ErrMalformedPath }

// NoCommonAncestorError is returned by Distance when u and v live in
// disconnected components (unreachable while a synthetic root links all paths).
type NoCommonAncestorError struct {
	U, V string
}

func (e *NoCommonAncestorError) Error() string {
	return fmt.Sprintf("tree: %q and %q share no ancestor", e.U, e.V)
}

// Unwrap lets errors.Is(err, ErrNoCommonAncestor) match.
func (e *NoCommonAncestorError) Unwrap() error { return ErrNoCommonAncestor }
