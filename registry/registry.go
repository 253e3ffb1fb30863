// SPDX-License-Identifier: MIT

// Package registry maps stable external identifiers to dense matrix indices
// and display names.
//
// A Registry is always created together with the matrix it describes (see
// package builder and store.LoadArtifact); its length is the matrix order.
// It is immutable after construction and safe for concurrent reads.
package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when the same id appears twice.
	ErrDuplicateID = errors.New("registry: duplicate id")

	// ErrEmptyID is returned for an empty identifier.
	ErrEmptyID = errors.New("registry: empty id")

	// ErrSizeMismatch is returned when a registry is paired with a matrix of
	// a different order.
	ErrSizeMismatch = errors.New("registry: size does not match matrix")
)

// Entry is one (id, name) pair; its position in Entries() is its index.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Registry is a bijection id ↔ index with a display name per index.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// New builds a Registry whose index order is the order of entries.
// Empty names fall back to the id.
// Errors: ErrEmptyID, ErrDuplicateID.
// Complexity: O(n).
func New(entries []Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("registry: entry %d: %w", i, ErrEmptyID)
		}
		if prev, dup := r.index[e.ID]; dup {
			return nil, fmt.Errorf("registry: id %q at %d and %d: %w", e.ID, prev, i, ErrDuplicateID)
		}
		if e.Name == "" {
			e.Name = e.ID
		}
		r.entries[i] = e
		r.index[e.ID] = i
	}

	return r, nil
}

// Len returns the number of entries (the paired matrix order).
func (r *Registry) Len() int { return len(r.entries) }

// Index returns the dense index for id.
func (r *Registry) Index(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// ID returns the id at index i; it panics when i is out of range, like a
// slice access.
func (r *Registry) ID(i int) string { return r.entries[i].ID }

// Name returns the display name at index i.
func (r *Registry) Name(i int) string { return r.entries[i].Name }

// Entries returns a copy of the ordered (id, name) list.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// IDs returns the ids in index order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.ID
	}

	return out
}

// Validate checks that the registry describes a matrix with n rows.
func (r *Registry) Validate(n int) error {
	if r.Len() != n {
		return fmt.Errorf("registry: %d entries vs %d rows: %w", r.Len(), n, ErrSizeMismatch)
	}

	return nil
}
