// SPDX-License-Identifier: MIT

package tree

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const panicDefaultWeightInvalid = "tree: WithDefaultWeight: weight must be finite, non-negative"

// Option configures Build.
type Option func(*options)

type options struct {
	defaultWeight float64
}

// WithDefaultWeight sets the weight used for edges whose child has no
// explicit edge weight (yet). Panics on NaN, ±Inf or negative values.
func WithDefaultWeight(w float64) Option {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		panic(panicDefaultWeightInvalid)
	}

	return func(o *options) { o.defaultWeight = w }
}

// Tree is an immutable rooted ingredient hierarchy.
type Tree struct {
	nodes []Node
	index map[string]int
}

// Build constructs the hierarchy from flat path records.
//
// Steps:
//  1. Create the synthetic root at arena index 0.
//  2. For each record, parse its path into canonical decimal ids and walk it
//     ancestor→descendant, creating unseen nodes under the current parent with
//     the default edge weight.
//  3. Attach the record's name and, if present, its explicit edge weight to
//     the final node (later records override earlier values).
//  4. Sort every child list by numeric id for deterministic traversal.
//
// Errors:
//   - *MalformedPathError: empty/non-numeric segment, path not ending in the
//     record id, or a node re-parented by a later path.
//   - ErrInvalidWeight: explicit weight NaN, ±Inf or negative.
//
// Complexity: O(Σ len(path)) + O(N log N) for child sorting.
func Build(records []Record, opts ...Option) (*Tree, error) {
	o := options{defaultWeight: DefaultEdgeWeight}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	t := &Tree{
		nodes: []Node{{ID: RootID, Name: RootID, Parent: -1}},
		index: map[string]int{RootID: 0},
	}

	for _, rec := range records {
		ids, err := parsePath(rec)
		if err != nil {
			return nil, err
		}

		parent := 0
		for _, id := range ids {
			idx, seen := t.index[id]
			if !seen {
				idx = len(t.nodes)
				t.nodes = append(t.nodes, Node{
					ID:     id,
					Weight: o.defaultWeight,
					Parent: parent,
					Depth:  t.nodes[parent].Depth + 1,
				})
				t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
				t.index[id] = idx
			} else if t.nodes[idx].Parent != parent {
				return nil, &MalformedPathError{
					ID:   rec.ID,
					Path: rec.Path,
					Reason: fmt.Sprintf("node %s already has parent %s, path says %s",
						id, t.nodes[t.nodes[idx].Parent].ID, t.nodes[parent].ID),
				}
			}
			parent = idx
		}

		leaf := &t.nodes[parent]
		leaf.Name = rec.Name
		if rec.Weight != nil {
			w := *rec.Weight
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, fmt.Errorf("tree: record %s weight %g: %w", rec.ID, w, ErrInvalidWeight)
			}
			leaf.Weight = w
		}
	}

	for i := range t.nodes {
		ch := t.nodes[i].Children
		sort.Slice(ch, func(a, b int) bool { return lessID(t.nodes[ch[a]].ID, t.nodes[ch[b]].ID) })
	}

	return t, nil
}

// parsePath splits "/1/5/10/" into canonical ids and checks the chain ends
// in the record id.
func parsePath(rec Record) ([]string, error) {
	malformed := func(reason string) error {
		return &MalformedPathError{ID: rec.ID, Path: rec.Path, Reason: reason}
	}

	trimmed := strings.Trim(strings.TrimSpace(rec.Path), "/")
	if trimmed == "" {
		return nil, malformed("empty path")
	}
	segs := strings.Split(trimmed, "/")
	ids := make([]string, len(segs))
	for k, seg := range segs {
		id, ok := canonicalID(seg)
		if !ok {
			return nil, malformed(fmt.Sprintf("segment %d (%q) is not a numeric id", k, seg))
		}
		ids[k] = id
	}

	own, ok := canonicalID(rec.ID)
	if !ok {
		return nil, malformed("record id is not numeric")
	}
	if ids[len(ids)-1] != own {
		return nil, malformed("path does not end in the record id")
	}

	return ids, nil
}

// canonicalID normalizes a decimal id ("010" → "10").
func canonicalID(s string) (string, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return "", false
	}

	return strconv.FormatUint(v, 10), true
}

// lessID orders canonical decimal ids numerically.
func lessID(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return a < b
}

// Len returns the number of ingredient nodes (the synthetic root excluded).
func (t *Tree) Len() int { return len(t.nodes) - 1 }

// Has reports whether id is a node of the tree (RootID included).
func (t *Tree) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

// Node returns a copy of the node for id.
func (t *Tree) Node(id string) (Node, bool) {
	idx, ok := t.index[id]
	if !ok {
		return Node{}, false
	}
	n := t.nodes[idx]
	n.Children = append([]int(nil), n.Children...)

	return n, true
}

// Depth returns the number of edges between id and the root.
func (t *Tree) Depth(id string) (int, error) {
	idx, ok := t.index[id]
	if !ok {
		return 0, fmt.Errorf("tree: Depth(%q): %w", id, ErrUnknownNode)
	}

	return t.nodes[idx].Depth, nil
}

// ParentMap returns id → (parent, weight) for every node; the root maps to
// (none, 0.0).
// Complexity: O(N).
func (t *Tree) ParentMap() ParentMap {
	pm := make(ParentMap, len(t.nodes))
	for _, n := range t.nodes {
		if n.Parent < 0 {
			pm[n.ID] = ParentEdge{}
			continue
		}
		pm[n.ID] = ParentEdge{Parent: t.nodes[n.Parent].ID, HasParent: true, Weight: n.Weight}
	}

	return pm
}

// Walk visits nodes in breadth-first order from the root (children by
// ascending numeric id). Returning false from fn stops the walk.
// Complexity: O(N).
func (t *Tree) Walk(fn func(n Node) bool) {
	queue := make([]int, 0, len(t.nodes))
	queue = append(queue, 0)
	for head := 0; head < len(queue); head++ {
		n := t.nodes[queue[head]]
		if !fn(n) {
			return
		}
		queue = append(queue, n.Children...)
	}
}

// Ingredients returns every non-root id in breadth-first order. This is the
// canonical ordering used for ingredient registries.
func (t *Tree) Ingredients() []string {
	out := make([]string, 0, t.Len())
	t.Walk(func(n Node) bool {
		if n.Parent >= 0 {
			out = append(out, n.ID)
		}
		return true
	})

	return out
}

// Distance returns the weighted path length between u and v through their
// lowest common ancestor: the edge weights on u's side up to the LCA plus
// those on v's side.
//
// Steps:
//  1. Resolve both ids (ErrUnknownNode otherwise); u == v → 0.
//  2. Lift the deeper endpoint until both sit at the same depth.
//  3. Lift both in lock-step until they meet.
//
// Errors: ErrUnknownNode, *NoCommonAncestorError.
// Complexity: O(depth(u) + depth(v)).
func (t *Tree) Distance(u, v string) (float64, error) {
	a, ok := t.index[u]
	if !ok {
		return 0, fmt.Errorf("tree: Distance(%q,%q): %w", u, v, ErrUnknownNode)
	}
	b, ok := t.index[v]
	if !ok {
		return 0, fmt.Errorf("tree: Distance(%q,%q): %w", u, v, ErrUnknownNode)
	}

	var cost float64
	for t.nodes[a].Depth > t.nodes[b].Depth {
		cost += t.nodes[a].Weight
		a = t.nodes[a].Parent
	}
	for t.nodes[b].Depth > t.nodes[a].Depth {
		cost += t.nodes[b].Weight
		b = t.nodes[b].Parent
	}
	for a != b {
		pa, pb := t.nodes[a].Parent, t.nodes[b].Parent
		if pa < 0 || pb < 0 {
			return 0, &NoCommonAncestorError{U: u, V: v}
		}
		cost += t.nodes[a].Weight + t.nodes[b].Weight
		a, b = pa, pb
	}

	return cost, nil
}
