// Package tree builds the ingredient hierarchy from materialized-path records
// and answers weighted lowest-common-ancestor distance queries over it.
//
// Nodes live in a flat arena addressed by integer index; index 0 is always
// the synthetic root that links every path. Construction and traversal are
// iterative, so deep hierarchies never hit recursion limits.
//
// Complexity:
//
//	Build:    O(Σ path length) time, O(N) memory.
//	Distance: O(depth(u) + depth(v)).
package tree

// RootID is the identifier of the synthetic root node.
const RootID = "root"

// DefaultEdgeWeight is the weight assigned to an edge until a record for the
// child node supplies an explicit one.
const DefaultEdgeWeight = 1.0

// Record is one row of the hierarchy snapshot.
//   - Path is a slash-delimited ancestor-id chain ending in ID, e.g. "/1/5/10/".
//   - Weight, when non-nil, is the weight of the edge from the parent to ID.
type Record struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Path   string   `json:"path" yaml:"path"`
	Weight *float64 `json:"edge_weight,omitempty" yaml:"edge_weight,omitempty"`
}

// Node is one arena entry.
type Node struct {
	ID       string
	Name     string
	Weight   float64 // weight of the edge to Parent; 0 for the root
	Parent   int     // arena index of the parent; -1 for the root
	Depth    int
	Children []int
}

// ParentEdge is one ParentMap entry.
type ParentEdge struct {
	Parent    string
	HasParent bool
	Weight    float64
}

// ParentMap maps every id to its parent and incoming edge weight.
// The root maps to (none, 0.0).
type ParentMap map[string]ParentEdge
