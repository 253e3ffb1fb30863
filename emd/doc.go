// SPDX-License-Identifier: MIT

// Package emd computes the Earth Mover's Distance (optimal transport cost)
// between two non-negative mass vectors under an n×n ground-cost matrix.
//
// The problem is reduced to the union of the two nonzero supports and solved
// exactly as a min-cost flow on the bipartite graph
//
//	s → i (cap aᵢ, cost 0) → j (cap ∞, cost C[i][j]) → t (cap bⱼ, cost 0)
//
// by successive shortest augmenting paths. Residual costs can be negative on
// reverse edges, so paths are found with queue-based Bellman–Ford (SPFA).
//
// Conventions:
//
//   - Both sides are normalized to unit mass before solving, so vectors with
//     different totals compare by shape.
//   - An empty reduced support, or a side with zero total mass, yields
//     distance 0 and an empty plan. This is a result, not an error.
//   - Plans list flows above PlanEpsilon in original index space, sorted by
//     (From, To). Flow.Cost is the unit cost C[From][To].
//
// Complexity: O(F · V · E) for F augmentations on a network of V = 2m+2
// nodes and E = m² + 2m edges, m = |support|. In practice F ≤ 2m.
package emd
