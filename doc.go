// Package barmetric learns how well one cocktail ingredient substitutes for
// another, from the recipes that use them.
//
// What is barmetric?
//
//	A synchronous numeric pipeline that turns two read-only snapshots (an
//	ingredient hierarchy and a recipe-ingredient volume table) into a
//	learned ingredient cost matrix and a recipe distance matrix:
//		• Hierarchy: weighted lowest-common-ancestor distances (tree)
//		• Matrices:  ordered registries + dense / CSR storage (registry, matrix, builder)
//		• Transport: exact earth mover's distance by min-cost flow (emd)
//		• All pairs: bounded-parallel EMD over every recipe pair (pairwise)
//		• Neighbors: k nearest recipes with Boltzmann weights (knn)
//		• Learning:  EM rounds with a log-odds cost update (em)
//		• Output:    classical MDS coordinates (embed), versioned blobs (store)
//
// One learning round:
//
//	cost ──► recipe EMD ──► kNN + weights ──► expected matches ──► new cost
//	  ▲                                                               │
//	  └───────────────────────────────────────────────────────────────┘
//
// Packages:
//
//	tree/      — hierarchy arena, Distance(u, v)
//	registry/  — ordered id ↔ index mapping
//	matrix/    — Dense, CSR, validators, statistics, binary codec
//	builder/   — ingredient distance and recipe volume matrices
//	emd/       — Solver, NetworkSolver, transport plans
//	pairwise/  — Engine.Compute with progress and cancellation
//	knn/       — Extract, Boltzmann, Weighted, WeightMatrix
//	em/        — Aggregate (E-step), UpdateCost (M-step), Learner
//	embed/     — Embedder, MDS
//	store/     — BlobStore (memory, badger), artifacts
//	snapshot/  — JSON / YAML snapshot decoding
//	cmd/barmetric — seed, learn, embed
package barmetric
