// Package matrix provides the numeric containers shared by the metric-learning
// pipeline: a row-major Dense matrix, a compressed sparse row (CSR) matrix for
// recipe×ingredient volumes, structural validators (square, symmetric, zero
// diagonal, row-stochastic), a few reductions and a flat binary codec.
//
// What & Why:
//
//	Every stage of the pipeline hands matrices to the next one: ingredient cost
//	matrices, recipe volume matrices, recipe distance matrices and expected
//	match counts. Keeping them behind one small Matrix interface lets the
//	transport solver, the kNN extractor and the storage layer accept either
//	dense or sparse inputs while hot loops still take the *Dense / *CSR fast
//	paths on the flat buffers.
//
// Complexity:
//
//	Rows/Cols/At/Set are O(1) on Dense; At on CSR is O(log nnz(row)).
//	Validators run in O(r*c) with no allocations.
package matrix
