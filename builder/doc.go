// Package builder materializes the two matrices the learning loop starts
// from, each paired atomically with the Registry that indexes it:
//
//   - IngredientDistances: the n×n ingredient cost matrix C₀ seeded from
//     tree distances (symmetric, zero diagonal). The synthetic root is not
//     an ingredient and is excluded.
//   - VolumeMatrix: the r×n recipe×ingredient row-stochastic matrix V, dense
//     or CSR, validated row by row.
//
// A Registry is only ever returned together with the matrix built in the
// same pass, so the two can never describe different dimensions.
package builder
