// Package matrix provides the dense numeric kernel shared by every layer of
// the hypergraph engine: incidence matrices, per-layer feature matrices,
// correlation matrices for the synthetic generator, and the ridge-regression
// solver behind yield residual training.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with a configurable NaN/Inf policy
//     (see options.go) and fast-path kernels over its flat backing slice.
//   - The linear-algebra operations the engine exercises (Add, Transpose,
//     Mul, MatVec, Inverse, Cholesky), each accepting any Matrix
//     implementation but specializing to Dense when possible.
//   - Centralized validators (validators.go) and sentinel errors (errors.go)
//     shared across every kernel, so call sites wrap uniformly via
//     matrixErrorf instead of inventing ad hoc error shapes.
//
// Dense is best for the small, fixed-size matrices this engine works with
// (dozens to low hundreds of rows/cols per layer); no sparse representation
// is provided here because the graph package keeps incidence sparse in its
// own compressed-sparse-column form and densifies only at product time.
package matrix
