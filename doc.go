// Package hypercore is the layered hypergraph computation core of an
// agricultural analytics system: a farm is modeled as up to seven layers
// (soil, irrigation, weather, lighting, crop_requirements, npk, vision)
// sharing one vertex index, each materialized as a sparse vertex-to-hyperedge
// incidence matrix plus a dense feature matrix and a fixed-depth feature
// history ring buffer.
//
// Subpackages, in dependency order:
//
//	backend/   — backend selection (host vs parallel accelerator), the
//	             synchronous kernel-launch wrapper, host-materialization
//	matrix/    — dense float64 matrix type, linear algebra (Add, Transpose,
//	             Mul, MatVec, Inverse), Cholesky and input validators
//	graph/     — the layered hypergraph type: build, mutate, query,
//	             aggregate, residency transfer, the history ring buffer
//	models/    — irrigation scheduling, nutrient deficit scoring, yield
//	             forecasting with a trainable ridge residual, and Western
//	             Electric statistical-process-control anomaly detection
//	synthetic/ — a correlated multi-layer synthetic farm dataset generator
//	contract/  — the opaque serialize/deserialize boundary, the process-wide
//	             graph cache and trained-residual cell, and the callable
//	             entry points external collaborators invoke
//
// cmd/hypercorectl is a thin CLI harness over the contract package; it is not
// part of this module's public API.
package hypercore
