// Package backend selects an execution target for numeric kernels (host CPU
// vs. a parallel accelerator) and provides a synchronous fan-out launcher.
//
// Select always resolves to Host in this module: a CUDA-class dependency
// cannot be fetched here, so no device backend ships. RegisterDeviceBackend
// exists as a real dispatch seam for a future build that adds one, matching
// the residency-polymorphism design the layered hypergraph engine expects.
package backend
