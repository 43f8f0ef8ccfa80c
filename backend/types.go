// SPDX-License-Identifier: MIT
package backend

// Kind identifies which execution backend numeric arrays and kernels are
// bound to. A functional parallel accelerator (CUDA-class device) is not
// fetchable as a pure-Go dependency in this environment, so Select always
// resolves to Host unless a build registers a real device backend via
// RegisterDeviceBackend.
type Kind int

const (
	// Host executes kernels on the local CPU via a goroutine worker pool.
	Host Kind = iota
	// Parallel denotes a device-resident backend (CUDA-class accelerator).
	// No implementation ships in this module; the value exists so the
	// dispatch seam described in the design notes is real, not aspirational.
	Parallel
)

// String renders the Kind for logging and error messages.
func (k Kind) String() string {
	switch k {
	case Host:
		return "host"
	case Parallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// ArrayLike is satisfied by any numeric array container that knows its own
// residency. graph.Layer's incidence/feature/history arrays implement this
// so backend.EnsureHost and backend.IsDeviceResident can operate on them
// without importing the graph package (avoiding an import cycle).
type ArrayLike interface {
	// Residency reports which Kind currently owns this array's storage.
	Residency() Kind
}
