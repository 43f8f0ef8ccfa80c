// SPDX-License-Identifier: MIT
package backend

import "sync"

// deviceProbe, when non-nil, reports whether a real parallel-accelerator
// backend is currently available. RegisterDeviceBackend sets it; no build
// in this module ever does, since a CUDA-class dependency cannot be
// fetched here — the hook exists so Select's dispatch is a real seam.
var (
	muProbe     sync.RWMutex
	deviceProbe func() bool
)

// RegisterDeviceBackend installs a probe function consulted by Select. A
// nil probe (the default, and the only state this module ships) means no
// device backend is ever considered available.
func RegisterDeviceBackend(probe func() bool) {
	muProbe.Lock()
	defer muProbe.Unlock()
	deviceProbe = probe
}

// Select returns the backend Kind that numeric kernels should target: Host
// unless cfg.ForceHost is false AND a device backend has been registered
// and reports itself available.
func Select(cfg Config) Kind {
	if cfg.ForceHost {
		return Host
	}
	muProbe.RLock()
	probe := deviceProbe
	muProbe.RUnlock()
	if probe != nil && probe() {
		return Parallel
	}

	return Host
}

// IsDeviceResident reports whether a is currently backed by Parallel
// storage. Used to dispatch code paths without callers importing Kind
// directly at every call site.
func IsDeviceResident(a ArrayLike) bool {
	if a == nil {
		return false
	}

	return a.Residency() == Parallel
}

// EnsureHost returns a host-resident view of a. Since no device backend
// ships in this module, every ArrayLike is already Host-resident and this
// is a no-op identity function; the seam exists for a future device
// backend that would materialize a host copy here.
func EnsureHost(a ArrayLike) ArrayLike {
	return a
}
