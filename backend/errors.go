// SPDX-License-Identifier: MIT
// Package backend selects between host and parallel-accelerator execution
// and provides a synchronous launch wrapper for data-parallel kernels.
package backend

import "errors"

// ErrUnsupportedOp is the sentinel wrapped by BackendError for operations a
// backend explicitly refuses to perform.
var ErrUnsupportedOp = errors.New("backend: operation not supported on this backend")

// BackendError reports an explicit failure to launch a kernel on a requested
// backend. Absence of a parallel accelerator is never itself an error — the
// core silently degrades to Host; BackendError is reserved for a backend
// that exists but rejects a specific operation.
type BackendError struct {
	Kind Kind   // backend that rejected the operation
	Op   string // operation name (e.g. "Launch", "EnsureHost")
	Err  error  // underlying cause; wraps ErrUnsupportedOp unless more specific
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return "backend[" + e.Kind.String() + "]: " + e.Op + ": " + e.Err.Error()
}

// Unwrap allows errors.Is/errors.As to reach the wrapped cause.
func (e *BackendError) Unwrap() error { return e.Err }

func newBackendError(kind Kind, op string, err error) *BackendError {
	return &BackendError{Kind: kind, Op: op, Err: err}
}
