// SPDX-License-Identifier: MIT

// Package matrix: numeric policy configuration shared by the dense kernels.
// This file defines:
//   - documented defaults (constants),
//   - Options / Option (functional setters),
//   - gatherOptions helper that resolves a sequence of setters into a value.
//
// Design goals mirror the rest of the package: deterministic behavior, no
// global state, and panics reserved for programmer error in constructors.
package matrix

import "math"

// Numeric policy.
const (
	// DefaultEpsilon defines the non-negative tolerance used by structural checks
	// (symmetry, positive-definiteness probes).
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true
)

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective numeric policy after applying Option setters.
// Entry points accept `...Option` and internally resolve them via
// gatherOptions; fields stay unexported to prevent external mutation.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
}

// isNonFinite reports whether f is NaN or ±Inf.
func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}

// WithEpsilon sets the numeric tolerance eps used by structural checks.
// Panics with a stable message when eps is not finite or negative.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation. Use only when staging
// data whose non-finite placeholders are sanitized downstream.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves option setters against documented defaults.
// Most entry points accept ...Option and call gatherOptions internally;
// this facade is exposed for callers that need the resolved value directly.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Last-writer-wins semantics for a given sequence of setters.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}
