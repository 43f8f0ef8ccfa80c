// SPDX-License-Identifier: MIT
// Package graph implements the layered hypergraph: one incidence matrix,
// one dense feature matrix and one feature-history ring buffer per active
// layer, all sharing a single vertex index.
package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors. Structural violations (duplicate vertex, unknown layer
// in a read path that requires it to exist) fail hard with these; missing
// optional layers or vertices in query paths are reported as ok=false
// result values instead.
var (
	// ErrEmptyVertexID indicates an empty string was used as a vertex id.
	ErrEmptyVertexID = errors.New("graph: vertex id is empty")

	// ErrDuplicateVertex indicates AddVertex was called with an id already
	// present in the vertex index.
	ErrDuplicateVertex = errors.New("graph: vertex already indexed")

	// ErrLayerNotFound indicates an operation required a layer that has not
	// been materialized on the graph.
	ErrLayerNotFound = errors.New("graph: layer not found")

	// ErrVertexNotFound indicates a referenced vertex id is not indexed.
	ErrVertexNotFound = errors.New("graph: vertex not found")

	// ErrUnknownLayerTag indicates a layer tag outside the closed set.
	ErrUnknownLayerTag = errors.New("graph: unknown layer tag")

	// ErrEmptyEdgeID indicates an empty string was used as a hyperedge id.
	ErrEmptyEdgeID = errors.New("graph: hyperedge id is empty")

	// ErrEmptyHyperedge indicates a hyperedge was defined with no member
	// vertex ids that resolve against the vertex index.
	ErrEmptyHyperedge = errors.New("graph: hyperedge has no resolvable members")

	// ErrDuplicateEdge indicates AddHyperedge was called with an id already
	// present in the layer.
	ErrDuplicateEdge = errors.New("graph: hyperedge id already present in layer")

	// ErrCorruptState indicates an internal invariant violation, such as a
	// matrix operation returning a result that is not a *matrix.Dense (used
	// defensively; production code paths should make this unreachable).
	ErrCorruptState = errors.New("graph: invariant violation")
)

// wrapf attaches op-specific context to a sentinel while keeping it
// errors.Is-matchable.
func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, sentinel)...)
}
