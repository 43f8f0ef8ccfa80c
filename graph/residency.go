// SPDX-License-Identifier: MIT
package graph

import "github.com/fieldmesh/hypercore/backend"

// ToDevice transfers every materialized layer's three numeric arrays
// (incidence, features, history) to Parallel residency, leaving host-only
// metadata (edge ids, edge metadata, vertex index) untouched. Since no
// device backend ships in this build, this only flips the residency tag;
// the data never actually moves.
func ToDevice(g *LayeredHyperGraph) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, layer := range g.Layers {
		layer.residency = backend.Parallel
	}

	return nil
}

// ToHost transfers every materialized layer back to Host residency.
func ToHost(g *LayeredHyperGraph) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, layer := range g.Layers {
		layer.residency = backend.Host
	}

	return nil
}
