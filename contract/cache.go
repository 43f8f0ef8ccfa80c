// SPDX-License-Identifier: MIT
package contract

import (
	"github.com/fieldmesh/hypercore/graph"
	"go.uber.org/zap"
)

// CacheGraph stores g under farmID, overwriting any prior entry.
func (s *ProcessState) CacheGraph(farmID string, g *graph.LayeredHyperGraph) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[farmID] = g
	s.logger.Debug("graph cached", zap.String("farm_id", farmID))
}

// GetCachedGraph returns the graph cached under farmID, if any.
func (s *ProcessState) GetCachedGraph(farmID string) (*graph.LayeredHyperGraph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.cache[farmID]

	return g, ok
}

// EvictGraph removes farmID's cached graph, if present.
func (s *ProcessState) EvictGraph(farmID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[farmID]; ok {
		delete(s.cache, farmID)
		cacheEvictionsTotal.Inc()
	}
}

// ClearCache releases every cached graph and the trained residual cell.
func (s *ProcessState) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cacheEvictionsTotal.Add(float64(len(s.cache)))
	s.cache = make(map[string]*graph.LayeredHyperGraph)
	s.residualBeta = nil
}
