// SPDX-License-Identifier: MIT
package graph

// AddVertex indexes a new vertex id across the whole graph, extending every
// materialized layer's incidence row dimension and zero-padding its feature
// and history rows. Fails ErrDuplicateVertex if id is already indexed.
func AddVertex(g *LayeredHyperGraph, id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, dup := g.vertexIdx[id]; dup {
		return wrapf(ErrDuplicateVertex, "add_vertex: %q", id)
	}

	g.vertexIdx[id] = len(g.vertexIDs)
	g.vertexIDs = append(g.vertexIDs, id)

	for _, layer := range g.Layers {
		layer.Incidence.AddRow()
		layer.Features = append(layer.Features, make([]float32, layer.FeatureDim)...)
		layer.History = append(layer.History, make([]float32, layer.FeatureDim*layer.HistoryDepth)...)
	}

	return nil
}

// AddHyperedge appends a hyperedge to layer, auto-creating the layer with
// zero features and the graph's configured history depth if it does not yet
// exist. Member ids absent from the vertex index are silently dropped;
// ErrEmptyHyperedge if that leaves zero resolvable members.
func AddHyperedge(g *LayeredHyperGraph, layer LayerTag, edgeID string, vertexIDs []string, metadata map[string]any) error {
	layer = normalizeLayerTag(layer)
	if _, ok := knownLayerTags[layer]; !ok {
		return wrapf(ErrUnknownLayerTag, "add_hyperedge: layer %q", layer)
	}
	if edgeID == "" {
		return ErrEmptyEdgeID
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.Layers[layer]
	if !ok {
		l = newLayer(layer, len(g.vertexIDs), g.cfg.HistoryDepth)
		g.Layers[layer] = l
	}

	for _, existing := range l.EdgeIDs {
		if existing == edgeID {
			return wrapf(ErrDuplicateEdge, "add_hyperedge: %q", edgeID)
		}
	}

	return addEdgeToLayer(g, l, EdgeDef{ID: edgeID, Layer: layer, VertexIDs: vertexIDs, Metadata: metadata})
}

// RemoveHyperedge deletes edgeID from layer. Reports whether it was found
// and removed; a missing layer or edge id is not an error, matching the
// read-path convention of reporting absence via a boolean.
func RemoveHyperedge(g *LayeredHyperGraph, layer LayerTag, edgeID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.Layers[layer]
	if !ok {
		return false
	}

	idx := -1
	for i, id := range l.EdgeIDs {
		if id == edgeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	if err := l.Incidence.RemoveColumn(idx); err != nil {
		return false
	}
	l.EdgeIDs = append(l.EdgeIDs[:idx], l.EdgeIDs[idx+1:]...)
	l.EdgeMetadata = append(l.EdgeMetadata[:idx], l.EdgeMetadata[idx+1:]...)

	return true
}
