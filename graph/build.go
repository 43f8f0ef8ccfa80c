// SPDX-License-Identifier: MIT
package graph

import "errors"

// defaultActiveLayers seeds active_layers when a FarmConfig omits it,
// matching the original farm service's per-farm-type defaults.
var defaultActiveLayers = map[string][]LayerTag{
	"open_field": {Soil, Irrigation, Weather, CropRequirements, NPK},
	"greenhouse": {Soil, Irrigation, Lighting, Weather, CropRequirements, NPK, Vision},
	"hybrid":     {Soil, Irrigation, Lighting, Weather, CropRequirements, NPK, Vision},
}

// normalizeLayerTag maps the legacy "solar" token onto "lighting"; weather
// already carries solar_rad, so solar is a config-convenience alias, not a
// distinct layer.
func normalizeLayerTag(tag LayerTag) LayerTag {
	if tag == "solar" {
		return Lighting
	}

	return tag
}

// BuildHyperGraph constructs a LayeredHyperGraph from cfg: indexes vertices,
// materializes only the layers that end up with at least one hyperedge, and
// silently drops any edge member id absent from the vertex list.
func BuildHyperGraph(cfg FarmConfig, opts ...Option) (*LayeredHyperGraph, error) {
	active := cfg.ActiveLayers
	if len(active) == 0 {
		active = defaultActiveLayers[cfg.FarmType]
	}

	wantLayer := make(map[LayerTag]bool, len(active))
	for _, tag := range active {
		tag = normalizeLayerTag(tag)
		if _, ok := knownLayerTags[tag]; !ok {
			return nil, wrapf(ErrUnknownLayerTag, "build_hypergraph: layer %q", tag)
		}
		wantLayer[tag] = true
	}

	g := &LayeredHyperGraph{
		FarmID:    cfg.FarmID,
		vertexIdx: make(map[string]int, len(cfg.Vertices)),
		vertexIDs: make([]string, 0, len(cfg.Vertices)),
		Layers:    make(map[LayerTag]*Layer),
		cfg:       LoadConfig(opts...),
	}

	for _, v := range cfg.Vertices {
		if v.ID == "" {
			return nil, ErrEmptyVertexID
		}
		if _, dup := g.vertexIdx[v.ID]; dup {
			return nil, wrapf(ErrDuplicateVertex, "build_hypergraph: vertex %q", v.ID)
		}
		g.vertexIdx[v.ID] = len(g.vertexIDs)
		g.vertexIDs = append(g.vertexIDs, v.ID)
	}

	// Group edges by (normalized) layer so each materialized layer's
	// incidence is built with all its columns in the caller's order.
	byLayer := make(map[LayerTag][]EdgeDef)
	for _, e := range cfg.Edges {
		tag := normalizeLayerTag(e.Layer)
		byLayer[tag] = append(byLayer[tag], e)
	}

	nVerts := len(g.vertexIDs)
	for tag := range wantLayer {
		edges := byLayer[tag]
		if len(edges) == 0 {
			// Invariant 6 (and the build semantics): layers without edges
			// are not materialized, even if listed in active_layers.
			continue
		}

		layer := newLayer(tag, nVerts, g.cfg.HistoryDepth)
		for _, e := range edges {
			if err := addEdgeToLayer(g, layer, e); err != nil {
				// Unknown member ids are silently dropped; an edge that
				// loses all its members is skipped, not a build failure.
				if errors.Is(err, ErrEmptyHyperedge) {
					continue
				}

				return nil, err
			}
		}
		if layer.Incidence.Cols() == 0 {
			continue
		}
		g.Layers[tag] = layer
	}

	return g, nil
}

// addEdgeToLayer resolves e's member vertex ids against g's index (silently
// dropping unknown ones) and appends the resulting column to layer.
func addEdgeToLayer(g *LayeredHyperGraph, layer *Layer, e EdgeDef) error {
	if e.ID == "" {
		return ErrEmptyEdgeID
	}

	rows := make([]int32, 0, len(e.VertexIDs))
	for _, vid := range e.VertexIDs {
		row, ok := g.vertexIdx[vid]
		if !ok {
			continue
		}
		rows = append(rows, int32(row))
	}

	if len(rows) == 0 {
		return wrapf(ErrEmptyHyperedge, "build_hypergraph: edge %q", e.ID)
	}

	layer.Incidence.AddColumn(rows)
	layer.EdgeIDs = append(layer.EdgeIDs, e.ID)
	layer.EdgeMetadata = append(layer.EdgeMetadata, e.Metadata)

	return nil
}
