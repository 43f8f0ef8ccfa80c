// SPDX-License-Identifier: MIT
package graph

import "github.com/fieldmesh/hypercore/matrix"

// CrossLayerQuery returns the dense |E_a| x |E_b| co-incidence matrix
// Bᵀ_a · B_b for two materialized layers, where B_l is layer l's incidence.
// Entry (i,j) counts vertices shared between edge i of layerA and edge j of
// layerB. Fails ErrLayerNotFound if either layer has not been materialized.
func CrossLayerQuery(g *LayeredHyperGraph, layerA, layerB LayerTag) (*matrix.Dense, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	a, ok := g.Layers[layerA]
	if !ok {
		return nil, wrapf(ErrLayerNotFound, "cross_layer_query: layer %q", layerA)
	}
	b, ok := g.Layers[layerB]
	if !ok {
		return nil, wrapf(ErrLayerNotFound, "cross_layer_query: layer %q", layerB)
	}

	denseA, err := a.Incidence.ToDense()
	if err != nil {
		return nil, err
	}
	denseB, err := b.Incidence.ToDense()
	if err != nil {
		return nil, err
	}

	at, err := matrix.Transpose(denseA)
	if err != nil {
		return nil, err
	}
	result, err := matrix.Mul(at, denseB)
	if err != nil {
		return nil, err
	}

	out, ok := result.(*matrix.Dense)
	if !ok {
		return nil, ErrCorruptState
	}

	return out, nil
}

// VertexRecord is the per-vertex, per-layer view returned by QueryLayer.
type VertexRecord struct {
	VertexID string
	Layer    LayerTag
	EdgeIDs  []string // hyperedges of Layer incident to VertexID
	Features []float32
}

// QueryLayer returns the record for vertexID in layer. Unlike structural
// mutation failures, a missing layer or vertex here is reported via ok=false
// rather than an error.
func QueryLayer(g *LayeredHyperGraph, layer LayerTag, vertexID string) (VertexRecord, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	l, ok := g.Layers[layer]
	if !ok {
		return VertexRecord{}, false
	}
	row, ok := g.vertexIdx[vertexID]
	if !ok {
		return VertexRecord{}, false
	}

	var edgeIDs []string
	for col := 0; col < l.Incidence.Cols(); col++ {
		for _, r := range l.Incidence.ColumnRows(col) {
			if int(r) == row {
				edgeIDs = append(edgeIDs, l.EdgeIDs[col])
				break
			}
		}
	}

	dim := l.FeatureDim
	features := make([]float32, dim)
	copy(features, l.Features[row*dim:(row+1)*dim])

	return VertexRecord{
		VertexID: vertexID,
		Layer:    layer,
		EdgeIDs:  edgeIDs,
		Features: features,
	}, true
}

// MultiLayerFeatures concatenates the feature matrices of layers horizontally
// (row = vertex, columns = each layer's features in order). The output is
// always host-resident: concatenation reads through host access to every
// source array, so a single mixed-residency result is never produced.
func MultiLayerFeatures(g *LayeredHyperGraph, layers []LayerTag) ([][]float32, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	resolved := make([]*Layer, len(layers))
	totalDim := 0
	for i, tag := range layers {
		l, ok := g.Layers[tag]
		if !ok {
			return nil, wrapf(ErrLayerNotFound, "multi_layer_features: layer %q", tag)
		}
		resolved[i] = l
		totalDim += l.FeatureDim
	}

	nVerts := len(g.vertexIDs)
	out := make([][]float32, nVerts)
	for row := 0; row < nVerts; row++ {
		rowOut := make([]float32, 0, totalDim)
		for _, l := range resolved {
			rowOut = append(rowOut, l.Features[row*l.FeatureDim:(row+1)*l.FeatureDim]...)
		}
		out[row] = rowOut
	}

	return out, nil
}
