// SPDX-License-Identifier: MIT
package contract

import (
	"github.com/fieldmesh/hypercore/backend"
	"github.com/fieldmesh/hypercore/graph"
)

// SerializedLayer is the wire form of one graph.Layer: three equal-length
// parallel incidence arrays (one (row, col, val) triple per nonzero) plus
// dense feature/history blocks and host-only metadata. The in-memory host
// form stays compressed-sparse column; the wire form is COO so a foreign
// consumer can read nonzero k as (rows[k], cols[k], vals[k]) without
// knowing the CSC pointer convention.
type SerializedLayer struct {
	IncidenceRows  []int32
	IncidenceCols  []int32
	IncidenceVals  []float32
	NVertices      int
	NEdges         int
	VertexFeatures [][]float32   // dense, NVertices x FeatureDim
	FeatureHistory [][][]float32 // dense, NVertices x FeatureDim x HistoryDepth
	HistoryHead    int
	HistoryLength  int
	EdgeMetadata   []map[string]any
	EdgeIDs        []string
}

// SerializedGraph is the complete wire form of a graph.LayeredHyperGraph.
type SerializedGraph struct {
	FarmID      string
	NVertices   int
	VertexIndex map[string]int
	Layers      map[string]SerializedLayer
}

// ToSerialized materializes g's full state in host form, suitable for
// crossing the process boundary. No device-resident storage reference
// survives in the result, even if g itself is accelerator-resident.
func ToSerialized(g *graph.LayeredHyperGraph) SerializedGraph {
	vertexIDs := g.VertexIDs()
	vertexIndex := make(map[string]int, len(vertexIDs))
	for i, id := range vertexIDs {
		vertexIndex[id] = i
	}

	out := SerializedGraph{
		FarmID:      g.FarmID,
		NVertices:   len(vertexIDs),
		VertexIndex: vertexIndex,
		Layers:      make(map[string]SerializedLayer),
	}

	for tag, layer := range g.Layers {
		// Host-materialisation pass at the boundary: read through a host
		// view so no device-resident reference can leak into the wire form.
		host := backend.EnsureHost(layer).(*graph.Layer)
		out.Layers[string(tag)] = serializeLayer(host)
	}

	return out
}

func serializeLayer(layer *graph.Layer) SerializedLayer {
	nVerts := len(layer.Features) / layer.FeatureDim

	rowIdx, colPtr, vals := layer.Incidence.Export()

	// Expand the CSC column pointer into one column index per nonzero so the
	// three wire arrays are parallel.
	colIdx := make([]int32, len(rowIdx))
	for col := 0; col < len(colPtr)-1; col++ {
		for k := colPtr[col]; k < colPtr[col+1]; k++ {
			colIdx[k] = int32(col)
		}
	}

	features := make([][]float32, nVerts)
	for v := 0; v < nVerts; v++ {
		row := make([]float32, layer.FeatureDim)
		copy(row, layer.Features[v*layer.FeatureDim:(v+1)*layer.FeatureDim])
		features[v] = row
	}

	history := make([][][]float32, nVerts)
	for v := 0; v < nVerts; v++ {
		perFeature := make([][]float32, layer.FeatureDim)
		for d := 0; d < layer.FeatureDim; d++ {
			slots := make([]float32, layer.HistoryDepth)
			for s := 0; s < layer.HistoryDepth; s++ {
				slots[s] = layer.History[(v*layer.FeatureDim+d)*layer.HistoryDepth+s]
			}
			perFeature[d] = slots
		}
		history[v] = perFeature
	}

	return SerializedLayer{
		IncidenceRows:  rowIdx,
		IncidenceCols:  colIdx,
		IncidenceVals:  vals,
		NVertices:      nVerts,
		NEdges:         layer.Incidence.Cols(),
		VertexFeatures: features,
		FeatureHistory: history,
		HistoryHead:    layer.HistoryHead,
		HistoryLength:  layer.HistoryLength,
		EdgeMetadata:   layer.EdgeMetadata,
		EdgeIDs:        layer.EdgeIDs,
	}
}

// FromSerialized checks that farm_id, vertex_index and layers are present
// (n_vertices is a plain int and is only checked as the bound of the
// vertex_index values) and rehydrates a host-resident
// graph.LayeredHyperGraph. Per-layer failures are wrapped with a
// layer-name prefix.
func FromSerialized(s SerializedGraph) (*graph.LayeredHyperGraph, error) {
	if s.FarmID == "" {
		return nil, missingKeyError("farm_id")
	}
	if s.VertexIndex == nil {
		return nil, missingKeyError("vertex_index")
	}
	if s.Layers == nil {
		return nil, missingKeyError("layers")
	}

	cfg := graph.FarmConfig{FarmID: s.FarmID}
	vertexIDs := make([]string, s.NVertices)
	for id, idx := range s.VertexIndex {
		if idx < 0 || idx >= s.NVertices {
			return nil, missingKeyError("vertex_index")
		}
		vertexIDs[idx] = id
	}
	for _, id := range vertexIDs {
		cfg.Vertices = append(cfg.Vertices, graph.VertexDef{ID: id})
	}

	for tag, sl := range s.Layers {
		if len(sl.IncidenceCols) != len(sl.IncidenceRows) {
			return nil, wrapDeserialize(tag, errInconsistentIncidence)
		}

		// Regroup the parallel (row, col) nonzero pairs per edge column,
		// preserving within-column order of appearance.
		members := make([][]string, sl.NEdges)
		for k, col := range sl.IncidenceCols {
			if col < 0 || int(col) >= sl.NEdges {
				return nil, wrapDeserialize(tag, errInconsistentIncidence)
			}
			row := sl.IncidenceRows[k]
			if int(row) < len(vertexIDs) {
				members[col] = append(members[col], vertexIDs[row])
			}
		}

		for col := 0; col < sl.NEdges; col++ {
			edgeID := ""
			if col < len(sl.EdgeIDs) {
				edgeID = sl.EdgeIDs[col]
			}
			var meta map[string]any
			if col < len(sl.EdgeMetadata) {
				meta = sl.EdgeMetadata[col]
			}
			cfg.Edges = append(cfg.Edges, graph.EdgeDef{
				ID: edgeID, Layer: graph.LayerTag(tag), VertexIDs: members[col], Metadata: meta,
			})
		}
		cfg.ActiveLayers = append(cfg.ActiveLayers, graph.LayerTag(tag))
	}

	g, err := graph.BuildHyperGraph(cfg)
	if err != nil {
		return nil, wrapDeserialize("layers", err)
	}

	for tag, sl := range s.Layers {
		l, ok := g.Layers[graph.LayerTag(tag)]
		if !ok {
			continue
		}
		if sl.HistoryHead < 1 || sl.HistoryHead > l.HistoryDepth ||
			sl.HistoryLength < 0 || sl.HistoryLength > l.HistoryDepth {
			return nil, wrapDeserialize(tag, errInconsistentHistory)
		}
		l.HistoryHead = sl.HistoryHead
		l.HistoryLength = sl.HistoryLength
		for v, row := range sl.VertexFeatures {
			if v >= s.NVertices {
				return nil, wrapDeserialize(tag, errInconsistentFeatures)
			}
			if len(row) > l.FeatureDim {
				row = row[:l.FeatureDim]
			}
			copy(l.Features[v*l.FeatureDim:(v+1)*l.FeatureDim], row)
		}
		for v, perFeature := range sl.FeatureHistory {
			if v >= s.NVertices {
				return nil, wrapDeserialize(tag, errInconsistentHistory)
			}
			for d, slots := range perFeature {
				if d >= l.FeatureDim {
					break
				}
				for slot, val := range slots {
					if slot >= l.HistoryDepth {
						break
					}
					l.History[(v*l.FeatureDim+d)*l.HistoryDepth+slot] = val
				}
			}
		}
	}

	return g, nil
}
