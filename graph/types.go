// SPDX-License-Identifier: MIT
package graph

import (
	"sync"

	"github.com/fieldmesh/hypercore/backend"
)

// LayerTag identifies one of the seven closed layer kinds a farm graph can
// materialize. Unknown tags are rejected at BuildHyperGraph/AddHyperedge
// time via ErrUnknownLayerTag.
type LayerTag string

// The closed set of layer tags.
const (
	Soil             LayerTag = "soil"
	Irrigation       LayerTag = "irrigation"
	Weather          LayerTag = "weather"
	Lighting         LayerTag = "lighting"
	CropRequirements LayerTag = "crop_requirements"
	NPK              LayerTag = "npk"
	Vision           LayerTag = "vision"
)

// layerDims is the authoritative feature-dimension table. A tag absent from
// this map defaults to width 1.
var layerDims = map[LayerTag]int{
	Soil:             4,
	Irrigation:       3,
	Weather:          5,
	NPK:              3,
	Lighting:         3,
	Vision:           4,
	CropRequirements: 5,
}

// DefaultFeatureDim returns the authoritative column count for tag, or 1 for
// any tag outside the table.
func DefaultFeatureDim(tag LayerTag) int {
	if d, ok := layerDims[tag]; ok {
		return d
	}

	return 1
}

// knownLayerTags gates the closed set at construction/mutation boundaries.
var knownLayerTags = map[LayerTag]struct{}{
	Soil: {}, Irrigation: {}, Weather: {}, Lighting: {},
	CropRequirements: {}, NPK: {}, Vision: {},
}

// VertexDef is one entry of a farm configuration's vertex list.
type VertexDef struct {
	ID   string
	Type string
}

// EdgeDef is one entry of a farm configuration's edge list.
type EdgeDef struct {
	ID        string
	Layer     LayerTag
	VertexIDs []string
	Metadata  map[string]any
}

// Zone describes one operational area of a farm.
type Zone struct {
	ID       string
	Name     string
	ZoneType string
	AreaM2   float64
	SoilType string
}

// ModelToggles controls which C3 analytics a farm opts into.
type ModelToggles struct {
	Irrigation       bool
	Nutrients        bool
	YieldForecast    bool
	AnomalyDetection bool
}

// FarmConfig is the input to BuildHyperGraph.
type FarmConfig struct {
	FarmID       string
	FarmType     string // "open_field" | "greenhouse" | "hybrid"
	ActiveLayers []LayerTag
	Zones        []Zone
	Models       ModelToggles
	Vertices     []VertexDef
	Edges        []EdgeDef
}

// NewFarmConfig returns a FarmConfig with ModelToggles defaulted to true.
func NewFarmConfig(farmID, farmType string) FarmConfig {
	return FarmConfig{
		FarmID:   farmID,
		FarmType: farmType,
		Models: ModelToggles{
			Irrigation:       true,
			Nutrients:        true,
			YieldForecast:    true,
			AnomalyDetection: true,
		},
	}
}

// Hyperedge is the host-side metadata record for one incidence column.
type Hyperedge struct {
	ID        string
	Layer     LayerTag
	VertexIDs []string // resolved members (unknown ids already dropped)
	Metadata  map[string]any
}

// Layer holds the four materialized items of one active layer: sparse
// incidence, dense features, a per-vertex feature-history ring buffer, and
// host-only edge metadata.
type Layer struct {
	Tag LayerTag

	Incidence *Incidence // |V| x |E_l|, values in {0,1}

	FeatureDim int       // d_l, current vertex_features column count
	Features   []float32 // row-major |V| x FeatureDim

	HistoryDepth  int       // H
	History       []float32 // row-major |V| x FeatureDim x HistoryDepth
	HistoryHead   int       // next write slot, 1-indexed
	HistoryLength int       // valid entries, saturating at HistoryDepth

	EdgeIDs      []string         // parallel to incidence columns
	EdgeMetadata []map[string]any // parallel to incidence columns

	residency backend.Kind
}

// Residency implements backend.ArrayLike so backend.IsDeviceResident and
// backend.EnsureHost can dispatch on a Layer's numeric residency.
func (l *Layer) Residency() backend.Kind { return l.residency }

// newLayer allocates a Layer for nVerts vertices with the authoritative (or
// default-1) feature width for tag, zero-initialized.
func newLayer(tag LayerTag, nVerts, historyDepth int) *Layer {
	dim := DefaultFeatureDim(tag)

	return &Layer{
		Tag:           tag,
		Incidence:     newIncidence(nVerts),
		FeatureDim:    dim,
		Features:      make([]float32, nVerts*dim),
		HistoryDepth:  historyDepth,
		History:       make([]float32, nVerts*dim*historyDepth),
		HistoryHead:   1,
		HistoryLength: 0,
		residency:     backend.Host,
	}
}

// LayeredHyperGraph is a farm identifier, the global vertex index, and a
// mapping from layer tag to Layer. It owns all layer storage exclusively.
// Callers serialize access per farm id; mu is a defensive last line, not a
// concurrency model of its own.
type LayeredHyperGraph struct {
	mu sync.RWMutex

	FarmID    string
	vertexIdx map[string]int // id -> row, dense range 0..|V|-1
	vertexIDs []string       // row -> id
	Layers    map[LayerTag]*Layer

	cfg Config
}

// VertexCount returns the number of indexed vertices.
func (g *LayeredHyperGraph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertexIDs)
}

// VertexIndex returns the row assigned to id and whether id is indexed.
func (g *LayeredHyperGraph) VertexIndex(id string) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	row, ok := g.vertexIdx[id]

	return row, ok
}

// VertexID returns the id assigned to row, or "" if row is out of range.
func (g *LayeredHyperGraph) VertexID(row int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if row < 0 || row >= len(g.vertexIDs) {
		return ""
	}

	return g.vertexIDs[row]
}

// VertexIDs returns a copy of all indexed vertex ids in row order.
func (g *LayeredHyperGraph) VertexIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.vertexIDs))
	copy(out, g.vertexIDs)

	return out
}

// HasLayer reports whether tag has been materialized on g.
func (g *LayeredHyperGraph) HasLayer(tag LayerTag) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.Layers[tag]

	return ok
}
