package graph_test

import (
	"testing"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/stretchr/testify/require"
)

func buildSoilPair(t *testing.T) *graph.LayeredHyperGraph {
	t.Helper()
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}, {ID: "v2"}}
	cfg.Edges = []graph.EdgeDef{{ID: "e1", Layer: graph.Soil, VertexIDs: []string{"v1", "v2"}}}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	return g
}

func TestAggregateByEdgeSum(t *testing.T) {
	g := buildSoilPair(t)
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{1, 2, 3, 4}))
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v2", []float32{5, 6, 7, 8}))

	layer := g.Layers[graph.Soil]
	out, err := graph.AggregateByEdge(layer, graph.ReduceSum)
	require.NoError(t, err)

	for col, want := range []float64{6, 8, 10, 12} {
		v, err := out.At(0, col)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestAggregateByEdgeMean(t *testing.T) {
	g := buildSoilPair(t)
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{1, 2, 3, 4}))
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v2", []float32{5, 6, 7, 8}))

	layer := g.Layers[graph.Soil]
	out, err := graph.AggregateByEdge(layer, graph.ReduceMean)
	require.NoError(t, err)

	for col, want := range []float64{3, 4, 5, 6} {
		v, err := out.At(0, col)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestAggregateByEdgeMaxFallsBackToHostLoop(t *testing.T) {
	g := buildSoilPair(t)
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{1, 9, 3, 4}))
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v2", []float32{5, 6, 7, 8}))

	layer := g.Layers[graph.Soil]
	out, err := graph.AggregateByEdge(layer, graph.ReduceMax)
	require.NoError(t, err)

	for col, want := range []float64{5, 9, 7, 8} {
		v, err := out.At(0, col)
		require.NoError(t, err)
		require.Equal(t, want, v, "col %d", col)
	}
}
