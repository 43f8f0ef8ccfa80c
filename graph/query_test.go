package graph_test

import (
	"testing"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/stretchr/testify/require"
)

// TestCrossLayerQuerySanity reproduces the single-shared-vertex scenario:
// one soil edge and one weather edge sharing exactly one vertex must yield
// the 1x1 matrix [[1]].
func TestCrossLayerQuerySanity(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}, {ID: "v2"}}
	cfg.Edges = []graph.EdgeDef{
		{ID: "soil-e1", Layer: graph.Soil, VertexIDs: []string{"v1"}},
		{ID: "weather-e1", Layer: graph.Weather, VertexIDs: []string{"v1", "v2"}},
	}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	result, err := graph.CrossLayerQuery(g, graph.Soil, graph.Weather)
	require.NoError(t, err)
	require.Equal(t, 1, result.Rows())
	require.Equal(t, 1, result.Cols())

	v, err := result.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestCrossLayerQueryMissingLayerFails(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
	cfg.Edges = []graph.EdgeDef{{ID: "e1", Layer: graph.Soil, VertexIDs: []string{"v1"}}}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	_, err = graph.CrossLayerQuery(g, graph.Soil, graph.Vision)
	require.ErrorIs(t, err, graph.ErrLayerNotFound)
}

func TestMultiLayerFeaturesConcatenatesInOrder(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
	cfg.Edges = []graph.EdgeDef{
		{ID: "e1", Layer: graph.Soil, VertexIDs: []string{"v1"}},
		{ID: "e2", Layer: graph.Weather, VertexIDs: []string{"v1"}},
	}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	rows, err := graph.MultiLayerFeatures(g, []graph.LayerTag{graph.Soil, graph.Weather})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], graph.DefaultFeatureDim(graph.Soil)+graph.DefaultFeatureDim(graph.Weather))
}
