package graph_test

import (
	"testing"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/stretchr/testify/require"
)

func TestAddVertexExtendsAllLayers(t *testing.T) {
	g := buildSoilPair(t)
	require.NoError(t, graph.AddVertex(g, "v3"))
	require.Equal(t, 3, g.VertexCount())

	layer := g.Layers[graph.Soil]
	require.Equal(t, 3*layer.FeatureDim, len(layer.Features))
	require.Equal(t, 3, layer.Incidence.Rows())
}

func TestAddVertexRejectsDuplicate(t *testing.T) {
	g := buildSoilPair(t)
	err := graph.AddVertex(g, "v1")
	require.ErrorIs(t, err, graph.ErrDuplicateVertex)
}

func TestAddHyperedgeAutoCreatesLayer(t *testing.T) {
	g := buildSoilPair(t)
	require.False(t, g.HasLayer(graph.NPK))

	err := graph.AddHyperedge(g, graph.NPK, "npk-e1", []string{"v1", "v2"}, nil)
	require.NoError(t, err)
	require.True(t, g.HasLayer(graph.NPK))

	rec, ok := graph.QueryLayer(g, graph.NPK, "v1")
	require.True(t, ok)
	require.Equal(t, []string{"npk-e1"}, rec.EdgeIDs)
}

func TestAddHyperedgeRejectsDuplicateID(t *testing.T) {
	g := buildSoilPair(t)
	err := graph.AddHyperedge(g, graph.Soil, "e1", []string{"v1"}, nil)
	require.ErrorIs(t, err, graph.ErrDuplicateEdge)
}

func TestAddHyperedgeAllUnknownMembersFails(t *testing.T) {
	g := buildSoilPair(t)
	err := graph.AddHyperedge(g, graph.Soil, "e-ghost", []string{"ghost1", "ghost2"}, nil)
	require.ErrorIs(t, err, graph.ErrEmptyHyperedge)
}

func TestRemoveHyperedge(t *testing.T) {
	g := buildSoilPair(t)
	require.True(t, graph.RemoveHyperedge(g, graph.Soil, "e1"))
	require.False(t, graph.RemoveHyperedge(g, graph.Soil, "e1"), "already removed")
	require.False(t, graph.RemoveHyperedge(g, graph.Vision, "e1"), "layer never materialized")
}
