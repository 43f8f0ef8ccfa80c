package models_test

import (
	"testing"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/fieldmesh/hypercore/models"
	"github.com/stretchr/testify/require"
)

func TestNutrientDeficitArithmetic(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}, {ID: "v2"}}
	cfg.Edges = []graph.EdgeDef{
		{ID: "npk-e", Layer: graph.NPK, VertexIDs: []string{"v1", "v2"}},
		{ID: "cropreq-e", Layer: graph.CropRequirements, VertexIDs: []string{"v1", "v2"}},
	}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	require.NoError(t, graph.PushFeatures(g, graph.NPK, "v1", []float32{50, 30, 40}))
	require.NoError(t, graph.PushFeatures(g, graph.CropRequirements, "v1", []float32{0, 0, 80, 60, 70}))

	require.NoError(t, graph.PushFeatures(g, graph.NPK, "v2", []float32{80, 60, 70}))
	require.NoError(t, graph.PushFeatures(g, graph.CropRequirements, "v2", []float32{0, 0, 80, 60, 70}))

	records := models.NutrientReport(g, models.DefaultNutrientWeights)
	require.Len(t, records, 1)

	r := records[0]
	require.InDelta(t, 15, r.NitrogenDeficit, 1e-9)
	require.InDelta(t, 15, r.PhosphorusDeficit, 1e-9)
	require.InDelta(t, 15, r.PotassiumDeficit, 1e-9)
}

func TestNutrientReportMissingLayerReturnsNil(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	require.Nil(t, models.NutrientReport(g, models.DefaultNutrientWeights))
}

func TestNutrientReportVisionBoostDoublesSeverity(t *testing.T) {
	build := func(anomalyScore float32) []models.NutrientRecord {
		cfg := graph.NewFarmConfig("f", "greenhouse")
		cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
		cfg.Edges = []graph.EdgeDef{
			{ID: "npk-e", Layer: graph.NPK, VertexIDs: []string{"v1"}},
			{ID: "cropreq-e", Layer: graph.CropRequirements, VertexIDs: []string{"v1"}},
			{ID: "cam-e", Layer: graph.Vision, VertexIDs: []string{"v1"}},
		}

		g, err := graph.BuildHyperGraph(cfg)
		require.NoError(t, err)

		require.NoError(t, graph.PushFeatures(g, graph.NPK, "v1", []float32{50, 30, 40}))
		require.NoError(t, graph.PushFeatures(g, graph.CropRequirements, "v1", []float32{0, 0, 80, 60, 70}))
		// canopy_coverage, growth_stage, anomaly_score, ndvi: the boost keys
		// off anomaly_score, never ndvi.
		require.NoError(t, graph.PushFeatures(g, graph.Vision, "v1", []float32{50, 0.5, anomalyScore, 0.9}))

		return models.NutrientReport(g, models.DefaultNutrientWeights)
	}

	quiet := build(0.1)
	require.Len(t, quiet, 1)
	require.False(t, quiet[0].VisualConfirmed)

	flagged := build(0.8)
	require.Len(t, flagged, 1)
	require.True(t, flagged[0].VisualConfirmed)
	require.InDelta(t, 2*quiet[0].SeverityScore, flagged[0].SeverityScore, 1e-9,
		"severity doubles (below the clamp) when the anomaly score exceeds 0.5")
}
