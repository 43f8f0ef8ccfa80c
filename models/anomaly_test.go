package models_test

import (
	"testing"
	"time"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/fieldmesh/hypercore/models"
	"github.com/stretchr/testify/require"
)

func TestDetectAnomaliesWesternElectricR1(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
	cfg.Edges = []graph.EdgeDef{{ID: "soil-e", Layer: graph.Soil, VertexIDs: []string{"v1"}}}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	baseline := []float32{0.295, 0.300, 0.305, 0.298, 0.302, 0.297, 0.303, 0.299, 0.301, 0.296,
		0.304, 0.300, 0.298, 0.302, 0.297, 0.303, 0.299, 0.301, 0.296, 0.304,
		0.300, 0.298, 0.302, 0.297, 0.303, 0.299, 0.301, 0.296, 0.304, 0.300}
	for _, m := range baseline {
		require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{m, 0, 0, 0}))
	}
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{0.35, 0, 0, 0}))

	records := models.DetectAnomalies(g, time.Unix(0, 0))

	found := false
	for _, r := range records {
		if r.Layer == "soil" && r.Feature == "moisture" && r.Severity == "alarm" {
			for _, rule := range r.AnomalyRules {
				if rule == "3sigma" {
					found = true
				}
			}
		}
	}
	require.True(t, found)
}

func TestDetectAnomaliesSkipsShortHistory(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
	cfg.Edges = []graph.EdgeDef{{ID: "soil-e", Layer: graph.Soil, VertexIDs: []string{"v1"}}}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{0.3, 0, 0, 0}))

	require.Empty(t, models.DetectAnomalies(g, time.Unix(0, 0)))
}

func TestDetectAnomaliesCrossLayerEscalation(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "greenhouse")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
	cfg.Edges = []graph.EdgeDef{
		{ID: "soil-e", Layer: graph.Soil, VertexIDs: []string{"v1"}},
		{ID: "cam-e", Layer: graph.Vision, VertexIDs: []string{"v1"}},
	}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		m := 0.295 + float32(i%3)*0.005
		require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{m, 0, 0, 0}))
	}
	require.NoError(t, graph.PushFeatures(g, graph.Soil, "v1", []float32{0.40, 0, 0, 0}))

	// One vision push: far too short for SPC, but the raw anomaly score
	// still flags the vertex for cross-layer correlation.
	require.NoError(t, graph.PushFeatures(g, graph.Vision, "v1", []float32{50, 0.5, 0.85, 0.2}))

	records := models.DetectAnomalies(g, time.Unix(0, 0))
	require.NotEmpty(t, records)

	confirmed := false
	for _, r := range records {
		if r.Layer == "soil" && r.CrossLayerConfirmed {
			confirmed = true
		}
	}
	require.True(t, confirmed, "soil alerts must escalate when vision raw score exceeds 0.7")
}
