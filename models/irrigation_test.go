package models_test

import (
	"testing"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/fieldmesh/hypercore/models"
	"github.com/stretchr/testify/require"
)

func fourVertexFarm(t *testing.T) *graph.LayeredHyperGraph {
	t.Helper()
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}, {ID: "v2"}, {ID: "v3"}, {ID: "v4"}}
	cfg.Edges = []graph.EdgeDef{
		{ID: "soil-e", Layer: graph.Soil, VertexIDs: []string{"v1", "v2", "v3", "v4"}},
		{ID: "weather-e", Layer: graph.Weather, VertexIDs: []string{"v1", "v2", "v3", "v4"}},
		{ID: "cropreq-e", Layer: graph.CropRequirements, VertexIDs: []string{"v1", "v2", "v3", "v4"}},
		{ID: "irr-z1", Layer: graph.Irrigation, VertexIDs: []string{"v1", "v2"}},
		{ID: "irr-z2", Layer: graph.Irrigation, VertexIDs: []string{"v3", "v4"}},
	}

	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	for _, vid := range []string{"v1", "v2", "v3", "v4"} {
		require.NoError(t, graph.PushFeatures(g, graph.Weather, vid, []float32{25, 0, 0, 0, 15}))
		require.NoError(t, graph.PushFeatures(g, graph.CropRequirements, vid, []float32{0, 0.5, 0, 0, 0}))
	}

	return g
}

func TestIrrigationDrySoilTrigger(t *testing.T) {
	g := fourVertexFarm(t)
	for _, vid := range []string{"v1", "v2", "v3", "v4"} {
		require.NoError(t, graph.PushFeatures(g, graph.Soil, vid, []float32{0.10, 0, 0, 0}))
	}

	records := models.IrrigationSchedule(g, 1, models.WeatherForecast{})
	require.NotEmpty(t, records)

	anyIrrigate := false
	for _, r := range records {
		if r.Irrigate {
			anyIrrigate = true
		}
	}
	require.True(t, anyIrrigate)
}

func TestIrrigationWetSoilSuppression(t *testing.T) {
	g := fourVertexFarm(t)
	for _, vid := range []string{"v1", "v2", "v3", "v4"} {
		require.NoError(t, graph.PushFeatures(g, graph.Soil, vid, []float32{0.35, 0, 0, 0}))
	}

	records := models.IrrigationSchedule(g, 1, models.WeatherForecast{})
	require.NotEmpty(t, records)

	notIrrigating := 0
	for _, r := range records {
		if !r.Irrigate {
			notIrrigating++
		}
	}
	require.GreaterOrEqual(t, notIrrigating, len(records)/2)
}

func TestIrrigationMissingLayersReturnsNil(t *testing.T) {
	cfg := graph.NewFarmConfig("f", "open_field")
	cfg.Vertices = []graph.VertexDef{{ID: "v1"}}
	g, err := graph.BuildHyperGraph(cfg)
	require.NoError(t, err)

	require.Nil(t, models.IrrigationSchedule(g, 1, models.WeatherForecast{}))
}
