// SPDX-License-Identifier: MIT
package contract

import (
	"fmt"
	"time"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/fieldmesh/hypercore/models"
	"github.com/fieldmesh/hypercore/synthetic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BuildGraph constructs and caches a LayeredHyperGraph for cfg.FarmID,
// overwriting any graph previously cached under the same farm id.
func BuildGraph(s *ProcessState, cfg graph.FarmConfig) (*graph.LayeredHyperGraph, error) {
	defer observeEntryPoint("build_graph")()

	g, err := graph.BuildHyperGraph(cfg, graph.WithHistoryDepth(s.graphCfg.HistoryDepth), graph.WithCadenceMinutes(s.graphCfg.CadenceMinutes))
	if err != nil {
		return nil, errors.Wrapf(ErrConfig, "farm %q: %v", cfg.FarmID, err)
	}

	s.CacheGraph(cfg.FarmID, g)
	s.logger.Info("graph built", zap.String("farm_id", cfg.FarmID), zap.Int("vertices", g.VertexCount()))

	return g, nil
}

// LayerQueryResult mirrors query_layer's read-path contract at the
// cross-boundary surface: either a found record, or an error string naming
// the missing entity and the available alternatives. A missing layer or
// vertex is reported in the record, never as a call failure.
type LayerQueryResult struct {
	Record graph.VertexRecord
	Found  bool
	Error  string
}

// QueryFarmStatus returns, for every layer materialized in the cached graph
// farmID, the query_layer result for zoneID — a zone/crop-bed is itself a
// vertex in this model, so this is query_layer broadcast across all active
// layers rather than a single one. A layer missing zoneID (or with no
// member vertices) reports an error record for that layer only; the call
// as a whole still succeeds.
func QueryFarmStatus(s *ProcessState, farmID string, zoneID string) (map[graph.LayerTag]LayerQueryResult, error) {
	defer observeEntryPoint("query_farm_status")()

	g, ok := s.GetCachedGraph(farmID)
	if !ok {
		cacheHitsTotal.WithLabelValues("miss").Inc()
		return nil, errors.Wrapf(ErrGraphNotFound, "farm %q", farmID)
	}
	cacheHitsTotal.WithLabelValues("hit").Inc()

	out := make(map[graph.LayerTag]LayerQueryResult, len(g.Layers))
	for tag := range g.Layers {
		rec, found := graph.QueryLayer(g, tag, zoneID)
		if !found {
			out[tag] = LayerQueryResult{Error: fmt.Sprintf(
				"vertex %q not found in layer %q; available vertices: %v", zoneID, tag, g.VertexIDs(),
			)}
			continue
		}
		out[tag] = LayerQueryResult{Record: rec, Found: true}
	}

	return out, nil
}

// IrrigationSchedule computes an irrigation schedule over the cached graph
// farmID's soil/weather layers.
func IrrigationSchedule(s *ProcessState, farmID string, horizonDays int, forecast models.WeatherForecast) ([]models.IrrigationRecord, error) {
	defer observeEntryPoint("irrigation_schedule")()

	g, ok := s.GetCachedGraph(farmID)
	if !ok {
		return nil, errors.Wrapf(ErrGraphNotFound, "farm %q", farmID)
	}

	return models.IrrigationSchedule(g, horizonDays, forecast), nil
}

// NutrientReport scores per-vertex nutrient deficits for the cached graph
// farmID.
func NutrientReport(s *ProcessState, farmID string, weights models.NutrientWeights) ([]models.NutrientRecord, error) {
	defer observeEntryPoint("nutrient_report")()

	g, ok := s.GetCachedGraph(farmID)
	if !ok {
		return nil, errors.Wrapf(ErrGraphNotFound, "farm %q", farmID)
	}

	return models.NutrientReport(g, weights), nil
}

// YieldForecast forecasts yield for the cached graph farmID, using the
// currently trained residual coefficients if any have been installed.
func YieldForecast(s *ProcessState, farmID string) ([]models.YieldRecord, error) {
	defer observeEntryPoint("yield_forecast")()

	g, ok := s.GetCachedGraph(farmID)
	if !ok {
		return nil, errors.Wrapf(ErrGraphNotFound, "farm %q", farmID)
	}

	beta, _ := s.ResidualBeta()

	return models.YieldForecast(g, beta), nil
}

// DetectAnomalies runs the Western Electric SPC rules over the cached graph
// farmID's feature history, evaluated as of now.
func DetectAnomalies(s *ProcessState, farmID string, now time.Time) ([]models.AnomalyRecord, error) {
	defer observeEntryPoint("detect_anomalies")()

	g, ok := s.GetCachedGraph(farmID)
	if !ok {
		return nil, errors.Wrapf(ErrGraphNotFound, "farm %q", farmID)
	}

	records := models.DetectAnomalies(g, now)
	for _, rec := range records {
		anomaliesRaisedTotal.WithLabelValues(rec.Layer, rec.Severity).Inc()
	}

	return records, nil
}

// FeatureUpdate is one vertex's fresh reading for a single layer, to be
// pushed into its ring-buffer history via update_features.
type FeatureUpdate struct {
	VertexID string
	Values   []float32
}

// UpdateFeatures pushes a batch of fresh readings for layer into the cached
// graph farmID's feature history. The first error encountered is returned
// after attempting every update in the batch.
func UpdateFeatures(s *ProcessState, farmID string, layer graph.LayerTag, updates []FeatureUpdate) error {
	defer observeEntryPoint("update_features")()

	g, ok := s.GetCachedGraph(farmID)
	if !ok {
		return errors.Wrapf(ErrGraphNotFound, "farm %q", farmID)
	}

	var firstErr error
	for _, u := range updates {
		if err := graph.PushFeatures(g, layer, u.VertexID, u.Values); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// TrainYieldResidual trains and installs a ridge-regression residual
// correction for yield forecasting, grounded on the cached graph farmID and
// a caller-supplied map of vertex id to observed yield.
func TrainYieldResidual(s *ProcessState, farmID string, outcomes map[string]float64) (models.TrainResult, error) {
	defer observeEntryPoint("train_yield_residual")()

	g, ok := s.GetCachedGraph(farmID)
	if !ok {
		return models.TrainResult{}, errors.Wrapf(ErrGraphNotFound, "farm %q", farmID)
	}

	beta, result, err := models.TrainYieldResidual(g, outcomes)
	trainingOutcomesTotal.WithLabelValues(result.Status).Inc()
	if err != nil {
		return result, errors.Wrapf(err, "farm %q", farmID)
	}
	if result.Status == "trained" {
		s.SetResidualBeta(beta)
		s.logger.Info("yield residual trained", zap.String("farm_id", farmID), zap.Int("n_obs", len(outcomes)))
	}

	return result, nil
}

// GenerateSynthetic produces a fresh synthetic dataset; it does not touch
// the graph cache.
func GenerateSynthetic(s *ProcessState, farmType string, days int, seed int64) (*synthetic.Dataset, error) {
	defer observeEntryPoint("generate_synthetic")()

	return synthetic.Generate(farmType, days, seed)
}
