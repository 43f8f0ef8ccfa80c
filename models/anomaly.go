// SPDX-License-Identifier: MIT
package models

import (
	"math"
	"time"

	"github.com/fieldmesh/hypercore/graph"
)

const (
	minHistoryForSPC = 8
	sigmaGuard       = 1e-8
	anomalyCadence   = 15 * time.Minute
	visionAnomalyCol = 2 // canopy_coverage(0), growth_stage(1), anomaly_score(2), ndvi(3)
	visionRawThresh  = 0.7
)

var layerAnomalyType = map[graph.LayerTag]string{
	graph.Soil:       "environmental",
	graph.Weather:    "environmental",
	graph.NPK:        "nutrient_imbalance",
	graph.Vision:     "visual_anomaly",
	graph.Lighting:   "light_anomaly",
	graph.Irrigation: "irrigation_fault",
}

func anomalyTypeFor(tag graph.LayerTag) string {
	if t, ok := layerAnomalyType[tag]; ok {
		return t
	}

	return "unknown"
}

// DetectAnomalies runs Western Electric SPC rules across every materialized
// layer whose history_length >= 8, then applies the soil/vision cross-layer
// escalation. now anchors the per-record timestamp window.
func DetectAnomalies(g *graph.LayeredHyperGraph, now time.Time) []AnomalyRecord {
	var records []AnomalyRecord
	soilAnomalousVertex := make(map[string]bool)
	visionAnomalousVertex := make(map[string]bool)

	for tag, layer := range g.Layers {
		// The raw vision score flags a vertex for cross-layer correlation
		// independently of the SPC rules, so it is not gated on history.
		if tag == graph.Vision && layer.FeatureDim > visionAnomalyCol {
			for _, vid := range g.VertexIDs() {
				row, ok := g.VertexIndex(vid)
				if !ok {
					continue
				}
				if float64(layer.Features[row*layer.FeatureDim+visionAnomalyCol]) > visionRawThresh {
					visionAnomalousVertex[vid] = true
				}
			}
		}

		if layer.HistoryLength < minHistoryForSPC {
			continue
		}

		for _, vid := range g.VertexIDs() {
			row, ok := g.VertexIndex(vid)
			if !ok {
				continue
			}

			hist, err := graph.GetHistory(g, tag, vid)
			if err != nil {
				continue
			}

			for d := 0; d < layer.FeatureDim; d++ {
				rec, fired := evaluateWesternElectric(g, tag, vid, row, d, hist, now)
				if fired {
					records = append(records, rec)
					if tag == graph.Soil {
						soilAnomalousVertex[vid] = true
					}
					if tag == graph.Vision {
						visionAnomalousVertex[vid] = true
					}
				}
			}
		}
	}

	for i := range records {
		vid := records[i].VertexID
		if soilAnomalousVertex[vid] && visionAnomalousVertex[vid] {
			records[i].CrossLayerConfirmed = true
			if records[i].Severity == "warning" {
				records[i].Severity = "alarm"
			}
		}
	}

	return records
}

func evaluateWesternElectric(g *graph.LayeredHyperGraph, tag graph.LayerTag, vid string, row, feature int, hist [][]float32, now time.Time) (AnomalyRecord, bool) {
	layer := g.Layers[tag]
	values := make([]float64, len(hist))
	for i, h := range hist {
		values[i] = float64(h[feature])
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	std := math.Sqrt(variance)

	current := float64(layer.Features[row*layer.FeatureDim+feature])

	if std < sigmaGuard {
		return AnomalyRecord{}, false
	}

	sigmaDist := func(x float64) float64 { return math.Abs(x-mean) / std }

	n := len(values)
	last := func(k int) []float64 {
		if k > n {
			k = n
		}
		out := make([]float64, 0, k+1)
		out = append(out, current)
		for i := 0; i < k; i++ {
			out = append(out, values[n-1-i])
		}

		return out
	}

	r1 := sigmaDist(current) > 3
	r2 := countExceeding(last(2), mean, std, 2) >= 2
	r3 := countExceeding(last(4), mean, std, 1) >= 4
	r4 := sameSide(last(7), mean)

	var rules []string
	if r1 {
		rules = append(rules, "3sigma")
	}
	if r2 {
		rules = append(rules, "2of3_2sigma")
	}
	if r3 {
		rules = append(rules, "4of5_1sigma")
	}
	if r4 {
		rules = append(rules, "8_same_side")
	}

	severity := ""
	switch {
	case r1:
		severity = "alarm"
	case r2 || r4:
		severity = "warning"
	}
	if severity == "" {
		return AnomalyRecord{}, false
	}

	return AnomalyRecord{
		VertexID:       vid,
		Layer:          string(tag),
		Feature:        featureName(tag, feature),
		AnomalyType:    anomalyTypeFor(tag),
		Severity:       severity,
		CurrentValue:   current,
		RollingMean:    mean,
		RollingStd:     std,
		SigmaDeviation: sigmaDist(current),
		AnomalyRules:   rules,
		TimestampStart: now.Add(-anomalyCadence * time.Duration(layer.HistoryLength)),
		TimestampEnd:   now,
	}, true
}

func countExceeding(values []float64, mean, std float64, sigmaK float64) int {
	count := 0
	for _, v := range values {
		if math.Abs(v-mean)/std > sigmaK {
			count++
		}
	}

	return count
}

func sameSide(values []float64, mean float64) bool {
	if len(values) == 0 {
		return false
	}
	positive := values[0] > mean
	for _, v := range values {
		if (v > mean) != positive {
			return false
		}
	}

	return true
}

var layerFeatureNames = map[graph.LayerTag][]string{
	graph.Soil:             {"moisture", "temperature", "conductivity", "pH"},
	graph.Irrigation:       {"flow_rate", "pressure", "valve_state"},
	graph.Weather:          {"temperature", "humidity", "precip", "wind_speed", "solar_rad"},
	graph.NPK:              {"N", "P", "K"},
	graph.Lighting:         {"PAR", "DLI", "spectrum_index"},
	graph.Vision:           {"canopy_coverage", "growth_stage", "anomaly_score", "ndvi"},
	graph.CropRequirements: {"target_yield", "growth_progress", "N_target", "P_target", "K_target"},
}

func featureName(tag graph.LayerTag, idx int) string {
	names, ok := layerFeatureNames[tag]
	if !ok || idx >= len(names) {
		return "feature_" + string(rune('0'+idx))
	}

	return names[idx]
}
