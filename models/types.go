// SPDX-License-Identifier: MIT
// Package models implements the predictive analytics layered on top of a
// graph.LayeredHyperGraph: irrigation scheduling, nutrient deficit scoring,
// yield forecasting and Western-Electric anomaly detection.
package models

import "time"

// WeatherForecast optionally overrides on-graph weather statistics for the
// irrigation scheduler.
type WeatherForecast struct {
	PrecipForecast []float32
	ET0Forecast    []float32
}

// IrrigationRecord is one zone/vertex-day schedule entry.
type IrrigationRecord struct {
	ZoneID            string
	Day               int
	Irrigate          bool
	VolumeLiters      float64
	ProjectedMoisture float64
	Priority          float64
	TriggerReason     string
}

// NutrientRecord is one zone's deficit/severity assessment.
type NutrientRecord struct {
	ZoneID             string
	NitrogenDeficit    float64
	PhosphorusDeficit  float64
	PotassiumDeficit   float64
	SeverityScore      float64
	Urgency            string
	SuggestedAmendment string
	VisualConfirmed    bool
}

// StressFactors are the four yield stress coefficients, each in [0,1].
type StressFactors struct {
	Ks, Kn, Kl, Kw float64
}

// YieldRecord is one crop-bed yield forecast.
type YieldRecord struct {
	CropBedID         string
	YieldEstimateKgM2 float64
	YieldLower        float64
	YieldUpper        float64
	Confidence        float64
	StressFactors     StressFactors
	ModelLayer        string // "fao_only" | "fao_plus_residual"
}

// TrainResult reports the outcome of TrainYieldResidual.
type TrainResult struct {
	Status        string // "trained" | "insufficient_data" | "numeric_error"
	NObservations int
	NCoefficients int
}

// AnomalyRecord is one Western-Electric alarm or warning for a single
// (vertex, feature) pair of a layer. A rule that fires without raising an
// alarm or warning produces no record.
type AnomalyRecord struct {
	VertexID            string
	Layer               string
	Feature             string
	AnomalyType         string
	Severity            string // "alarm" | "warning"
	CurrentValue        float64
	RollingMean         float64
	RollingStd          float64
	SigmaDeviation      float64
	AnomalyRules        []string
	CrossLayerConfirmed bool
	TimestampStart      time.Time
	TimestampEnd        time.Time
}

func clamp(v, lo, hi float64) float64 {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}
