// SPDX-License-Identifier: MIT
package models

import (
	"math"

	"github.com/fieldmesh/hypercore/graph"
)

const (
	effectiveDepthMM = 1000.0
	wiltingPoint     = 0.15
	fieldCapacity    = 0.35
	volumeCapFrac    = 0.10
)

// IrrigationSchedule runs the water-balance irrigation scheduler over
// horizonDays. Requires soil and weather layers; returns nil when either is
// absent. crop_requirements and irrigation layers are consulted if present.
func IrrigationSchedule(g *graph.LayeredHyperGraph, horizonDays int, forecast WeatherForecast) []IrrigationRecord {
	soil, ok := g.Layers[graph.Soil]
	if !ok {
		return nil
	}
	weather, ok := g.Layers[graph.Weather]
	if !ok {
		return nil
	}
	cropReq := g.Layers[graph.CropRequirements] // optional, may be nil
	irrLayer := g.Layers[graph.Irrigation]       // optional, may be nil

	nVerts := g.VertexCount()
	moisture := make([]float64, nVerts)
	for v := 0; v < nVerts; v++ {
		moisture[v] = float64(soil.Features[v*soil.FeatureDim+0])
	}

	// Fallback precipitation when no forecast covers a day: the mean of the
	// current readings, shared by every vertex.
	var meanPrecip float64
	if nVerts > 0 {
		for v := 0; v < nVerts; v++ {
			meanPrecip += float64(weather.Features[v*weather.FeatureDim+2])
		}
		meanPrecip /= float64(nVerts)
	}

	var records []IrrigationRecord
	for day := 1; day <= horizonDays; day++ {
		projected := make([]float64, nVerts)
		recommended := make([]float64, nVerts)

		for v := 0; v < nVerts; v++ {
			t := float64(weather.Features[v*weather.FeatureDim+0])
			rs := float64(weather.Features[v*weather.FeatureDim+4])

			var et0 float64
			if len(forecast.ET0Forecast) >= day {
				et0 = float64(forecast.ET0Forecast[day-1])
			} else {
				et0 = 0.0023 * (t + 17.8) * math.Sqrt(math.Max(0.3*math.Abs(t), 2)) * rs
			}

			kc := 1.0
			if cropReq != nil {
				progress := clamp(float64(cropReq.Features[v*cropReq.FeatureDim+1]), 0, 1)
				kc = 0.3 + 0.9*progress
			}

			precip := meanPrecip
			if len(forecast.PrecipForecast) >= day {
				precip = float64(forecast.PrecipForecast[day-1])
			}

			mPrime := math.Max(moisture[v]-(et0*kc+precip)/effectiveDepthMM, 0)
			projected[v] = mPrime

			var rec float64
			if mPrime < wiltingPoint {
				rec = math.Min(fieldCapacity-mPrime, volumeCapFrac)
			}
			recommended[v] = rec
			moisture[v] = mPrime + rec
		}

		records = append(records, aggregateIrrigationDay(g, irrLayer, day, projected, recommended)...)
	}

	return records
}

func aggregateIrrigationDay(g *graph.LayeredHyperGraph, irrLayer *graph.Layer, day int, projected, recommended []float64) []IrrigationRecord {
	if irrLayer == nil || irrLayer.Incidence.Cols() == 0 {
		ids := g.VertexIDs()
		out := make([]IrrigationRecord, len(ids))
		for v, id := range ids {
			out[v] = irrigationRecordFor(id, day, projected[v], recommended[v])
		}
		return out
	}

	out := make([]IrrigationRecord, irrLayer.Incidence.Cols())
	for col := range out {
		members := irrLayer.Incidence.ColumnRows(col)
		var pSum, rSum float64
		for _, row := range members {
			pSum += projected[row]
			rSum += recommended[row]
		}
		n := float64(len(members))
		if n == 0 {
			n = 1
		}
		out[col] = irrigationRecordFor(irrLayer.EdgeIDs[col], day, pSum/n, rSum/n)
	}

	return out
}

func irrigationRecordFor(zoneID string, day int, projected, recommended float64) IrrigationRecord {
	priority := clamp((wiltingPoint-projected)/(fieldCapacity-wiltingPoint), 0, 1)

	reason := "moisture_adequate"
	switch {
	case projected < wiltingPoint:
		reason = "below_wilting_point"
	case recommended > 0:
		reason = "projected_deficit"
	}

	return IrrigationRecord{
		ZoneID:            zoneID,
		Day:               day,
		Irrigate:          recommended > 0,
		VolumeLiters:      recommended * 1000,
		ProjectedMoisture: projected,
		Priority:          priority,
		TriggerReason:     reason,
	}
}
