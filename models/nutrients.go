// SPDX-License-Identifier: MIT
package models

import "github.com/fieldmesh/hypercore/graph"

// NutrientWeights are the N/P/K severity contribution weights.
type NutrientWeights struct {
	N, P, K float64
}

// DefaultNutrientWeights is the default N/P/K weighting (0.50, 0.25, 0.25).
var DefaultNutrientWeights = NutrientWeights{N: 0.50, P: 0.25, K: 0.25}

// NutrientReport scores NPK deficits against crop_requirements, optionally
// boosted by vision anomaly scores. Requires npk and crop_requirements;
// returns nil if either is absent.
func NutrientReport(g *graph.LayeredHyperGraph, weights NutrientWeights) []NutrientRecord {
	npk, ok := g.Layers[graph.NPK]
	if !ok {
		return nil
	}
	cropReq, ok := g.Layers[graph.CropRequirements]
	if !ok {
		return nil
	}
	vision := g.Layers[graph.Vision] // optional

	nVerts := g.VertexCount()

	reqMax := 1.0
	for v := 0; v < nVerts; v++ {
		for _, req := range []float32{
			cropReq.Features[v*cropReq.FeatureDim+2],
			cropReq.Features[v*cropReq.FeatureDim+3],
			cropReq.Features[v*cropReq.FeatureDim+4],
		} {
			if float64(req) > reqMax {
				reqMax = float64(req)
			}
		}
	}

	dN := make([]float64, nVerts)
	dP := make([]float64, nVerts)
	dK := make([]float64, nVerts)
	severity := make([]float64, nVerts)
	boosted := make([]bool, nVerts)

	for v := 0; v < nVerts; v++ {
		curN := float64(npk.Features[v*npk.FeatureDim+0])
		curP := float64(npk.Features[v*npk.FeatureDim+1])
		curK := float64(npk.Features[v*npk.FeatureDim+2])
		reqN := float64(cropReq.Features[v*cropReq.FeatureDim+2])
		reqP := float64(cropReq.Features[v*cropReq.FeatureDim+3])
		reqK := float64(cropReq.Features[v*cropReq.FeatureDim+4])

		dN[v] = max0(reqN - curN)
		dP[v] = max0(reqP - curP)
		dK[v] = max0(reqK - curK)

		progress := clamp(float64(cropReq.Features[v*cropReq.FeatureDim+1]), 0, 1)
		gWeight := 1.5 - 0.5*progress

		s := clamp((weights.N*dN[v]+weights.P*dP[v]+weights.K*dK[v])*gWeight/(reqMax*1.5), 0, 1)

		if vision != nil {
			anomalyScore := float64(vision.Features[v*vision.FeatureDim+2])
			if anomalyScore > 0.5 {
				s = clamp(s*2, 0, 1)
				boosted[v] = true
			}
		}
		severity[v] = s
	}

	if npk.Incidence.Cols() == 0 {
		return nil
	}

	out := make([]NutrientRecord, npk.Incidence.Cols())
	for col := range out {
		members := npk.Incidence.ColumnRows(col)
		n := float64(len(members))
		if n == 0 {
			n = 1
		}

		var nSum, pSum, kSum, sSum float64
		visualConfirmed := false
		for _, row := range members {
			nSum += dN[row]
			pSum += dP[row]
			kSum += dK[row]
			sSum += severity[row]
			if boosted[row] {
				visualConfirmed = true
			}
		}

		nAvg, pAvg, kAvg := nSum/n, pSum/n, kSum/n
		out[col] = NutrientRecord{
			ZoneID:             npk.EdgeIDs[col],
			NitrogenDeficit:    nAvg,
			PhosphorusDeficit:  pAvg,
			PotassiumDeficit:   kAvg,
			SeverityScore:      sSum / n,
			Urgency:            urgencyTier(sSum / n),
			SuggestedAmendment: suggestAmendment(nAvg, pAvg, kAvg),
			VisualConfirmed:    visualConfirmed,
		}
	}

	return out
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}

	return v
}

func urgencyTier(severity float64) string {
	switch {
	case severity < 0.25:
		return "low"
	case severity < 0.5:
		return "medium"
	case severity < 0.75:
		return "high"
	default:
		return "critical"
	}
}

func suggestAmendment(n, p, k float64) string {
	var nutrients []string
	if n > 0 {
		nutrients = append(nutrients, "nitrogen")
	}
	if p > 0 {
		nutrients = append(nutrients, "phosphorus")
	}
	if k > 0 {
		nutrients = append(nutrients, "potassium")
	}
	if len(nutrients) == 0 {
		return "none"
	}

	out := "apply "
	for i, name := range nutrients {
		if i > 0 {
			out += "/"
		}
		out += name
	}

	return out + " fertilizer"
}
