// SPDX-License-Identifier: MIT
package models

import (
	"fmt"
	"math"

	"github.com/fieldmesh/hypercore/graph"
	"github.com/fieldmesh/hypercore/matrix"
)

const ridgeLambda = 1.0

// YieldForecast runs the FAO base model, folding in a ridge residual when
// residualBeta is non-empty and its length matches the assembled feature
// width. Requires crop_requirements; returns nil if absent.
func YieldForecast(g *graph.LayeredHyperGraph, residualBeta []float64) []YieldRecord {
	cropReq, ok := g.Layers[graph.CropRequirements]
	if !ok {
		return nil
	}

	fao, stress := perVertexFAO(g, cropReq)
	X := assembleYieldFeatures(g)

	useResidual := len(residualBeta) > 0 && len(X) > 0 && len(X[0]) == len(residualBeta)

	if cropReq.Incidence.Cols() == 0 {
		return nil
	}

	out := make([]YieldRecord, cropReq.Incidence.Cols())
	for col := range out {
		members := cropReq.Incidence.ColumnRows(col)
		n := float64(len(members))
		if n == 0 {
			n = 1
		}

		var faoSum float64
		var agg StressFactors
		for _, row := range members {
			faoSum += fao[row]
			agg.Ks += stress[row].Ks
			agg.Kn += stress[row].Kn
			agg.Kl += stress[row].Kl
			agg.Kw += stress[row].Kw
		}
		faoAvg := faoSum / n
		agg.Ks /= n
		agg.Kn /= n
		agg.Kl /= n
		agg.Kw /= n

		estimate := faoAvg
		modelLayer := "fao_only"
		ciHalf := 0.20

		if useResidual {
			var residual float64
			for _, row := range members {
				for j, coef := range residualBeta {
					residual += X[row][j] * coef
				}
			}
			residual /= n
			estimate = faoAvg + residual
			modelLayer = "fao_plus_residual"
			ciHalf = 0.10
		}

		out[col] = YieldRecord{
			CropBedID:         cropReq.EdgeIDs[col],
			YieldEstimateKgM2: estimate,
			YieldLower:        estimate * (1 - ciHalf),
			YieldUpper:        estimate * (1 + ciHalf),
			Confidence:        1 - ciHalf,
			StressFactors:     agg,
			ModelLayer:        modelLayer,
		}
	}

	return out
}

// perVertexFAO computes the FAO base yield estimate and its four stress
// factors for every vertex, shared by YieldForecast and the residual fit.
func perVertexFAO(g *graph.LayeredHyperGraph, cropReq *graph.Layer) ([]float64, []StressFactors) {
	nVerts := g.VertexCount()
	fao := make([]float64, nVerts)
	stress := make([]StressFactors, nVerts)

	soil := g.Layers[graph.Soil]
	lighting := g.Layers[graph.Lighting]

	for v := 0; v < nVerts; v++ {
		yp := float64(cropReq.Features[v*cropReq.FeatureDim+0])

		ks := 1.0
		if soil != nil {
			moisture := float64(soil.Features[v*soil.FeatureDim+0])
			ks = clamp((moisture-0.15)/0.20, 0, 1)
		}

		kn := nutrientStressFactor(g, cropReq, v)

		kl := 1.0
		if lighting != nil {
			dli := float64(lighting.Features[v*lighting.FeatureDim+1])
			kl = clamp(dli/20, 0, 1)
		}

		kw := 1.0
		if weather, ok := g.Layers[graph.Weather]; ok {
			t := float64(weather.Features[v*weather.FeatureDim+0])
			kw = weatherStressFactor(t)
		}

		stress[v] = StressFactors{Ks: ks, Kn: kn, Kl: kl, Kw: kw}
		fao[v] = yp * ks * kn * kl * kw
	}

	return fao, stress
}

func nutrientStressFactor(g *graph.LayeredHyperGraph, cropReq *graph.Layer, v int) float64 {
	npk, ok := g.Layers[graph.NPK]
	if !ok {
		return 1.0
	}

	var sumRatio float64
	var count int
	reqs := [3]float64{
		float64(cropReq.Features[v*cropReq.FeatureDim+2]),
		float64(cropReq.Features[v*cropReq.FeatureDim+3]),
		float64(cropReq.Features[v*cropReq.FeatureDim+4]),
	}
	curs := [3]float64{
		float64(npk.Features[v*npk.FeatureDim+0]),
		float64(npk.Features[v*npk.FeatureDim+1]),
		float64(npk.Features[v*npk.FeatureDim+2]),
	}
	for i, req := range reqs {
		if req > 0 {
			d := max0(req - curs[i])
			sumRatio += d / req
			count++
		}
	}
	if count == 0 {
		return 1.0
	}

	return 1 - sumRatio/float64(count)
}

func weatherStressFactor(t float64) float64 {
	switch {
	case t < 5:
		return 0
	case t < 15:
		return (t - 5) / 10
	case t <= 30:
		return 1
	case t < 40:
		return (40 - t) / 10
	default:
		return 0
	}
}

// assembleYieldFeatures concatenates soil, lighting, crop_requirements and
// vision features plus derived cumulative-DLI and composite-soil-health
// columns, per vertex. Layers absent from g contribute no columns.
func assembleYieldFeatures(g *graph.LayeredHyperGraph) [][]float64 {
	nVerts := g.VertexCount()
	if nVerts == 0 {
		return nil
	}

	layers := []graph.LayerTag{graph.Soil, graph.Lighting, graph.CropRequirements, graph.Vision}
	var present []*graph.Layer
	for _, tag := range layers {
		if l, ok := g.Layers[tag]; ok {
			present = append(present, l)
		}
	}

	out := make([][]float64, nVerts)
	for v := 0; v < nVerts; v++ {
		var row []float64
		for _, l := range present {
			for d := 0; d < l.FeatureDim; d++ {
				row = append(row, float64(l.Features[v*l.FeatureDim+d]))
			}
		}
		row = append(row, cumulativeDLI(g, v), compositeSoilHealth(g, v))
		out[v] = row
	}

	return out
}

func cumulativeDLI(g *graph.LayeredHyperGraph, vertexRow int) float64 {
	lighting, ok := g.Layers[graph.Lighting]
	if !ok {
		return 0
	}

	vid := g.VertexID(vertexRow)
	hist, err := graph.GetHistory(g, graph.Lighting, vid)
	if err != nil {
		return 0
	}

	var sum float64
	for _, entry := range hist {
		if lighting.FeatureDim > 1 {
			sum += float64(entry[1])
		}
	}

	return sum
}

func compositeSoilHealth(g *graph.LayeredHyperGraph, v int) float64 {
	soil, ok := g.Layers[graph.Soil]
	if !ok {
		return 0
	}

	moisture := float64(soil.Features[v*soil.FeatureDim+0])
	temp := float64(soil.Features[v*soil.FeatureDim+1])
	conductivity := float64(soil.Features[v*soil.FeatureDim+2])
	ph := float64(soil.Features[v*soil.FeatureDim+3])

	mScore := clamp(1-math.Abs(moisture-0.5)/0.5, 0, 1)
	tScore := clamp(1-math.Abs(temp-22)/20, 0, 1)
	phScore := clamp(1-math.Abs(ph-6.5)/2, 0, 1)
	cScore := clamp(1-conductivity/3, 0, 1)

	return 0.3*mScore + 0.25*tScore + 0.25*phScore + 0.2*cScore
}

// TrainYieldResidual fits β = (XᵀX + λI)⁻¹Xᵀr over observed vertices where r
// is the residual of the observed yield against the FAO prediction. Requires
// at least p+1 observations (p = cols(X)); otherwise leaves β unchanged and
// reports insufficient_data (not an error). A singular regularized design
// surfaces as ErrSingularDesign.
func TrainYieldResidual(g *graph.LayeredHyperGraph, outcomes map[string]float64) ([]float64, TrainResult, error) {
	cropReq, ok := g.Layers[graph.CropRequirements]
	if !ok || len(outcomes) == 0 {
		return nil, TrainResult{Status: "insufficient_data"}, nil
	}

	X := assembleYieldFeatures(g)
	if len(X) == 0 {
		return nil, TrainResult{Status: "insufficient_data"}, nil
	}
	p := len(X[0])

	fao, _ := perVertexFAO(g, cropReq)

	var rows [][]float64
	var targets []float64
	for vid, observed := range outcomes {
		row, ok := g.VertexIndex(vid)
		if !ok {
			continue
		}
		rows = append(rows, X[row])
		targets = append(targets, observed-fao[row])
	}

	n := len(rows)
	if n < p+1 {
		return nil, TrainResult{Status: "insufficient_data", NObservations: n}, nil
	}

	xDense, err := matrix.NewDense(n, p)
	if err != nil {
		return nil, TrainResult{Status: "numeric_error", NObservations: n}, err
	}
	for i, row := range rows {
		for j, val := range row {
			_ = xDense.Set(i, j, val)
		}
	}

	xt, err := matrix.Transpose(xDense)
	if err != nil {
		return nil, TrainResult{Status: "numeric_error", NObservations: n}, err
	}
	xtx, err := matrix.Mul(xt, xDense)
	if err != nil {
		return nil, TrainResult{Status: "numeric_error", NObservations: n}, err
	}
	xtxDense, ok := xtx.(*matrix.Dense)
	if !ok {
		return nil, TrainResult{Status: "numeric_error", NObservations: n}, ErrSingularDesign
	}
	for i := 0; i < p; i++ {
		v, _ := xtxDense.At(i, i)
		_ = xtxDense.Set(i, i, v+ridgeLambda)
	}

	inv, err := matrix.Inverse(xtxDense)
	if err != nil {
		return nil, TrainResult{Status: "numeric_error", NObservations: n},
			fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}

	xtr, err := matrix.MatVec(xt, targets)
	if err != nil {
		return nil, TrainResult{Status: "numeric_error", NObservations: n}, err
	}

	beta, err := matrix.MatVec(inv, xtr)
	if err != nil {
		return nil, TrainResult{Status: "numeric_error", NObservations: n}, err
	}

	beta32 := make([]float64, len(beta))
	for i, b := range beta {
		beta32[i] = float64(float32(b))
	}

	return beta32, TrainResult{Status: "trained", NObservations: n, NCoefficients: p}, nil
}
