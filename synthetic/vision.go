// SPDX-License-Identifier: MIT
package synthetic

import "math"

// vision channel order: canopy_coverage, growth_stage, anomaly_score, ndvi.
// Only emitted for greenhouse zones.
const visionChannels = 4

// Vision anomaly codes.
const (
	codeMissing int8 = -1
	codeNone    int8 = 0
	codePest    int8 = 1
	codeDisease int8 = 2
)

// generateVision produces per-bed vision channels plus a parallel int8
// anomaly-code matrix. Pest/disease events cluster along adjacent beds: a
// bed flagged last step raises each neighbor's event probability by 0.12.
func generateVision(seed int64, nSteps, cadenceMinutes int, dropoutRate float64, nBeds int) (*ChannelMatrix, *Int8Matrix) {
	rng := rngFromSeed(deriveSeed(seed, offsetVision))
	out := newChannelMatrix(nSteps, visionChannels*nBeds)
	codes := newInt8Matrix(nSteps, nBeds)

	flaggedLastStep := make([]bool, nBeds)
	stepsPerDay := (24 * 60) / cadenceMinutes

	for t := 0; t < nSteps; t++ {
		progress := clamp(float64(t)/float64(stepsPerDay*60), 0, 1) // saturates over ~60 days
		prevFlagged := append([]bool(nil), flaggedLastStep...)

		for b := 0; b < nBeds; b++ {
			neighborFlagged := 0
			if b > 0 && prevFlagged[b-1] {
				neighborFlagged++
			}
			if b < nBeds-1 && prevFlagged[b+1] {
				neighborFlagged++
			}

			eventProb := 0.01 + 0.12*float64(neighborFlagged)
			event := rng.Float64() < eventProb
			flaggedLastStep[b] = event

			code := codeNone
			var anomalyScore float64
			if event {
				// Confidence inflates on positive events.
				anomalyScore = 0.6 + rng.Float64()*0.4
				code = codePest
				if rng.Float64() < 0.4 {
					code = codeDisease
				}
			} else {
				anomalyScore = rng.Float64() * 0.3
			}
			codes.Set(t, b, code)

			canopy := clamp(20+75*(1-math.Exp(-3*progress))+rng.NormFloat64()*2, 0, 100)
			ndvi := clamp(0.2+0.6*progress+rng.NormFloat64()*0.05, -1, 1)

			base := b * visionChannels
			out.Set(t, base+0, float32(canopy))
			out.Set(t, base+1, float32(progress))
			out.Set(t, base+2, float32(anomalyScore))
			out.Set(t, base+3, float32(ndvi))
		}
	}

	applyGroupedDropout(out.Mask, rngFacade{rng}, dropoutRate, visionChannels)
	out.applyMask()

	// A dropped bed sample has no observation to code.
	for t := 0; t < nSteps; t++ {
		for b := 0; b < nBeds; b++ {
			if out.Mask.Get(t, b*visionChannels) {
				codes.Set(t, b, codeMissing)
			}
		}
	}

	return out, codes
}
