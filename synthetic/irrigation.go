// SPDX-License-Identifier: MIT
package synthetic

// irrigation channel order: flow_rate, pressure, valve_state.
const irrigationChannels = 3

// generateIrrigation derives per-valve applied-mm series from the shared
// irrigation impulse train used to force soil moisture, tiled across zones.
func generateIrrigation(seed int64, nSteps int, dropoutRate float64, nValves int, irrigationImpulse []float64) *ChannelMatrix {
	rng := rngFromSeed(deriveSeed(seed, offsetIrrigation))
	out := newChannelMatrix(nSteps, irrigationChannels*nValves)

	for t := 0; t < nSteps; t++ {
		impulse := irrigationImpulse[t]
		for v := 0; v < nValves; v++ {
			flow := impulse * (8 + rng.Float64()*2)
			pressure := 1.5 + impulse*0.5 + rng.NormFloat64()*0.1
			valveState := float64(0)
			if impulse > 0 {
				valveState = 1
			}

			base := v * irrigationChannels
			out.Set(t, base+0, float32(flow))
			out.Set(t, base+1, float32(pressure))
			out.Set(t, base+2, float32(valveState))
		}
	}

	applyGroupedDropout(out.Mask, rngFacade{rng}, dropoutRate, irrigationChannels)
	out.applyMask()

	return out
}

// sharedImpulseTrains builds the rainfall and irrigation impulse series
// shared across soil and irrigation generation, seeded independently of
// either layer so both can be generated in any order from the same input.
func sharedImpulseTrains(seed int64, nSteps int) (rainfall, irrigation []float64) {
	rng := rngFromSeed(deriveSeed(seed, offsetCorrelate))
	rainfall = make([]float64, nSteps)
	irrigation = make([]float64, nSteps)

	for t := 0; t < nSteps; t++ {
		if rng.Float64() < 0.05 {
			rainfall[t] = rng.Float64()
		}
		if rng.Float64() < 0.08 {
			irrigation[t] = rng.Float64()
		}
	}

	return rainfall, irrigation
}
