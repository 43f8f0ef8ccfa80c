// SPDX-License-Identifier: MIT
package synthetic

import "math"

// soil channel order: moisture, temperature, conductivity, pH.
const soilChannels = 4

func generateSoil(seed int64, nSteps, cadenceMinutes int, dropoutRate float64, nSensors int, rainfallImpulse, irrigationImpulse []float64) *ChannelMatrix {
	rng := rngFromSeed(deriveSeed(seed, offsetSoil))
	out := newChannelMatrix(nSteps, soilChannels*nSensors)

	moisture := make([]float64, nSensors)
	for s := range moisture {
		moisture[s] = 0.25 + rng.Float64()*0.1
	}

	// Correlated noise for (moisture, temperature, conductivity, pH): a wet
	// pulse that bumps moisture also cools the topsoil and dilutes solutes,
	// so moisture noise is coupled negatively to conductivity and positively
	// to a temperature dip; pH drifts nearly independently of the others.
	noiseCorr := [][]float64{
		{1.00, -0.20, -0.30, 0.05},
		{-0.20, 1.00, 0.10, 0.00},
		{-0.30, 0.10, 1.00, -0.05},
		{0.05, 0.00, -0.05, 1.00},
	}
	sample, err := newCorrelatedSampler(rng, noiseCorr)
	if err != nil {
		sample = func() []float64 {
			return []float64{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		}
	}

	for t := 0; t < nSteps; t++ {
		hour := float64(t*cadenceMinutes) / 60.0
		omega := 2 * math.Pi / 24.0

		for s := 0; s < nSensors; s++ {
			noise := sample()

			decay := 0.002
			forcing := rainfallImpulse[t]*0.01 + irrigationImpulse[t]*0.008
			moisture[s] = clamp(moisture[s]*(1-decay)+forcing+noise[0]*0.003, 0.03, 0.95)

			temp := 18 + 6*math.Sin(omega*hour-1.3) - (moisture[s]-0.3)*5 + noise[1]*0.4
			conductivity := clamp(2.2-moisture[s]*1.5+noise[2]*0.1, 0.1, 4.0)
			ph := clamp(6.5+noise[3]*0.3, 4.5, 8.5)

			base := s * soilChannels
			out.Set(t, base+0, float32(moisture[s]))
			out.Set(t, base+1, float32(temp))
			out.Set(t, base+2, float32(conductivity))
			out.Set(t, base+3, float32(ph))
		}
	}

	applyGroupedDropout(out.Mask, rngFacade{rng}, dropoutRate, soilChannels)
	out.applyMask()

	return out
}
