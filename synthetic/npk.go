// SPDX-License-Identifier: MIT
package synthetic

import "math"

// npk channel order: N, P, K.
const npkChannels = 3

// generateNPK samples at weekly cadence internally but is reported on the
// shared 15-minute grid by holding the last weekly value across intervening
// steps, matching the other layers' uniform time axis.
func generateNPK(seed int64, nSteps, cadenceMinutes int, dropoutRate float64, nZones int) *ChannelMatrix {
	rng := rngFromSeed(deriveSeed(seed, offsetNPK))
	out := newChannelMatrix(nSteps, npkChannels*nZones)

	stepsPerWeek := (7 * 24 * 60) / cadenceMinutes
	baseline := make([][3]float64, nZones)
	for z := range baseline {
		baseline[z] = [3]float64{
			40 + rng.Float64()*20,
			25 + rng.Float64()*15,
			35 + rng.Float64()*15,
		}
	}

	for t := 0; t < nSteps; t++ {
		week := t / stepsPerWeek
		for z := 0; z < nZones; z++ {
			drift := -0.6 * float64(week)
			if week > 0 && week%4 == 0 {
				drift += 15 // fertilization event step-up every 4 weeks
			}
			organic := 3 * math.Sin(2*math.Pi*float64(week)/26.0)

			n := clamp(baseline[z][0]+drift+organic+rng.NormFloat64()*1.5, 0, 120)
			p := clamp(baseline[z][1]+drift*0.5+rng.NormFloat64()*1.0, 0, 80)
			k := clamp(baseline[z][2]+drift*0.7+rng.NormFloat64()*1.2, 0, 100)

			base := z * npkChannels
			out.Set(t, base+0, float32(n))
			out.Set(t, base+1, float32(p))
			out.Set(t, base+2, float32(k))
		}
	}

	applyGroupedDropout(out.Mask, rngFacade{rng}, dropoutRate, npkChannels)
	out.applyMask()

	return out
}
