// SPDX-License-Identifier: MIT
package synthetic

import (
	"math"
	"math/rand"
)

// weather channel order matches graph.DefaultFeatureDim(graph.Weather):
// temperature, humidity, precip, wind_speed, solar_rad.
const weatherChannels = 5

func generateWeather(seed int64, nSteps int, cadenceMinutes int, dropoutRate float64, nStations int) *ChannelMatrix {
	rng := rngFromSeed(deriveSeed(seed, offsetWeather))
	out := newChannelMatrix(nSteps, weatherChannels*nStations)

	stationOffset := make([]float64, nStations)
	for s := range stationOffset {
		stationOffset[s] = rng.NormFloat64() * 1.5
	}

	// Cross-channel correlated noise for (temp, humidity, wind, solar):
	// humidity's anti-correlation with temperature is already captured by
	// the explicit slope term below, so this factor layers in the softer
	// cloud-cover-driven coupling between wind and solar radiation noise.
	noiseCorr := [][]float64{
		{1.00, 0.10, -0.05, 0.35},
		{0.10, 1.00, 0.15, -0.25},
		{-0.05, 0.15, 1.00, -0.10},
		{0.35, -0.25, -0.10, 1.00},
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

		for s := 0; s < nStations; s++ {
			noise := sample()

			temp := 19.0 + 8.0*math.Sin(omega*hour-1.0) + stationOffset[s] + noise[0]*0.6
			humidity := clamp(60.0-0.9*(temp-19.0)+noise[1]*3, 5, 100)

			dayIdx := float64(t*cadenceMinutes) / (60 * 24)
			rainProb := 0.16 + 0.14*math.Sin(2*math.Pi*dayIdx/30.0)
			rainProb = clamp(rainProb, 0.02, 0.30)

			var precip float64
			if rng.Float64() < rainProb {
				precip = rng.Float64() * 4.0
			}

			windSpeed := math.Abs(2.0 + noise[2]*1.2)
			solarRad := math.Max(0, math.Sin(omega*hour-math.Pi/2)) * (800 + noise[3]*50)

			base := s * weatherChannels
			out.Set(t, base+0, float32(temp))
			out.Set(t, base+1, float32(humidity))
			out.Set(t, base+2, float32(precip))
			out.Set(t, base+3, float32(windSpeed))
			out.Set(t, base+4, float32(solarRad))
		}
	}

	applyGroupedDropout(out.Mask, rngFacade{rng}, dropoutRate, weatherChannels)
	out.applyMask()

	return out
}

// rngFacade adapts *rand.Rand to the minimal Float64()-only interface used
// by the dropout helpers, keeping those helpers independent of math/rand.
type rngFacade struct{ r *rand.Rand }

func (f rngFacade) Float64() float64 { return f.r.Float64() }
