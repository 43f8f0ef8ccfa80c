// SPDX-License-Identifier: MIT
// Package synthetic generates a complete multi-layer demo farm dataset
// (weather, soil, npk, lighting, vision, irrigation) for a given farm type,
// horizon and seed. Host generation is bitwise-deterministic per seed.
package synthetic

import (
	"math/rand"

	"github.com/fieldmesh/hypercore/matrix"
)

// rngFromSeed returns a deterministic *rand.Rand seeded verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a per-layer offset into a new 64-bit
// seed via a SplitMix64-style avalanche, so each layer's generator is an
// independently reproducible stream of the same top-level seed.
func deriveSeed(parent int64, offset uint64) int64 {
	x := uint64(parent) ^ (offset + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Layer offsets, arbitrary but fixed so each layer's substream is stable.
const (
	offsetWeather    uint64 = 1
	offsetSoil       uint64 = 2
	offsetNPK        uint64 = 3
	offsetLighting   uint64 = 4
	offsetVision     uint64 = 5
	offsetIrrigation uint64 = 6
	offsetCorrelate  uint64 = 7
	offsetMask       uint64 = 8
)

// newCorrelatedSampler factors corr once via a jittered Cholesky and returns
// a closure that draws one d-dimensional correlated standard-normal vector
// per call, by multiplying a fresh vector of independent standard normals
// by the lower-triangular factor. If corr is ill-conditioned, diagonal
// jitter is escalated (1e-5*I, x10 up to 6 times, then 0.1*I) until the
// decomposition succeeds.
func newCorrelatedSampler(rng *rand.Rand, corr [][]float64) (func() []float64, error) {
	d := len(corr)
	l, err := choleskyWithJitter(corr)
	if err != nil {
		return nil, err
	}

	z := make([]float64, d)
	return func() []float64 {
		for j := range z {
			z[j] = rng.NormFloat64()
		}
		row := make([]float64, d)
		for a := 0; a < d; a++ {
			var sum float64
			for b := 0; b <= a; b++ {
				sum += l[a][b] * z[b]
			}
			row[a] = sum
		}
		return row
	}, nil
}

func choleskyWithJitter(corr [][]float64) ([][]float64, error) {
	d := len(corr)
	jitter := 1e-5

	for attempt := 0; attempt < 7; attempt++ {
		m, err := matrix.NewDense(d, d)
		if err != nil {
			return nil, err
		}
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				v := corr[i][j]
				if i == j {
					v += jitter
				}
				if err := m.Set(i, j, v); err != nil {
					return nil, err
				}
			}
		}

		result, err := matrix.Cholesky(m)
		if err == nil {
			dense := result.(*matrix.Dense)
			l := make([][]float64, d)
			for i := 0; i < d; i++ {
				l[i] = make([]float64, d)
				for j := 0; j <= i; j++ {
					v, _ := dense.At(i, j)
					l[i][j] = v
				}
			}

			return l, nil
		}

		if attempt < 5 {
			jitter *= 10
		} else {
			jitter = 0.1
		}
	}

	return nil, matrix.ErrNotPositiveDefinite
}
