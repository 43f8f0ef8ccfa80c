package synthetic_test

import (
	"math"
	"testing"

	"github.com/fieldmesh/hypercore/synthetic"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministicForSameSeed(t *testing.T) {
	a, err := synthetic.Generate("greenhouse", 1, 42)
	require.NoError(t, err)
	b, err := synthetic.Generate("greenhouse", 1, 42)
	require.NoError(t, err)

	require.Equal(t, float32Bits(a.Layers.Soil.Data), float32Bits(b.Layers.Soil.Data))
	require.Equal(t, float32Bits(a.Layers.Weather.Data), float32Bits(b.Layers.Weather.Data))
}

// float32Bits maps each value to its IEEE-754 bit pattern, so that NaN
// dropouts in the same positions compare equal.
func float32Bits(xs []float32) []uint32 {
	out := make([]uint32, len(xs))
	for i, x := range xs {
		out[i] = math.Float32bits(x)
	}

	return out
}

func TestGenerateNStepsAndTimeAxis(t *testing.T) {
	ds, err := synthetic.Generate("open_field", 2, 7)
	require.NoError(t, err)
	require.Equal(t, 2*24*4, ds.NSteps)
	require.Equal(t, 0.0, ds.TimeHours[0])
	require.InDelta(t, 0.25, ds.TimeHours[1], 1e-9)
}

func TestGenerateOpenFieldOmitsVision(t *testing.T) {
	ds, err := synthetic.Generate("open_field", 1, 1)
	require.NoError(t, err)
	require.Nil(t, ds.Layers.Vision)
	require.Nil(t, ds.Layers.Lighting)
}

func TestGenerateGreenhouseIncludesVision(t *testing.T) {
	ds, err := synthetic.Generate("greenhouse", 1, 1)
	require.NoError(t, err)
	require.NotNil(t, ds.Layers.Vision)
	require.NotNil(t, ds.Layers.Lighting)
}

func TestGenerateHybridZoneSplit(t *testing.T) {
	ds, err := synthetic.Generate("hybrid", 1, 1)
	require.NoError(t, err)
	require.Equal(t, 6, ds.Topology.NZones)

	greenhouseCount := 0
	for _, z := range ds.Topology.Zones {
		if z.ZoneType == "greenhouse" {
			greenhouseCount++
		}
	}
	require.Equal(t, 2, greenhouseCount)
}

func TestGenerateSoilMoistureWithinBoundsExcludingNaN(t *testing.T) {
	ds, err := synthetic.Generate("open_field", 1, 1)
	require.NoError(t, err)

	soil := ds.Layers.Soil
	for r := 0; r < soil.Rows; r++ {
		v := soil.Get(r, 0)
		if math.IsNaN(float64(v)) {
			require.True(t, soil.Mask.Get(r, 0))
			continue
		}
		require.GreaterOrEqual(t, v, float32(0.0))
		require.LessOrEqual(t, v, float32(1.0))
	}
}

func TestGenerateRejectsUnknownFarmType(t *testing.T) {
	_, err := synthetic.Generate("spaceship", 1, 1)
	require.Error(t, err)
}

func TestGenerateVisionAnomalyCodes(t *testing.T) {
	ds, err := synthetic.Generate("greenhouse", 1, 3)
	require.NoError(t, err)
	codes := ds.Layers.VisionAnomalyCode
	require.NotNil(t, codes)
	require.Equal(t, ds.NSteps, codes.Rows)

	vision := ds.Layers.Vision
	for r := 0; r < codes.Rows; r++ {
		for b := 0; b < codes.Cols; b++ {
			c := codes.Get(r, b)
			require.Contains(t, []int8{-1, 0, 1, 2}, c)
			if vision.Mask.Get(r, b*4) {
				require.Equal(t, int8(-1), c, "dropped sample at step %d bed %d must code missing", r, b)
			} else {
				require.NotEqual(t, int8(-1), c)
			}
		}
	}
}

func TestGenerateHybridOpenFieldZonesOmitVisionLayerTag(t *testing.T) {
	ds, err := synthetic.Generate("hybrid", 1, 1)
	require.NoError(t, err)

	for _, z := range ds.Topology.Zones {
		hasVision := false
		for _, l := range z.ActiveLayers {
			if l == "vision" {
				hasVision = true
			}
		}
		require.Equal(t, z.ZoneType == "greenhouse", hasVision, "zone %s", z.ID)
	}
}
