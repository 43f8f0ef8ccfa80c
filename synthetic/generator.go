// SPDX-License-Identifier: MIT
package synthetic

import (
	"fmt"

	"github.com/google/uuid"
)

// datasetNamespace anchors the deterministic dataset id derivation; any
// fixed UUID works since it only has to be stable across calls.
var datasetNamespace = uuid.MustParse("6f2b8a1e-6c2f-4f3a-9b3e-7a2a9d8e1b10")

// DefaultDropoutRate is the per-channel-group missingness probability that
// Generate applies to every layer.
const DefaultDropoutRate = 0.03

// DefaultCadenceMinutes is the fixed sampling cadence of generated data.
const DefaultCadenceMinutes = 15

// Generate produces a complete synthetic dataset for farmType over days,
// driven by seed. farmType must be one of open_field, greenhouse, hybrid.
func Generate(farmType string, days int, seed int64) (*Dataset, error) {
	if days < 1 {
		return nil, fmt.Errorf("synthetic: days must be >= 1, got %d", days)
	}

	nSteps := days * 24 * 60 / DefaultCadenceMinutes

	topology, err := buildTopology(farmType)
	if err != nil {
		return nil, err
	}

	rainfall, irrigationImpulse := sharedImpulseTrains(seed, nSteps)

	nSoilSensors := len(topology.SoilSensorIDs)
	nStations := len(topology.WeatherStationIDs)
	nZones := topology.NZones

	layers := Layers{
		Weather:    generateWeather(seed, nSteps, DefaultCadenceMinutes, DefaultDropoutRate, nStations),
		Soil:       generateSoil(seed, nSteps, DefaultCadenceMinutes, DefaultDropoutRate, nSoilSensors, rainfall, irrigationImpulse),
		NPK:        generateNPK(seed, nSteps, DefaultCadenceMinutes, DefaultDropoutRate, nZones),
		Irrigation: generateIrrigation(seed, nSteps, DefaultDropoutRate, nZones, irrigationImpulse),
	}

	nGreenhouseZones := countGreenhouseZones(topology)
	if nGreenhouseZones > 0 {
		layers.Lighting = generateLighting(seed, nSteps, DefaultCadenceMinutes, DefaultDropoutRate, nGreenhouseZones)
		layers.Vision, layers.VisionAnomalyCode = generateVision(seed, nSteps, DefaultCadenceMinutes, DefaultDropoutRate, nGreenhouseZones)
	}

	timeHours := make([]float64, nSteps)
	for t := range timeHours {
		timeHours[t] = float64(t) * 0.25
	}

	datasetID := uuid.NewSHA1(datasetNamespace, []byte(fmt.Sprintf("%s|%d|%d", farmType, days, seed))).String()

	return &Dataset{
		DatasetID:      datasetID,
		FarmType:       farmType,
		Days:           days,
		Seed:           seed,
		CadenceMinutes: DefaultCadenceMinutes,
		NSteps:         nSteps,
		TimeHours:      timeHours,
		Missingness:    Missingness{Encoding: "nan_plus_bitmatrix", DropoutRate: DefaultDropoutRate},
		Reproducibility: Reproducibility{
			Host:        "bitwise_deterministic",
			Accelerator: "statistically_deterministic",
		},
		Topology: topology,
		Layers:   layers,
		Status:   "ok",
	}, nil
}

func countGreenhouseZones(t Topology) int {
	n := 0
	for _, z := range t.Zones {
		if z.ZoneType == "greenhouse" {
			n++
		}
	}

	return n
}

// buildTopology lays out zones, soil sensors and weather stations for
// farmType. hybrid places the first 2 zones as greenhouse and the next 4 as
// open_field; open_field zones omit vision from active_layers.
func buildTopology(farmType string) (Topology, error) {
	var zones []Zone

	switch farmType {
	case "open_field":
		zones = makeZones(4, "open_field")
	case "greenhouse":
		zones = makeZones(4, "greenhouse")
	case "hybrid":
		zones = append(zones, makeZones(2, "greenhouse")...)
		zones = append(zones, makeZonesFrom(2, 4, "open_field")...)
	default:
		return Topology{}, fmt.Errorf("synthetic: unknown farm_type %q", farmType)
	}

	soilSensorIDs := make([]string, 0, len(zones)*2)
	soilSensorZone := make([]string, 0, len(zones)*2)
	for _, z := range zones {
		for i := 0; i < 2; i++ {
			soilSensorIDs = append(soilSensorIDs, fmt.Sprintf("%s-soil-%d", z.ID, i))
			soilSensorZone = append(soilSensorZone, z.ID)
		}
	}

	stationIDs := make([]string, 0, len(zones))
	for _, z := range zones {
		stationIDs = append(stationIDs, fmt.Sprintf("%s-station", z.ID))
	}

	return Topology{
		NZones:            len(zones),
		Zones:             zones,
		SoilSensorIDs:     soilSensorIDs,
		SoilSensorZone:    soilSensorZone,
		WeatherStationIDs: stationIDs,
	}, nil
}

func makeZones(n int, zoneType string) []Zone {
	return makeZonesFrom(0, n, zoneType)
}

func makeZonesFrom(startIdx, count int, zoneType string) []Zone {
	out := make([]Zone, count)
	activeLayers := []string{"soil", "irrigation", "weather", "crop_requirements", "npk"}
	if zoneType == "greenhouse" {
		activeLayers = append(activeLayers, "lighting", "vision")
	}

	for i := 0; i < count; i++ {
		out[i] = Zone{
			ID:           fmt.Sprintf("zone-%d", startIdx+i+1),
			ZoneType:     zoneType,
			ActiveLayers: activeLayers,
		}
	}

	return out
}
