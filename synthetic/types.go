// SPDX-License-Identifier: MIT
package synthetic

// BitMatrix is a dense boolean mask in row-major n_steps x n_channels
// layout; true marks a dropped (NaN) sample.
type BitMatrix struct {
	Rows, Cols int
	Bits       []bool
}

func newBitMatrix(rows, cols int) *BitMatrix {
	return &BitMatrix{Rows: rows, Cols: cols, Bits: make([]bool, rows*cols)}
}

func (b *BitMatrix) Get(r, c int) bool    { return b.Bits[r*b.Cols+c] }
func (b *BitMatrix) Set(r, c int, v bool) { b.Bits[r*b.Cols+c] = v }

// ChannelMatrix is a dense float32 n_steps x n_channels matrix with an
// associated missingness mask.
type ChannelMatrix struct {
	Rows, Cols int
	Data       []float32
	Mask       *BitMatrix
}

func newChannelMatrix(rows, cols int) *ChannelMatrix {
	return &ChannelMatrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols), Mask: newBitMatrix(rows, cols)}
}

func (c *ChannelMatrix) Set(r, col int, v float32) { c.Data[r*c.Cols+col] = v }
func (c *ChannelMatrix) Get(r, col int) float32    { return c.Data[r*c.Cols+col] }

// applyMask overwrites dropped-out cells with NaN, already recorded in the
// BitMatrix by the caller.
func (c *ChannelMatrix) applyMask() {
	for r := 0; r < c.Rows; r++ {
		for col := 0; col < c.Cols; col++ {
			if c.Mask.Get(r, col) {
				c.Set(r, col, float32NaN())
			}
		}
	}
}

// Int8Matrix is a dense signed-8-bit n_steps x n_channels matrix, used for
// the vision anomaly code ({-1 missing, 0 none, 1 pest, 2 disease}).
type Int8Matrix struct {
	Rows, Cols int
	Data       []int8
}

func newInt8Matrix(rows, cols int) *Int8Matrix {
	return &Int8Matrix{Rows: rows, Cols: cols, Data: make([]int8, rows*cols)}
}

func (m *Int8Matrix) Set(r, c int, v int8) { m.Data[r*m.Cols+c] = v }
func (m *Int8Matrix) Get(r, c int) int8    { return m.Data[r*m.Cols+c] }

// Zone is one generated farm zone/bed.
type Zone struct {
	ID           string
	ZoneType     string // "greenhouse" | "open_field"
	ActiveLayers []string
}

// Topology describes the generated farm's spatial structure.
type Topology struct {
	NZones            int
	Zones             []Zone
	SoilSensorIDs     []string
	SoilSensorZone    []string
	WeatherStationIDs []string
}

// Reproducibility records the determinism guarantee per backend.
type Reproducibility struct {
	Host        string
	Accelerator string
}

// Missingness describes the dropout policy applied to every channel.
type Missingness struct {
	Encoding    string
	DropoutRate float64
}

// Layers bundles the per-layer generated channel matrices.
type Layers struct {
	Soil       *ChannelMatrix
	Weather    *ChannelMatrix
	Irrigation *ChannelMatrix
	NPK        *ChannelMatrix
	Lighting   *ChannelMatrix // nil unless the farm has greenhouse zones
	Vision     *ChannelMatrix // nil unless the farm has greenhouse zones

	// VisionAnomalyCode parallels Vision per bed: one int8 code per
	// (step, bed), -1 where the bed's sample dropped out.
	VisionAnomalyCode *Int8Matrix
}

// Dataset is the complete output of Generate.
type Dataset struct {
	DatasetID       string // deterministic, minted from (farm_type, days, seed)
	FarmType        string
	Days            int
	Seed            int64
	CadenceMinutes  int
	NSteps          int
	TimeHours       []float64
	Missingness     Missingness
	Reproducibility Reproducibility
	Topology        Topology
	Layers          Layers
	Status          string
}
