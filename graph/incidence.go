// SPDX-License-Identifier: MIT
package graph

import (
	"sort"

	"github.com/fieldmesh/hypercore/matrix"
)

// Incidence is a |V| x |E| sparse binary matrix in compressed-sparse-column
// form: column j's members are rowIdx[colPtr[j]:colPtr[j+1]], all values 1.
// Hypergraph incidence is strictly 0/1, so vals is implicit; it is kept as
// an explicit slice only so Export can hand out the canonical 32-bit value
// array without a conversion pass.
type Incidence struct {
	rows   int
	rowIdx []int32
	colPtr []int32 // len = Cols()+1
	vals   []float32
}

// newIncidence returns an empty (zero-column) incidence matrix over nVerts
// vertices.
func newIncidence(nVerts int) *Incidence {
	return &Incidence{
		rows:   nVerts,
		rowIdx: nil,
		colPtr: []int32{0},
		vals:   nil,
	}
}

// Rows reports |V|.
func (inc *Incidence) Rows() int { return inc.rows }

// Cols reports the current number of hyperedge columns.
func (inc *Incidence) Cols() int {
	if inc == nil || len(inc.colPtr) == 0 {
		return 0
	}

	return len(inc.colPtr) - 1
}

// NNZ reports the number of stored nonzero entries.
func (inc *Incidence) NNZ() int { return len(inc.rowIdx) }

// AddColumn appends a new hyperedge column incident to the given sorted,
// deduplicated member rows. Callers (AddHyperedge) are responsible for
// resolving vertex ids to rows and dropping unknown ones before calling this.
func (inc *Incidence) AddColumn(memberRows []int32) {
	sorted := append([]int32(nil), memberRows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	inc.rowIdx = append(inc.rowIdx, sorted...)
	for range sorted {
		inc.vals = append(inc.vals, 1)
	}
	inc.colPtr = append(inc.colPtr, int32(len(inc.rowIdx)))
}

// RemoveColumn deletes column idx, compacting colPtr and the backing slices.
func (inc *Incidence) RemoveColumn(idx int) error {
	if idx < 0 || idx >= inc.Cols() {
		return matrix.ErrOutOfRange
	}

	start, end := inc.colPtr[idx], inc.colPtr[idx+1]
	width := end - start

	inc.rowIdx = append(inc.rowIdx[:start], inc.rowIdx[end:]...)
	inc.vals = append(inc.vals[:start], inc.vals[end:]...)

	newColPtr := make([]int32, 0, len(inc.colPtr)-1)
	newColPtr = append(newColPtr, inc.colPtr[:idx+1]...)
	for _, p := range inc.colPtr[idx+2:] {
		newColPtr = append(newColPtr, p-width)
	}
	inc.colPtr = newColPtr

	return nil
}

// AddRow grows the vertex dimension by one, appended as the highest row
// index. Existing columns are unaffected since CSC stores row indices, not
// a dense shape per column.
func (inc *Incidence) AddRow() {
	inc.rows++
}

// ColumnRows returns the (sorted) member rows of column idx.
func (inc *Incidence) ColumnRows(idx int) []int32 {
	if idx < 0 || idx >= inc.Cols() {
		return nil
	}

	start, end := inc.colPtr[idx], inc.colPtr[idx+1]
	out := make([]int32, end-start)
	copy(out, inc.rowIdx[start:end])

	return out
}

// Export returns copies of the three parallel CSC arrays (row indices,
// column pointers, values), for serialization at the contract boundary.
func (inc *Incidence) Export() (rowIdx, colPtr []int32, vals []float32) {
	rowIdx = append([]int32(nil), inc.rowIdx...)
	colPtr = append([]int32(nil), inc.colPtr...)
	vals = append([]float32(nil), inc.vals...)

	return rowIdx, colPtr, vals
}

// VertexDegree returns the number of columns incident to row.
func (inc *Incidence) VertexDegree(row int) int {
	count := 0
	for _, r := range inc.rowIdx {
		if int(r) == row {
			count++
		}
	}

	return count
}

// EdgeDegree returns the number of member vertices of column col, i.e. the
// column sum of the 0/1 incidence. Out-of-range columns report 0.
func (inc *Incidence) EdgeDegree(col int) int {
	if col < 0 || col >= inc.Cols() {
		return 0
	}

	return int(inc.colPtr[col+1] - inc.colPtr[col])
}

// ToDense materializes the incidence matrix as a float64 matrix.Dense for
// use with the linear-algebra kernels (cross_layer_query, aggregate_by_edge).
// Results narrow back to float32 at the host boundary, matching the
// documented float32/float64 boundary used throughout C3.
func (inc *Incidence) ToDense() (*matrix.Dense, error) {
	d, err := matrix.NewDense(inc.rows, inc.Cols())
	if err != nil {
		return nil, err
	}

	for col := 0; col < inc.Cols(); col++ {
		start, end := inc.colPtr[col], inc.colPtr[col+1]
		for _, row := range inc.rowIdx[start:end] {
			if err := d.Set(int(row), col, 1.0); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}
