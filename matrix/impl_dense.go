// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense: row-major float64 matrix over a single flat backing slice.
//   - The concrete carrier for incidence products, feature aggregation,
//     the ridge normal equations and correlation factors.

package matrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix backed by one flat slice. Element (i, j)
// lives at data[i*cols+j]. Kernels in this package fast-path on *Dense and
// fall back to the Matrix interface for any other implementation.
type Dense struct {
	rows, cols int
	data       []float64
	opts       Options
}

// NewDense allocates a zeroed rows×cols matrix under the default numeric
// policy (see options.go). Zero-sized shapes are valid: a layer whose last
// hyperedge was removed still aggregates to an empty 0×d result rather than
// failing. Negative dimensions return ErrInvalidDimensions.
//
// Complexity: O(rows*cols).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
		opts: gatherOptions(opts...),
	}, nil
}

// Rows returns the number of rows.
// Complexity: O(1).
func (d *Dense) Rows() int { return d.rows }

// Cols returns the number of columns.
// Complexity: O(1).
func (d *Dense) Cols() int { return d.cols }

// At retrieves element (i, j). Returns ErrOutOfRange for invalid indices.
// Complexity: O(1).
func (d *Dense) At(i, j int) (float64, error) {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		return 0, ErrOutOfRange
	}

	return d.data[i*d.cols+j], nil
}

// Set assigns v at (i, j). Returns ErrOutOfRange for invalid indices and
// ErrNaNInf when the numeric policy rejects non-finite values (the default).
// Complexity: O(1).
func (d *Dense) Set(i, j int, v float64) error {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		return ErrOutOfRange
	}
	if d.opts.validateNaNInf && isNonFinite(v) {
		return ErrNaNInf
	}
	d.data[i*d.cols+j] = v

	return nil
}

// Clone returns a deep copy sharing no storage with the receiver.
// Complexity: O(rows*cols).
func (d *Dense) Clone() Matrix {
	out := &Dense{
		rows: d.rows,
		cols: d.cols,
		data: make([]float64, len(d.data)),
		opts: d.opts,
	}
	copy(out.data, d.data)

	return out
}

// String renders the matrix row-per-line for debugging and test failure
// messages. Not intended as a serialization format.
func (d *Dense) String() string {
	var b strings.Builder
	for i := 0; i < d.rows; i++ {
		for j := 0; j < d.cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", d.data[i*d.cols+j])
		}
		b.WriteByte('\n')
	}

	return b.String()
}
