// SPDX-License-Identifier: MIT
// Shared helpers for matrix package tests. Kept deliberately small: each
// helper fails the test in place so assertions read as one line.

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldmesh/hypercore/matrix"
)

// MustDense allocates a rows×cols Dense or fails the test.
func MustDense(t *testing.T, rows, cols int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(rows, cols)
	require.NoError(t, err, "NewDense(%d,%d)", rows, cols)

	return d
}

// MustSet assigns v at (i, j) or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d,%v)", i, j, v)
}

// MustAt reads (i, j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// fillDense sets every element of m from rows, row-major.
func fillDense(t *testing.T, m *matrix.Dense, rows [][]float64) {
	t.Helper()
	for i, row := range rows {
		for j, v := range row {
			MustSet(t, m, i, j, v)
		}
	}
}
