// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmesh/hypercore/matrix"
)

func TestNewDenseNegativeDimensions(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(-1, 3)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(3, -1)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestNewDenseZeroSizedIsValid(t *testing.T) {
	t.Parallel()

	d, err := matrix.NewDense(0, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Rows())
	assert.Equal(t, 4, d.Cols())
}

func TestRowsCols(t *testing.T) {
	t.Parallel()

	d := MustDense(t, 3, 5)
	assert.Equal(t, 3, d.Rows())
	assert.Equal(t, 5, d.Cols())
}

func TestAtSetOutOfBounds(t *testing.T) {
	t.Parallel()

	d := MustDense(t, 2, 2)
	for _, idx := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := d.At(idx[0], idx[1])
		assert.ErrorIs(t, err, matrix.ErrOutOfRange, "At(%d,%d)", idx[0], idx[1])
		assert.ErrorIs(t, d.Set(idx[0], idx[1], 1), matrix.ErrOutOfRange, "Set(%d,%d)", idx[0], idx[1])
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	t.Parallel()

	d := MustDense(t, 2, 3)
	MustSet(t, d, 1, 2, 42.5)
	assert.Equal(t, 42.5, MustAt(t, d, 1, 2))
	assert.Equal(t, 0.0, MustAt(t, d, 0, 0), "untouched elements stay zero")
}

func TestSetRejectsNaNInfUnderDefaultPolicy(t *testing.T) {
	t.Parallel()

	d := MustDense(t, 1, 1)
	assert.ErrorIs(t, d.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, d.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	assert.ErrorIs(t, d.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
}

func TestSetAllowsNaNWhenPolicyDisabled(t *testing.T) {
	t.Parallel()

	d, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 0, math.NaN()))
	assert.True(t, math.IsNaN(MustAt(t, d, 0, 0)))
}

func TestCloneIndependence(t *testing.T) {
	t.Parallel()

	d := MustDense(t, 2, 2)
	MustSet(t, d, 0, 0, 7)

	clone := d.Clone()
	MustSet(t, d, 0, 0, 99)

	assert.Equal(t, 7.0, MustAt(t, clone, 0, 0), "clone must not observe later writes")
	assert.Equal(t, 99.0, MustAt(t, d, 0, 0))
}

func TestStringOutput(t *testing.T) {
	t.Parallel()

	d := MustDense(t, 2, 2)
	fillDense(t, d, [][]float64{{1, 2}, {3, 4}})
	assert.Equal(t, "1 2\n3 4\n", d.String())
}
