// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldmesh/hypercore/matrix"
)

func TestWithEpsilonPanicsOnInvalid(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	assert.NotPanics(t, func() { matrix.WithEpsilon(0) })
}

func TestNaNPolicyLastWriterWins(t *testing.T) {
	t.Parallel()

	d, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	assert.NoError(t, err)
	assert.ErrorIs(t, d.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	d, err = matrix.NewDense(1, 1, matrix.WithValidateNaNInf(), matrix.WithNoValidateNaNInf())
	assert.NoError(t, err)
	assert.NoError(t, d.Set(0, 0, math.NaN()))
}
