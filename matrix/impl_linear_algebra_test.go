// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmesh/hypercore/matrix"
)

func TestAddElementwise(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 2)
	fillDense(t, a, [][]float64{{1, 2}, {3, 4}})
	b := MustDense(t, 2, 2)
	fillDense(t, b, [][]float64{{10, 20}, {30, 40}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, 11.0, MustAt(t, sum, 0, 0))
	assert.Equal(t, 44.0, MustAt(t, sum, 1, 1))
}

func TestAddShapeMismatch(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 2)
	b := MustDense(t, 2, 3)
	_, err := matrix.Add(a, b)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAddNilOperand(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 1, 1)
	_, err := matrix.Add(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Add(a, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTranspose(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 3)
	fillDense(t, m, [][]float64{{1, 2, 3}, {4, 5, 6}})

	mt, err := matrix.Transpose(m)
	require.NoError(t, err)
	assert.Equal(t, 3, mt.Rows())
	assert.Equal(t, 2, mt.Cols())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, MustAt(t, m, i, j), MustAt(t, mt, j, i), "(%d,%d)", i, j)
		}
	}
}

func TestTransposeInvolution(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 3, 2)
	fillDense(t, m, [][]float64{{1, -2}, {0.5, 7}, {-3, 9}})

	mt, err := matrix.Transpose(m)
	require.NoError(t, err)
	mtt, err := matrix.Transpose(mt)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, MustAt(t, m, i, j), MustAt(t, mtt, i, j))
		}
	}
}

func TestMulKnownProduct(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 3)
	fillDense(t, a, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustDense(t, 3, 2)
	fillDense(t, b, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	prod, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, prod.Rows())
	assert.Equal(t, 2, prod.Cols())
	assert.Equal(t, 58.0, MustAt(t, prod, 0, 0))
	assert.Equal(t, 64.0, MustAt(t, prod, 0, 1))
	assert.Equal(t, 139.0, MustAt(t, prod, 1, 0))
	assert.Equal(t, 154.0, MustAt(t, prod, 1, 1))
}

func TestMulIdentityIsNeutral(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 2)
	fillDense(t, m, [][]float64{{3, -1}, {2.5, 8}})
	id := MustDense(t, 2, 2)
	fillDense(t, id, [][]float64{{1, 0}, {0, 1}})

	prod, err := matrix.Mul(m, id)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, MustAt(t, m, i, j), MustAt(t, prod, i, j))
		}
	}
}

func TestMulInnerDimensionMismatch(t *testing.T) {
	t.Parallel()

	a := MustDense(t, 2, 3)
	b := MustDense(t, 2, 3)
	_, err := matrix.Mul(a, b)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// Incidence products are the workhorse use of Mul: verify Bᵀ·B counts
// shared memberships exactly when B holds 0/1 entries.
func TestMulCountsSharedIncidence(t *testing.T) {
	t.Parallel()

	// Two hyperedges over three vertices: e1={v0,v1}, e2={v1,v2}.
	b := MustDense(t, 3, 2)
	fillDense(t, b, [][]float64{{1, 0}, {1, 1}, {0, 1}})

	bt, err := matrix.Transpose(b)
	require.NoError(t, err)
	gram, err := matrix.Mul(bt, b)
	require.NoError(t, err)

	assert.Equal(t, 2.0, MustAt(t, gram, 0, 0), "|e1|")
	assert.Equal(t, 2.0, MustAt(t, gram, 1, 1), "|e2|")
	assert.Equal(t, 1.0, MustAt(t, gram, 0, 1), "|e1 ∩ e2|")
	assert.Equal(t, 1.0, MustAt(t, gram, 1, 0))
}

func TestMatVec(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 3)
	fillDense(t, m, [][]float64{{1, 2, 3}, {4, 5, 6}})

	out, err := matrix.MatVec(m, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, -2.0, out[0])
	assert.Equal(t, -2.0, out[1])
}

func TestMatVecLengthMismatch(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 3)
	_, err := matrix.MatVec(m, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestInverseKnown2x2(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 2)
	fillDense(t, m, [][]float64{{4, 7}, {2, 6}})

	inv, err := matrix.Inverse(m)
	require.NoError(t, err)

	// det = 10; inverse = [[0.6, -0.7], [-0.2, 0.4]].
	assert.InDelta(t, 0.6, MustAt(t, inv, 0, 0), 1e-12)
	assert.InDelta(t, -0.7, MustAt(t, inv, 0, 1), 1e-12)
	assert.InDelta(t, -0.2, MustAt(t, inv, 1, 0), 1e-12)
	assert.InDelta(t, 0.4, MustAt(t, inv, 1, 1), 1e-12)
}

func TestInverseTimesOriginalIsIdentity(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 3, 3)
	fillDense(t, m, [][]float64{{2, 1, 0}, {1, 3, 1}, {0, 1, 4}})

	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	prod, err := matrix.Mul(m, inv)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, MustAt(t, prod, i, j), 1e-10, "(%d,%d)", i, j)
		}
	}
}

// Partial pivoting must survive a zero on the leading diagonal.
func TestInversePivotsPastZeroDiagonal(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 2)
	fillDense(t, m, [][]float64{{0, 1}, {1, 0}})

	inv, err := matrix.Inverse(m)
	require.NoError(t, err)
	assert.Equal(t, 0.0, MustAt(t, inv, 0, 0))
	assert.Equal(t, 1.0, MustAt(t, inv, 0, 1))
}

func TestInverseSingular(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 2)
	fillDense(t, m, [][]float64{{1, 2}, {2, 4}})

	_, err := matrix.Inverse(m)
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

func TestInverseNonSquare(t *testing.T) {
	t.Parallel()

	m := MustDense(t, 2, 3)
	_, err := matrix.Inverse(m)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

// Ridge normal equations (XᵀX + λI)⁻¹Xᵀr end-to-end: with X = I and λ = 1
// the solution is exactly r/2.
func TestRidgeNormalEquationsShrinkage(t *testing.T) {
	t.Parallel()

	const n = 3
	x := MustDense(t, n, n)
	for i := 0; i < n; i++ {
		MustSet(t, x, i, i, 1)
	}
	r := []float64{2, -4, 6}

	xt, err := matrix.Transpose(x)
	require.NoError(t, err)
	xtx, err := matrix.Mul(xt, x)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		v := MustAt(t, xtx, i, i)
		MustSet(t, xtx, i, i, v+1)
	}
	inv, err := matrix.Inverse(xtx)
	require.NoError(t, err)
	xtr, err := matrix.MatVec(xt, r)
	require.NoError(t, err)
	beta, err := matrix.MatVec(inv, xtr)
	require.NoError(t, err)

	for i := range beta {
		assert.InDelta(t, r[i]/2, beta[i], 1e-12)
	}
}

func TestKernelsRejectNonFiniteFreeInputs(t *testing.T) {
	t.Parallel()

	// Under the default policy Set already rejects NaN, so kernels can
	// assume finite Dense inputs; the policy escape hatch is the only way
	// to smuggle one in.
	d, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 0, math.NaN()))

	sum, err := matrix.Add(d, d)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(MustAt(t, sum, 0, 0)), "NaN propagates, kernels do not sanitize")
}
