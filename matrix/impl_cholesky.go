// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Dense Cholesky factorization A = L*Lᵀ for symmetric positive-definite inputs.
//   - Used by the synthetic correlated-noise generator to turn a target correlation
//     matrix into a mixing matrix for independent standard-normal draws.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constant for unified error wrapping.
const opCholesky = "Cholesky"

// Cholesky computes the lower-triangular factor L such that A = L*Lᵀ.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol) with tol = DefaultEpsilon.
//   - Stage 2: Row-by-row Cholesky-Banachiewicz recurrence; Dense fast-path
//     operates on the flat backing slice, generic fallback uses At/Set.
//
// Behavior highlights:
//   - Deterministic i→j→k loop order.
//   - A residual diagonal ≤ 0 (within DefaultEpsilon) is reported as
//     ErrNotPositiveDefinite rather than producing NaN via Sqrt of a negative number.
//
// Inputs:
//   - m: square, symmetric Matrix (n×n).
//
// Returns:
//   - Matrix: Dense(n×n) lower-triangular L with A = L*Lᵀ.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry (from ValidateSymmetric).
//   - ErrNotPositiveDefinite when a diagonal pivot is non-positive.
//
// Complexity:
//   - Time O(n^3/3), Space O(n^2).
//
// AI-Hints:
//   - Feed the result's columns as mixing vectors for independent N(0,1) draws
//     to produce samples with the target covariance/correlation structure.
func Cholesky(m Matrix) (Matrix, error) {
	if err := ValidateSymmetric(m, DefaultEpsilon); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	n := m.Rows()
	l, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	dm, useFast := m.(*Dense)

	var i, j, k int
	var sum, aij, pivot float64
	for i = 0; i < n; i++ {
		for j = 0; j <= i; j++ {
			sum = ZeroSum
			for k = 0; k < j; k++ {
				sum += l.data[i*n+k] * l.data[j*n+k]
			}

			if useFast {
				aij = dm.data[i*n+j]
			} else {
				aij, err = m.At(i, j)
				if err != nil {
					return nil, matrixErrorf(opCholesky, fmt.Errorf("At(%d,%d): %w", i, j, err))
				}
			}

			if i == j {
				pivot = aij - sum
				if pivot <= DefaultEpsilon {
					return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
				}
				l.data[i*n+j] = math.Sqrt(pivot)
				continue
			}

			if l.data[j*n+j] == ZeroPivot {
				return nil, matrixErrorf(opCholesky, ErrNotPositiveDefinite)
			}
			l.data[i*n+j] = (aij - sum) / l.data[j*n+j]
		}
	}

	return l, nil
}
