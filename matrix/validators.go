// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single canonical source for shape/nil/symmetry validation.
//  - Kernels delegate guards here and wrap the returned sentinels via
//    matrixErrorf, so every call site reports violations the same way.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry runs O(n²) over the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf tags a sentinel with the validator that raised it.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
//
// Returns ErrNilMatrix if m == nil. Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and share dimensions.
//
// Returns ErrNilMatrix or ErrDimensionMismatch. Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare ensures m is non-nil and square.
//
// Returns ErrNilMatrix or ErrNonSquare. Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures v's length matches m's column count, the
// precondition of any MatVec-style kernel. Assumes m is non-nil.
//
// Returns ErrDimensionMismatch. Complexity: O(1).
func ValidateVecLen(m Matrix, v []float64) error {
	if len(v) != m.Cols() {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSymmetric ensures m is non-nil, square and symmetric within eps:
// |m[i,j] - m[j,i]| <= eps for every upper-triangle pair.
//
// Returns ErrNilMatrix, ErrNonSquare or ErrAsymmetry. Complexity: O(n²).
func ValidateSymmetric(m Matrix, eps float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}

	n := m.Rows()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			upper, err := m.At(i, j)
			if err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			lower, err := m.At(j, i)
			if err != nil {
				return validatorErrorf("ValidateSymmetric", err)
			}
			if math.Abs(upper-lower) > eps {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}
