// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - The linear-algebra kernels this engine actually exercises: Add,
//     Transpose, Mul, MatVec and Inverse (Gauss-Jordan with partial
//     pivoting). Each kernel validates through validators.go, fast-paths
//     on *Dense, and falls back to the Matrix interface otherwise.
//
// Determinism:
//   - All loops run in fixed i→j→k order; no goroutines, no map iteration.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial accumulator value for dot-product style loops.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot during inversion.
const ZeroPivot = 0.0

// Operation tags for unified error wrapping.
const (
	opAdd       = "Add"
	opTranspose = "Transpose"
	opMul       = "Mul"
	opMatVec    = "MatVec"
	opInverse   = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving the original
// sentinel via %w so errors.Is still matches at call sites.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("matrix: %s: %w", tag, err)
}

// Add returns a + b element-wise. Shapes must match.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func Add(a, b Matrix) (Matrix, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	r, c := a.Rows(), a.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}

	da, fastA := a.(*Dense)
	db, fastB := b.(*Dense)
	if fastA && fastB {
		for idx := range out.data {
			out.data[idx] = da.data[idx] + db.data[idx]
		}

		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			va, err := a.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opAdd, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			vb, err := b.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opAdd, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			out.data[i*c+j] = va + vb
		}
	}

	return out, nil
}

// Transpose returns mᵀ as a new Dense.
//
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	r, c := m.Rows(), m.Cols()
	out, err := NewDense(c, r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	if dm, ok := m.(*Dense); ok {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				out.data[j*r+i] = dm.data[i*c+j]
			}
		}

		return out, nil
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			out.data[j*r+i] = v
		}
	}

	return out, nil
}

// Mul returns the matrix product a·b. Requires a.Cols() == b.Rows().
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*k*c) with the classic triple loop; the shapes this engine
// multiplies (incidence × feature blocks) stay small enough that blocking
// or Strassen variants would be noise.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, ErrDimensionMismatch)
	}

	r, k, c := a.Rows(), a.Cols(), b.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	da, fastA := a.(*Dense)
	db, fastB := b.(*Dense)
	if fastA && fastB {
		var sum float64
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				sum = ZeroSum
				for p := 0; p < k; p++ {
					sum += da.data[i*k+p] * db.data[p*c+j]
				}
				out.data[i*c+j] = sum
			}
		}

		return out, nil
	}

	var sum, va, vb float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sum = ZeroSum
			for p := 0; p < k; p++ {
				if va, err = a.At(i, p); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", i, p, err))
				}
				if vb, err = b.At(p, j); err != nil {
					return nil, matrixErrorf(opMul, fmt.Errorf("At(%d,%d): %w", p, j, err))
				}
				sum += va * vb
			}
			out.data[i*c+j] = sum
		}
	}

	return out, nil
}

// MatVec returns the matrix-vector product m·v as a fresh slice.
// Requires len(v) == m.Cols().
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(r*c).
func MatVec(m Matrix, v []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(m, v); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	r, c := m.Rows(), m.Cols()
	out := make([]float64, r)

	if dm, ok := m.(*Dense); ok {
		var sum float64
		for i := 0; i < r; i++ {
			sum = ZeroSum
			for j := 0; j < c; j++ {
				sum += dm.data[i*c+j] * v[j]
			}
			out[i] = sum
		}

		return out, nil
	}

	var sum, mv float64
	var err error
	for i := 0; i < r; i++ {
		sum = ZeroSum
		for j := 0; j < c; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			sum += mv * v[j]
		}
		out[i] = sum
	}

	return out, nil
}

// Inverse returns m⁻¹ via Gauss-Jordan elimination with partial pivoting on
// an augmented [m | I] working copy.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrSingular when the best remaining
// pivot is (numerically) zero.
// Complexity: O(n^3).
func Inverse(m Matrix) (Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := m.Rows()

	// Augmented working storage: left half m, right half identity.
	aug := make([]float64, n*2*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opInverse, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			aug[i*2*n+j] = v
		}
		aug[i*2*n+n+i] = 1
	}

	for col := 0; col < n; col++ {
		// Partial pivoting: pick the largest |value| at or below the diagonal.
		pivotRow := col
		pivotAbs := math.Abs(aug[col*2*n+col])
		for row := col + 1; row < n; row++ {
			if abs := math.Abs(aug[row*2*n+col]); abs > pivotAbs {
				pivotRow, pivotAbs = row, abs
			}
		}
		if pivotAbs == ZeroPivot {
			return nil, matrixErrorf(opInverse, ErrSingular)
		}
		if pivotRow != col {
			for j := 0; j < 2*n; j++ {
				aug[col*2*n+j], aug[pivotRow*2*n+j] = aug[pivotRow*2*n+j], aug[col*2*n+j]
			}
		}

		pivot := aug[col*2*n+col]
		for j := 0; j < 2*n; j++ {
			aug[col*2*n+j] /= pivot
		}

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := aug[row*2*n+col]
			if factor == 0 {
				continue
			}
			for j := 0; j < 2*n; j++ {
				aug[row*2*n+j] -= factor * aug[col*2*n+j]
			}
		}
	}

	out, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	for i := 0; i < n; i++ {
		copy(out.data[i*n:(i+1)*n], aug[i*2*n+n:i*2*n+2*n])
	}

	return out, nil
}
