package matrix_test

import (
	"fmt"

	"github.com/fieldmesh/hypercore/matrix"
)

// ExampleMul demonstrates the incidence Gram product Bᵀ·B: entry (i,j)
// counts the vertices shared by hyperedges i and j.
func ExampleMul() {
	// Three vertices, two hyperedges: e1={v0,v1}, e2={v1,v2}.
	b, _ := matrix.NewDense(3, 2)
	_ = b.Set(0, 0, 1)
	_ = b.Set(1, 0, 1)
	_ = b.Set(1, 1, 1)
	_ = b.Set(2, 1, 1)

	bt, _ := matrix.Transpose(b)
	gram, _ := matrix.Mul(bt, b)

	shared, _ := gram.At(0, 1)
	fmt.Println(shared)

	// Output:
	// 1
}

// ExampleCholesky shows factoring a correlation matrix into its mixing
// factor L, the shape the synthetic generator feeds with N(0,1) draws.
func ExampleCholesky() {
	a, _ := matrix.NewDense(2, 2)
	_ = a.Set(0, 0, 1)
	_ = a.Set(0, 1, 0.5)
	_ = a.Set(1, 0, 0.5)
	_ = a.Set(1, 1, 1)

	l, _ := matrix.Cholesky(a)
	v, _ := l.At(0, 0)
	fmt.Println(v)

	// Output:
	// 1
}
