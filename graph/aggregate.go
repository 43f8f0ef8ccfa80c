// SPDX-License-Identifier: MIT
package graph

import (
	"context"

	"github.com/fieldmesh/hypercore/backend"
	"github.com/fieldmesh/hypercore/matrix"
)

// Reducer names the per-edge aggregation applied by AggregateByEdge.
type Reducer string

const (
	ReduceSum  Reducer = "sum"
	ReduceMean Reducer = "mean"
	ReduceMax  Reducer = "max"
	ReduceMin  Reducer = "min"
)

// AggregateByEdge reduces layer's vertex features over each hyperedge's
// member vertices. sum and mean are computed via the dense incidence
// transpose-times-features product (Bᵀ·F, optionally divided by degree,
// degree floored at 1); any other reducer falls back to a host scalar loop.
func AggregateByEdge(layer *Layer, reducer Reducer) (*matrix.Dense, error) {
	switch reducer {
	case ReduceSum, ReduceMean:
		return aggregateLinearAlgebra(layer, reducer)
	default:
		return aggregateHostLoop(layer, reducer)
	}
}

func aggregateLinearAlgebra(layer *Layer, reducer Reducer) (*matrix.Dense, error) {
	incDense, err := layer.Incidence.ToDense()
	if err != nil {
		return nil, err
	}
	featDense, err := matrix.NewDense(len(layer.Features)/layer.FeatureDim, layer.FeatureDim)
	if err != nil {
		return nil, err
	}
	nVerts := featDense.Rows()
	for row := 0; row < nVerts; row++ {
		for col := 0; col < layer.FeatureDim; col++ {
			if err := featDense.Set(row, col, float64(layer.Features[row*layer.FeatureDim+col])); err != nil {
				return nil, err
			}
		}
	}

	incT, err := matrix.Transpose(incDense)
	if err != nil {
		return nil, err
	}
	result, err := matrix.Mul(incT, featDense)
	if err != nil {
		return nil, err
	}
	out, ok := result.(*matrix.Dense)
	if !ok {
		return nil, ErrCorruptState
	}

	if reducer == ReduceMean {
		for col := 0; col < out.Rows(); col++ {
			degree := layer.Incidence.EdgeDegree(col)
			if degree < 1 {
				degree = 1
			}
			for j := 0; j < out.Cols(); j++ {
				v, err := out.At(col, j)
				if err != nil {
					return nil, err
				}
				if err := out.Set(col, j, v/float64(degree)); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}

// aggregateHostLoop handles reducers with no linear-algebra form (max, min,
// and anything else a caller names) with one kernel invocation per edge
// column. Writes are to disjoint output rows, so the launch is
// embarrassingly parallel.
func aggregateHostLoop(layer *Layer, reducer Reducer) (*matrix.Dense, error) {
	nEdges := layer.Incidence.Cols()
	dim := layer.FeatureDim
	out, err := matrix.NewDense(nEdges, dim)
	if err != nil {
		return nil, err
	}

	kernel := func(_ context.Context, col int, _ ...any) error {
		members := layer.Incidence.ColumnRows(col)
		for d := 0; d < dim; d++ {
			var acc float64
			first := true
			for _, row := range members {
				v := float64(layer.Features[int(row)*dim+d])
				switch {
				case first:
					acc = v
					first = false
				case reducer == ReduceMax && v > acc:
					acc = v
				case reducer == ReduceMin && v < acc:
					acc = v
				}
			}
			if err := out.Set(col, d, acc); err != nil {
				return err
			}
		}

		return nil
	}

	if err := backend.Launch(context.Background(), kernel, backend.Host, []int{nEdges}); err != nil {
		return nil, err
	}

	return out, nil
}
