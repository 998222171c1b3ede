package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultReducedDimensions is the target dimensionality for density
// clustering. High-dimensional embedding distances concentrate and make
// density estimation useless, so embeddings are projected down first.
const DefaultReducedDimensions = 5

// Reducer projects embeddings onto their top principal components,
// keeping local neighborhood structure while discarding directions with
// little variance.
type Reducer struct {
	dimensions int
}

// NewReducer creates a PCA reducer targeting the given dimensionality.
// Non-positive values fall back to DefaultReducedDimensions.
func NewReducer(dimensions int) *Reducer {
	if dimensions <= 0 {
		dimensions = DefaultReducedDimensions
	}
	return &Reducer{dimensions: dimensions}
}

// Reduce returns index-aligned low-dimensional vectors. The effective
// dimensionality is clamped to min(target, input dim, point count).
// Degenerate input (all-identical vectors) reduces to all-zero vectors
// rather than failing: the centered matrix has no variance left.
func (r *Reducer) Reduce(vectors [][]float32) ([][]float64, error) {
	n := len(vectors)
	if n == 0 {
		return nil, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimensional embeddings")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("embedding %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	target := r.dimensions
	if target > dim {
		target = dim
	}
	if target > n {
		target = n
	}

	data := make([]float64, n*dim)
	for i, v := range vectors {
		for j, val := range v {
			data[i*dim+j] = float64(val)
		}
	}
	x := mat.NewDense(n, dim, data)

	// Center each column on its mean.
	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		mat.Col(col, j, x)
		mean := stat.Mean(col, nil)
		for i := 0; i < n; i++ {
			x.Set(i, j, x.At(i, j)-mean)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		// SVD failing to converge is rare; the centered coordinates
		// themselves still preserve neighborhoods, so truncate them.
		return truncate(x, n, target), nil
	}

	var v mat.Dense
	svd.VTo(&v)

	// Project onto the top right-singular vectors (columns of V).
	components := mat.NewDense(dim, target, nil)
	for j := 0; j < target; j++ {
		for i := 0; i < dim; i++ {
			components.Set(i, j, v.At(i, j))
		}
	}

	var projected mat.Dense
	projected.Mul(x, components)

	reduced := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, target)
		for j := 0; j < target; j++ {
			row[j] = projected.At(i, j)
		}
		reduced[i] = row
	}
	return reduced, nil
}

func truncate(x *mat.Dense, n, target int) [][]float64 {
	reduced := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, target)
		for j := 0; j < target; j++ {
			row[j] = x.At(i, j)
		}
		reduced[i] = row
	}
	return reduced
}
