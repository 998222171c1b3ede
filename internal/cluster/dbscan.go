package cluster

import (
	"math"
	"sort"

	"article-clustering/internal/domain"
)

// DefaultMinGroupSize is the minimum population for a dense region to
// become a topic group.
const DefaultMinGroupSize = 2

// epsilonHeadroom widens the estimated neighborhood radius so that
// points sitting just past their nearest neighbor still connect.
const epsilonHeadroom = 1.5

// epsilonFloor keeps the adaptive radius positive when every pairwise
// distance is zero (all-identical reduced vectors).
const epsilonFloor = 1e-9

// Engine is a density-based clusterer (DBSCAN) over euclidean distance
// in the reduced space. The number of groups is discovered, never
// supplied; sparse-region points receive domain.NoiseLabel.
type Engine struct {
	minGroupSize int
	epsilon      float64
}

// NewEngine creates a density engine. minGroupSize below 2 falls back
// to DefaultMinGroupSize. epsilon <= 0 enables per-batch estimation
// from the k-nearest-neighbor distance curve.
func NewEngine(minGroupSize int, epsilon float64) *Engine {
	if minGroupSize < 2 {
		minGroupSize = DefaultMinGroupSize
	}
	return &Engine{minGroupSize: minGroupSize, epsilon: epsilon}
}

// Cluster assigns an index-aligned label to every point: 0..k-1 for
// dense groups, domain.NoiseLabel for points in low-density regions.
func (e *Engine) Cluster(points [][]float64) []int {
	n := len(points)
	if n == 0 {
		return nil
	}

	eps := e.epsilon
	if eps <= 0 {
		eps = estimateEpsilon(points, e.minGroupSize)
	}

	const undefined = 0
	labels := make([]int, n) // 0 = unvisited
	clusterID := 0

	for i := 0; i < n; i++ {
		if labels[i] != undefined {
			continue
		}

		neighbors := rangeQuery(points, i, eps)
		if len(neighbors) < e.minGroupSize {
			labels[i] = domain.NoiseLabel
			continue
		}

		clusterID++
		labels[i] = clusterID

		seed := make([]int, 0, len(neighbors))
		for _, j := range neighbors {
			if j != i {
				seed = append(seed, j)
			}
		}

		for len(seed) > 0 {
			q := seed[0]
			seed = seed[1:]

			if labels[q] == domain.NoiseLabel {
				labels[q] = clusterID // border point reached from a core
			}
			if labels[q] != undefined {
				continue
			}
			labels[q] = clusterID

			qNeighbors := rangeQuery(points, q, eps)
			if len(qNeighbors) >= e.minGroupSize {
				seed = append(seed, qNeighbors...)
			}
		}
	}

	// Shift group labels to 0-based.
	for i, l := range labels {
		if l > 0 {
			labels[i] = l - 1
		}
	}
	return labels
}

// rangeQuery returns the indices of all points within eps of points[idx],
// including idx itself.
func rangeQuery(points [][]float64, idx int, eps float64) []int {
	var result []int
	q := points[idx]
	for i, p := range points {
		if euclidean(q, p) <= eps {
			result = append(result, i)
		}
	}
	return result
}

// estimateEpsilon picks a neighborhood radius from the data itself: the
// median distance to the (minPts-1)th nearest other point, widened by a
// constant factor. Points in genuine groups sit below the median of
// that curve while isolated points sit far above it.
func estimateEpsilon(points [][]float64, minPts int) float64 {
	n := len(points)
	k := minPts - 1
	if k < 1 {
		k = 1
	}
	if k > n-1 {
		k = n - 1
	}
	if k < 1 {
		return epsilonFloor
	}

	kDists := make([]float64, 0, n)
	dists := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		dists = dists[:0]
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			dists = append(dists, euclidean(points[i], points[j]))
		}
		sort.Float64s(dists)
		kDists = append(kDists, dists[k-1])
	}
	sort.Float64s(kDists)

	eps := kDists[len(kDists)/2] * epsilonHeadroom
	if eps < epsilonFloor {
		eps = epsilonFloor
	}
	return eps
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
