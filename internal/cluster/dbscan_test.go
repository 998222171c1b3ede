package cluster_test

import (
	"testing"

	"article-clustering/internal/cluster"
	"article-clustering/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Cluster(t *testing.T) {
	t.Run("Separates dense pairs from an isolated point", func(t *testing.T) {
		e := cluster.NewEngine(2, 0.5)
		points := [][]float64{
			{0, 0},
			{0.1, 0},
			{10, 0},
			{10.1, 0},
			{50, 0},
		}
		labels := e.Cluster(points)
		require.Len(t, labels, 5)
		assert.Equal(t, labels[0], labels[1])
		assert.Equal(t, labels[2], labels[3])
		assert.NotEqual(t, labels[0], labels[2])
		assert.Equal(t, domain.NoiseLabel, labels[4])
		assert.GreaterOrEqual(t, labels[0], 0)
		assert.GreaterOrEqual(t, labels[2], 0)
	})

	t.Run("Adaptive radius finds the same structure", func(t *testing.T) {
		e := cluster.NewEngine(2, 0)
		points := [][]float64{
			{0, 0},
			{0.1, 0},
			{10, 0},
			{10.1, 0},
			{50, 0},
		}
		labels := e.Cluster(points)
		assert.Equal(t, labels[0], labels[1])
		assert.Equal(t, labels[2], labels[3])
		assert.NotEqual(t, labels[0], labels[2])
		assert.Equal(t, domain.NoiseLabel, labels[4])
	})

	t.Run("Identical points form a single group", func(t *testing.T) {
		e := cluster.NewEngine(2, 0)
		points := [][]float64{{0, 0}, {0, 0}, {0, 0}}
		labels := e.Cluster(points)
		assert.Equal(t, []int{0, 0, 0}, labels)
	})

	t.Run("Everything noise when nothing is dense", func(t *testing.T) {
		e := cluster.NewEngine(2, 0.1)
		points := [][]float64{{0, 0}, {10, 0}, {20, 0}}
		labels := e.Cluster(points)
		assert.Equal(t, []int{domain.NoiseLabel, domain.NoiseLabel, domain.NoiseLabel}, labels)
	})

	t.Run("Density chains connect into one group", func(t *testing.T) {
		e := cluster.NewEngine(2, 0.5)
		points := [][]float64{{0, 0}, {0.4, 0}, {0.8, 0}, {1.2, 0}}
		labels := e.Cluster(points)
		assert.Equal(t, []int{0, 0, 0, 0}, labels)
	})

	t.Run("Empty input yields nil", func(t *testing.T) {
		e := cluster.NewEngine(2, 0.5)
		assert.Nil(t, e.Cluster(nil))
	})
}
