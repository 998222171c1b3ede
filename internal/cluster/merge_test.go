package cluster_test

import (
	"testing"

	"article-clustering/internal/cluster"
	"article-clustering/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMergeSimilar(t *testing.T) {
	t.Run("Collapses groups with near-parallel centroids", func(t *testing.T) {
		embeddings := [][]float32{
			{1, 0, 0},
			{1, 0.01, 0},
			{0.99, 0.02, 0},
			{1, 0.03, 0.01},
		}
		labels := []int{0, 0, 1, 1}
		merged := cluster.MergeSimilar(labels, embeddings, 0.95)
		assert.Equal(t, []int{0, 0, 0, 0}, merged)
	})

	t.Run("Keeps dissimilar groups apart", func(t *testing.T) {
		embeddings := [][]float32{
			{1, 0, 0},
			{1, 0.01, 0},
			{0, 1, 0},
			{0, 1, 0.01},
		}
		labels := []int{0, 0, 1, 1}
		merged := cluster.MergeSimilar(labels, embeddings, 0.95)
		assert.Equal(t, merged[0], merged[1])
		assert.Equal(t, merged[2], merged[3])
		assert.NotEqual(t, merged[0], merged[2])
	})

	t.Run("Leaves noise points untouched", func(t *testing.T) {
		embeddings := [][]float32{
			{1, 0},
			{1, 0.01},
			{0, 1},
		}
		labels := []int{0, 0, domain.NoiseLabel}
		merged := cluster.MergeSimilar(labels, embeddings, 0.95)
		assert.Equal(t, domain.NoiseLabel, merged[2])
	})

	t.Run("Disabled when threshold is out of range", func(t *testing.T) {
		embeddings := [][]float32{{1, 0}, {1, 0}}
		labels := []int{0, 1}
		merged := cluster.MergeSimilar(labels, embeddings, 0)
		assert.Equal(t, []int{0, 1}, merged)
	})
}
