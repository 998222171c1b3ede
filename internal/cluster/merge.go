package cluster

import (
	"math"
	"sort"

	"article-clustering/internal/domain"
)

// DefaultMergeSimilarity is the centroid cosine similarity above which
// two groups are considered the same topic and collapsed into one.
const DefaultMergeSimilarity = 0.95

// MergeSimilar collapses groups whose embedding-space centroids are
// nearly parallel, keeping the overall group count at a natural level
// instead of a requested one. Labels are relabeled in place onto the
// lowest label of each merged set; noise points are untouched.
func MergeSimilar(labels []int, embeddings [][]float32, threshold float64) []int {
	if threshold <= 0 || threshold >= 1 {
		return labels
	}

	centroids := make(map[int][]float64)
	counts := make(map[int]int)
	for i, l := range labels {
		if l == domain.NoiseLabel {
			continue
		}
		c := centroids[l]
		if c == nil {
			c = make([]float64, len(embeddings[i]))
			centroids[l] = c
		}
		for j, v := range embeddings[i] {
			c[j] += float64(v)
		}
		counts[l]++
	}
	if len(centroids) < 2 {
		return labels
	}
	for l, c := range centroids {
		for j := range c {
			c[j] /= float64(counts[l])
		}
	}

	ids := make([]int, 0, len(centroids))
	for l := range centroids {
		ids = append(ids, l)
	}
	sort.Ints(ids)

	// Union into the lowest similar label seen so far.
	parent := make(map[int]int, len(ids))
	for _, l := range ids {
		parent[l] = l
	}
	find := func(l int) int {
		for parent[l] != l {
			l = parent[l]
		}
		return l
	}
	for a := 0; a < len(ids); a++ {
		for b := a + 1; b < len(ids); b++ {
			la, lb := find(ids[a]), find(ids[b])
			if la == lb {
				continue
			}
			if cosine(centroids[ids[a]], centroids[ids[b]]) >= threshold {
				if la < lb {
					parent[lb] = la
				} else {
					parent[la] = lb
				}
			}
		}
	}

	for i, l := range labels {
		if l == domain.NoiseLabel {
			continue
		}
		labels[i] = find(l)
	}
	return labels
}

func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / math.Sqrt(na*nb)
}
