package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"article-clustering/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedEncoder is a read-through LRU decorator around a VectorEncoder.
// Repeated texts (articles resubmitted across calls) skip the embedding
// backend entirely. It holds only text-to-vector pairs; no clustering
// state survives a call.
type CachedEncoder struct {
	inner domain.VectorEncoder
	cache *lru.Cache[string, []float32]
}

// NewCachedEncoder wraps inner with an LRU of the given size.
func NewCachedEncoder(inner domain.VectorEncoder, size int) (*CachedEncoder, error) {
	cache, err := lru.New[string, []float32](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding cache: %w", err)
	}
	return &CachedEncoder{inner: inner, cache: cache}, nil
}

func (c *CachedEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))

	var missTexts []string
	var missIndices []int
	for i, text := range texts {
		if vec, ok := c.cache.Get(c.key(text)); ok {
			results[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIndices = append(missIndices, i)
	}

	if len(missTexts) > 0 {
		vectors, err := c.inner.Encode(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(missTexts) {
			return nil, fmt.Errorf("encoder returned %d embeddings for %d texts", len(vectors), len(missTexts))
		}
		for j, vec := range vectors {
			i := missIndices[j]
			results[i] = vec
			c.cache.Add(c.key(texts[i]), vec)
		}
	}

	return results, nil
}

func (c *CachedEncoder) Version() string {
	return c.inner.Version()
}

// key namespaces cache entries by encoder version so a model swap never
// serves stale vectors.
func (c *CachedEncoder) key(text string) string {
	sum := sha256.Sum256([]byte(c.inner.Version() + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

var _ domain.VectorEncoder = (*CachedEncoder)(nil)
