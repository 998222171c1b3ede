package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"EMBEDDER_BACKEND",
		"EMBEDDING_MODEL",
		"EMBED_BATCH_SIZE",
		"REDUCED_DIMENSIONS",
		"MIN_GROUP_SIZE",
		"CLUSTER_EPSILON",
		"MERGE_SIMILARITY",
	}
	for _, key := range envVars {
		_ = os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "ollama", cfg.Embedder.Backend)
	assert.Equal(t, "embeddinggemma", cfg.Embedder.Model)
	assert.Equal(t, 32, cfg.Embedder.BatchSize)
	assert.Equal(t, 5, cfg.Pipeline.ReducedDimensions)
	assert.Equal(t, 2, cfg.Pipeline.MinGroupSize)
	assert.Equal(t, 0.0, cfg.Pipeline.Epsilon, "epsilon should default to adaptive")
	assert.Equal(t, 0.95, cfg.Pipeline.MergeSimilarity)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("EMBEDDER_BACKEND", "tfidf")
	t.Setenv("EMBED_BATCH_SIZE", "8")
	t.Setenv("REDUCED_DIMENSIONS", "3")
	t.Setenv("CLUSTER_EPSILON", "0.4")
	t.Setenv("MERGE_SIMILARITY", "0.9")

	cfg := Load()

	assert.Equal(t, "tfidf", cfg.Embedder.Backend)
	assert.Equal(t, 8, cfg.Embedder.BatchSize)
	assert.Equal(t, 3, cfg.Pipeline.ReducedDimensions)
	assert.Equal(t, 0.4, cfg.Pipeline.Epsilon)
	assert.Equal(t, 0.9, cfg.Pipeline.MergeSimilarity)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("EMBED_BATCH_SIZE", "not-a-number")
	t.Setenv("CLUSTER_EPSILON", "also-not")

	cfg := Load()

	assert.Equal(t, 32, cfg.Embedder.BatchSize)
	assert.Equal(t, 0.0, cfg.Pipeline.Epsilon)
}
