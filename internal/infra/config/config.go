package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env      string
	Port     string
	Embedder EmbedderConfig
	Pipeline PipelineConfig
}

// EmbedderConfig controls the embedding backend. The default backend is
// the Ollama-compatible service hosting a multilingual model; "tfidf"
// selects the offline corpus-local encoder.
type EmbedderConfig struct {
	Backend   string
	URL       string
	Model     string
	Timeout   int
	BatchSize int
	CacheSize int
	RateLimit float64
}

// PipelineConfig holds the fixed clustering thresholds.
type PipelineConfig struct {
	ReducedDimensions int
	MinGroupSize      int
	Epsilon           float64
	MergeSimilarity   float64
}

func Load() *Config {
	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "9020"),
		Embedder: EmbedderConfig{
			Backend:   getEnv("EMBEDDER_BACKEND", "ollama"),
			URL:       getEnv("EMBEDDER_URL", "http://augur-external:11434"),
			Model:     getEnv("EMBEDDING_MODEL", "embeddinggemma"),
			Timeout:   getEnvInt("EMBEDDER_TIMEOUT", 30),
			BatchSize: getEnvInt("EMBED_BATCH_SIZE", 32),
			CacheSize: getEnvInt("EMBED_CACHE_SIZE", 2048),
			RateLimit: getEnvFloat("EMBED_RATE_LIMIT", 0),
		},
		Pipeline: PipelineConfig{
			ReducedDimensions: getEnvInt("REDUCED_DIMENSIONS", 5),
			MinGroupSize:      getEnvInt("MIN_GROUP_SIZE", 2),
			Epsilon:           getEnvFloat("CLUSTER_EPSILON", 0),
			MergeSimilarity:   getEnvFloat("MERGE_SIMILARITY", 0.95),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
