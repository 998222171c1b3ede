package di

import (
	"fmt"
	"log/slog"
	"time"

	"article-clustering/internal/adapter/embedder"
	"article-clustering/internal/cluster"
	"article-clustering/internal/domain"
	"article-clustering/internal/infra/config"
	"article-clustering/internal/infra/httpclient"
	"article-clustering/internal/infra/logger"
	"article-clustering/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Encoder        domain.VectorEncoder
	ClusterUsecase usecase.ClusterArticlesUsecase
}

// NewApplicationComponents wires all dependencies from config.
func NewApplicationComponents(cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	encoder, err := NewEncoder(cfg.Embedder)
	if err != nil {
		return nil, err
	}

	clusterUsecase := usecase.NewClusterArticlesUsecase(
		domain.NewPreparer(),
		encoder,
		cluster.NewReducer(cfg.Pipeline.ReducedDimensions),
		cluster.NewEngine(cfg.Pipeline.MinGroupSize, cfg.Pipeline.Epsilon),
		cluster.NewExtractor(),
		cfg.Pipeline.MergeSimilarity,
		logger.NewContextLogger("article-clustering", log),
	)

	return &ApplicationComponents{
		Encoder:        encoder,
		ClusterUsecase: clusterUsecase,
	}, nil
}

// NewEncoder builds the configured embedding backend. The Ollama client
// gets the LRU decorator; the TF-IDF encoder must not be cached because
// its vectors depend on the whole corpus of a call, not just one text.
func NewEncoder(cfg config.EmbedderConfig) (domain.VectorEncoder, error) {
	switch cfg.Backend {
	case "tfidf":
		return embedder.NewTFIDF(), nil
	case "ollama":
		client := httpclient.NewPooledClient(time.Duration(cfg.Timeout) * time.Second)
		encoder := embedder.NewOllama(cfg.URL, cfg.Model, client, cfg.BatchSize, cfg.RateLimit)
		if cfg.CacheSize > 0 {
			return embedder.NewCachedEncoder(encoder, cfg.CacheSize)
		}
		return encoder, nil
	default:
		return nil, fmt.Errorf("unknown embedder backend: %q", cfg.Backend)
	}
}
