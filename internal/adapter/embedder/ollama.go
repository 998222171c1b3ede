package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"article-clustering/internal/domain"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// maxConcurrentBatches bounds the fan-out against the embedding service.
const maxConcurrentBatches = 4

// Ollama embeds texts through an Ollama-compatible /api/embed endpoint.
// The model lives in the service process, so the expensive initialization
// is amortized there; this client is cheap per call. Large batches are
// split and fanned out concurrently, but the returned vectors are always
// index-aligned with the input texts.
type Ollama struct {
	baseURL   string
	model     string
	client    *http.Client
	batchSize int
	limiter   *rate.Limiter
}

// NewOllama creates an embedder client. batchSize <= 0 disables
// splitting; requestsPerSecond <= 0 disables throttling.
func NewOllama(baseURL, model string, client *http.Client, batchSize int, requestsPerSecond float64) *Ollama {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Ollama{
		baseURL:   baseURL,
		model:     model,
		client:    client,
		batchSize: batchSize,
		limiter:   limiter,
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (e *Ollama) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	slog.Info("ollama_embed_started",
		slog.Int("text_count", len(texts)),
		slog.String("model", e.model),
		slog.String("url", e.baseURL),
	)
	start := time.Now()

	batch := e.batchSize
	if batch <= 0 || batch > len(texts) {
		batch = len(texts)
	}

	results := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	for offset := 0; offset < len(texts); offset += batch {
		end := offset + batch
		if end > len(texts) {
			end = len(texts)
		}
		offset, chunk := offset, texts[offset:end]

		g.Go(func() error {
			if err := e.limiter.Wait(gctx); err != nil {
				return err
			}
			vectors, err := e.embedBatch(gctx, chunk)
			if err != nil {
				return err
			}
			copy(results[offset:], vectors)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("ollama_embed_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)),
		)
		return nil, err
	}

	slog.Info("ollama_embed_completed",
		slog.Int("embedding_count", len(results)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

func (e *Ollama) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	jsonData, err := json.Marshal(embedRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embed", e.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call ollama: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status: %d", resp.StatusCode)
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(respBody.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama returned %d embeddings for %d texts", len(respBody.Embeddings), len(texts))
	}
	return respBody.Embeddings, nil
}

func (e *Ollama) Version() string {
	return e.model
}

var _ domain.VectorEncoder = (*Ollama)(nil)
