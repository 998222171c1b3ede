package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"article-clustering/internal/cluster"
	"article-clustering/internal/domain"
	"article-clustering/internal/infra/logger"
)

// ClusterArticlesUsecase runs the full clustering pipeline: preparation,
// embedding, reduction, density grouping, keyword extraction and result
// assembly. One synchronous call per article batch.
type ClusterArticlesUsecase interface {
	Execute(ctx context.Context, articles []domain.ArticleInput) (*domain.PipelineResult, error)
}

type clusterArticlesUsecase struct {
	preparer  domain.Preparer
	encoder   domain.VectorEncoder
	reducer   *cluster.Reducer
	engine    *cluster.Engine
	extractor *cluster.Extractor
	mergeSim  float64
	ctxLog    *logger.ContextLogger
}

func NewClusterArticlesUsecase(
	preparer domain.Preparer,
	encoder domain.VectorEncoder,
	reducer *cluster.Reducer,
	engine *cluster.Engine,
	extractor *cluster.Extractor,
	mergeSimilarity float64,
	ctxLog *logger.ContextLogger,
) ClusterArticlesUsecase {
	return &clusterArticlesUsecase{
		preparer:  preparer,
		encoder:   encoder,
		reducer:   reducer,
		engine:    engine,
		extractor: extractor,
		mergeSim:  mergeSimilarity,
		ctxLog:    ctxLog,
	}
}

func (u *clusterArticlesUsecase) Execute(ctx context.Context, articles []domain.ArticleInput) (*domain.PipelineResult, error) {
	if len(articles) == 0 {
		return nil, domain.ErrEmptyRequest
	}

	log := u.ctxLog.WithContext(ctx)
	start := time.Now()
	log.Info("clustering_started",
		slog.Int("article_count", len(articles)),
		slog.String("encoder", u.encoder.Version()),
	)

	if len(articles) < domain.MinDocuments {
		return &domain.PipelineResult{
			Clusters:     []domain.ClusterResult{},
			Message:      "Not enough articles to cluster (minimum 3)",
			ShortCircuit: true,
		}, nil
	}

	units := u.preparer.Prepare(articles)
	if len(units) < domain.MinDocuments {
		log.Info("clustering_short_circuit",
			slog.Int("valid_documents", len(units)),
		)
		return &domain.PipelineResult{
			Clusters:     []domain.ClusterResult{},
			Message:      "Not enough valid documents to cluster",
			ShortCircuit: true,
		}, nil
	}

	texts := make([]string, len(units))
	for i, unit := range units {
		texts[i] = unit.Text
	}

	embeddings, err := u.encoder.Encode(logger.WithStage(ctx, "embedding"), texts)
	if err != nil {
		return nil, domain.NewPipelineError("embedding", err)
	}
	if len(embeddings) != len(units) {
		return nil, domain.NewPipelineError("embedding",
			fmt.Errorf("got %d embeddings for %d documents", len(embeddings), len(units)))
	}

	reduced, err := u.reducer.Reduce(embeddings)
	if err != nil {
		return nil, domain.NewPipelineError("reduction", err)
	}

	labels := u.engine.Cluster(reduced)
	labels = cluster.MergeSimilar(labels, embeddings, u.mergeSim)

	topics := u.extractor.Extract(texts, labels)

	result := assemble(units, labels, topics)
	log.Info("clustering_completed",
		slog.Int("clusters", len(result.Clusters)),
		slog.Int("unclustered", len(result.UnclusteredIDs)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// assemble joins cluster membership, keywords and article metadata into
// the final result. Groups that end up with fewer than 2 members are
// dropped from the output; their members deliberately stay out of
// UnclusteredIDs and remain counted as clustered, matching the service
// behavior callers already depend on.
func assemble(units []domain.DocumentUnit, labels []int, topics map[int]cluster.Topic) *domain.PipelineResult {
	memberIDs := make(map[int][]string)
	labelOrder := make([]int, 0)
	unclustered := make([]string, 0)

	for i, unit := range units {
		label := labels[i]
		if label == domain.NoiseLabel {
			unclustered = append(unclustered, unit.ArticleID)
			continue
		}
		if _, seen := memberIDs[label]; !seen {
			labelOrder = append(labelOrder, label)
		}
		memberIDs[label] = append(memberIDs[label], unit.ArticleID)
	}

	clusters := make([]domain.ClusterResult, 0, len(labelOrder))
	for _, label := range labelOrder {
		ids := memberIDs[label]
		if len(ids) < 2 {
			continue
		}
		topic := topics[label]
		keywords := topic.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		name := topic.Name
		if name == "" {
			name = fmt.Sprintf("Topic %d", label)
		}
		clusters = append(clusters, domain.ClusterResult{
			ID:         fmt.Sprintf("cluster-%d", label),
			ArticleIDs: ids,
			Keywords:   keywords,
			TopicName:  name,
			Size:       len(ids),
		})
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size > clusters[j].Size
	})

	return &domain.PipelineResult{
		Clusters:          clusters,
		UnclusteredIDs:    unclustered,
		TotalArticles:     len(units),
		ClusteredArticles: len(units) - len(unclustered),
		Message:           fmt.Sprintf("Successfully created %d clusters", len(clusters)),
	}
}
