package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"article-clustering/internal/cluster"
	"article-clustering/internal/domain"
	"article-clustering/internal/infra/logger"
	"article-clustering/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockVectorEncoder struct {
	mock.Mock
}

func (m *MockVectorEncoder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

func (m *MockVectorEncoder) Version() string {
	return "mock-encoder"
}

func newUsecase(encoder domain.VectorEncoder) usecase.ClusterArticlesUsecase {
	return usecase.NewClusterArticlesUsecase(
		domain.NewPreparer(),
		encoder,
		cluster.NewReducer(5),
		cluster.NewEngine(2, 0),
		cluster.NewExtractor(),
		cluster.DefaultMergeSimilarity,
		logger.NewContextLogger("article-clustering", slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func sampleArticles() []domain.ArticleInput {
	return []domain.ArticleInput{
		{ID: "1", Title: "Macron annonce une réforme des retraites", Excerpt: "Le président a présenté son projet de loi sur les retraites."},
		{ID: "2", Title: "Retraites : les syndicats appellent à la grève", Excerpt: "Une journée de mobilisation nationale est prévue."},
		{ID: "3", Title: "Le climat se réchauffe plus vite que prévu", Excerpt: "Les scientifiques alertent sur l'accélération du changement climatique."},
		{ID: "4", Title: "COP28 : les négociations sur le climat s'intensifient", Excerpt: "Les pays tentent de trouver un accord sur les énergies fossiles."},
		{ID: "5", Title: "Économie : la BCE maintient ses taux", Excerpt: "La banque centrale européenne a décidé de ne pas modifier ses taux directeurs."},
	}
}

func TestClusterArticlesUsecase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty request is an error", func(t *testing.T) {
		uc := newUsecase(new(MockVectorEncoder))
		_, err := uc.Execute(ctx, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyRequest)
	})

	t.Run("Fewer than 3 articles short-circuits", func(t *testing.T) {
		uc := newUsecase(new(MockVectorEncoder))
		result, err := uc.Execute(ctx, []domain.ArticleInput{
			{ID: "1", Title: "Un", Excerpt: "article"},
			{ID: "2", Title: "Deux", Excerpt: "articles"},
		})
		require.NoError(t, err)
		assert.True(t, result.ShortCircuit)
		assert.Empty(t, result.Clusters)
		assert.NotEmpty(t, result.Message)
		assert.Empty(t, result.UnclusteredIDs)
	})

	t.Run("Fewer than 3 valid documents short-circuits", func(t *testing.T) {
		uc := newUsecase(new(MockVectorEncoder))
		result, err := uc.Execute(ctx, []domain.ArticleInput{
			{ID: "1", Title: "Un", Excerpt: "article"},
			{ID: "2", Title: "Deux", Excerpt: "articles"},
			{ID: "3", Title: "   ", Excerpt: ""},
		})
		require.NoError(t, err)
		assert.True(t, result.ShortCircuit)
		assert.Empty(t, result.Clusters)
		assert.Equal(t, "Not enough valid documents to cluster", result.Message)
	})

	t.Run("Two topics and one outlier", func(t *testing.T) {
		encoder := new(MockVectorEncoder)
		encoder.On("Encode", mock.Anything, mock.Anything).Return([][]float32{
			{1, 0, 0, 0, 0, 0, 0, 0},
			{0.95, 0.05, 0, 0, 0, 0, 0, 0},
			{0, 1, 0, 0, 0, 0, 0, 0},
			{0.05, 0.95, 0, 0, 0, 0, 0, 0},
			{0, 0, 1, 0, 0, 0, 0, 0},
		}, nil)

		uc := newUsecase(encoder)
		result, err := uc.Execute(ctx, sampleArticles())
		require.NoError(t, err)

		require.Len(t, result.Clusters, 2)
		assert.Equal(t, 5, result.TotalArticles)
		assert.Equal(t, 4, result.ClusteredArticles)
		assert.Equal(t, []string{"5"}, result.UnclusteredIDs)

		seen := map[string]int{}
		for _, c := range result.Clusters {
			assert.Equal(t, 2, c.Size)
			assert.Len(t, c.ArticleIDs, c.Size)
			assert.NotEmpty(t, c.TopicName)
			assert.LessOrEqual(t, len(c.Keywords), 5)
			for _, id := range c.ArticleIDs {
				seen[id]++
			}
		}
		assert.Equal(t, map[string]int{"1": 1, "2": 1, "3": 1, "4": 1}, seen)
		encoder.AssertExpectations(t)
	})

	t.Run("Near-duplicate articles form one cluster", func(t *testing.T) {
		encoder := new(MockVectorEncoder)
		encoder.On("Encode", mock.Anything, mock.Anything).Return([][]float32{
			{0.5, 0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5, 0.5},
		}, nil)

		uc := newUsecase(encoder)
		result, err := uc.Execute(ctx, []domain.ArticleInput{
			{ID: "a", Title: "Grève des transports à Paris", Excerpt: "La circulation est perturbée."},
			{ID: "b", Title: "Grève des transports à Paris", Excerpt: "La circulation est perturbée."},
			{ID: "c", Title: "Grève des transports à Paris", Excerpt: "La circulation est perturbée."},
		})
		require.NoError(t, err)

		require.Len(t, result.Clusters, 1)
		assert.Equal(t, 3, result.Clusters[0].Size)
		assert.Empty(t, result.UnclusteredIDs)
		assert.Equal(t, 3, result.TotalArticles)
		assert.Equal(t, 3, result.ClusteredArticles)
	})

	t.Run("Clusters are sorted by size descending", func(t *testing.T) {
		encoder := new(MockVectorEncoder)
		encoder.On("Encode", mock.Anything, mock.Anything).Return([][]float32{
			{0, 1, 0, 0},
			{1, 0, 0, 0},
			{0, 1.02, 0.01, 0},
			{1.01, 0.01, 0, 0},
			{1.02, 0, 0.01, 0},
		}, nil)

		uc := newUsecase(encoder)
		result, err := uc.Execute(ctx, sampleArticles())
		require.NoError(t, err)

		require.Len(t, result.Clusters, 2)
		assert.Equal(t, 3, result.Clusters[0].Size)
		assert.Equal(t, 2, result.Clusters[1].Size)
	})

	t.Run("Encoder failure fails the whole call", func(t *testing.T) {
		encoder := new(MockVectorEncoder)
		encoder.On("Encode", mock.Anything, mock.Anything).Return(nil, errors.New("model unavailable"))

		uc := newUsecase(encoder)
		_, err := uc.Execute(ctx, sampleArticles())
		require.Error(t, err)

		var pipelineErr *domain.PipelineError
		require.ErrorAs(t, err, &pipelineErr)
		assert.Equal(t, "embedding", pipelineErr.Stage)
	})

	t.Run("Ragged embedding set fails the whole call", func(t *testing.T) {
		encoder := new(MockVectorEncoder)
		encoder.On("Encode", mock.Anything, mock.Anything).Return([][]float32{
			{1, 0}, {0, 1},
		}, nil)

		uc := newUsecase(encoder)
		_, err := uc.Execute(ctx, sampleArticles())

		var pipelineErr *domain.PipelineError
		require.ErrorAs(t, err, &pipelineErr)
		assert.Equal(t, "embedding", pipelineErr.Stage)
	})
}
