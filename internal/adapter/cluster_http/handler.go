package cluster_http

import (
	"errors"
	"fmt"
	"net/http"

	"article-clustering/internal/domain"
	"article-clustering/internal/infra/logger"
	"article-clustering/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	clusterUsecase usecase.ClusterArticlesUsecase
}

func NewHandler(clusterUsecase usecase.ClusterArticlesUsecase) *Handler {
	return &Handler{clusterUsecase: clusterUsecase}
}

// ClusterRequest is the caller's article batch.
type ClusterRequest struct {
	Articles []domain.ArticleInput `json:"articles"`
}

// clusterResponse is the full success shape.
type clusterResponse struct {
	Clusters          []domain.ClusterResult `json:"clusters"`
	UnclusteredIDs    []string               `json:"unclusteredIds"`
	TotalArticles     int                    `json:"totalArticles"`
	ClusteredArticles int                    `json:"clusteredArticles"`
	Message           string                 `json:"message"`
}

// shortCircuitResponse is the insufficient-input shape: no counts, no
// unclusteredIds key.
type shortCircuitResponse struct {
	Clusters []domain.ClusterResult `json:"clusters"`
	Message  string                 `json:"message"`
}

type errorResponse struct {
	Error    string                 `json:"error"`
	Clusters []domain.ClusterResult `json:"clusters"`
	Message  string                 `json:"message,omitempty"`
}

// Cluster articles by topic
// (POST /v1/cluster)
func (h *Handler) ClusterArticles(ctx echo.Context) error {
	var req ClusterRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Error:    "invalid request",
			Clusters: []domain.ClusterResult{},
		})
	}

	reqCtx := logger.WithRequestID(ctx.Request().Context(), uuid.New().String())
	result, err := h.clusterUsecase.Execute(reqCtx, req.Articles)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyRequest) {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Error:    err.Error(),
				Clusters: []domain.ClusterResult{},
			})
		}
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Error:    err.Error(),
			Clusters: []domain.ClusterResult{},
			Message:  fmt.Sprintf("Clustering failed: %s", err.Error()),
		})
	}

	if result.ShortCircuit {
		return ctx.JSON(http.StatusOK, shortCircuitResponse{
			Clusters: result.Clusters,
			Message:  result.Message,
		})
	}

	unclustered := result.UnclusteredIDs
	if unclustered == nil {
		unclustered = []string{}
	}
	return ctx.JSON(http.StatusOK, clusterResponse{
		Clusters:          result.Clusters,
		UnclusteredIDs:    unclustered,
		TotalArticles:     result.TotalArticles,
		ClusteredArticles: result.ClusteredArticles,
		Message:           result.Message,
	})
}

// Liveness probe
// (GET /v1/health)
func (h *Handler) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RegisterRoutes attaches the handler to the echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.POST("/v1/cluster", h.ClusterArticles)
	e.GET("/v1/health", h.Health)
}
