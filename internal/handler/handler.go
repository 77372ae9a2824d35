package handler

import (
	"context"
	"time"

	"solid-waffle/internal/domain"
	"solid-waffle/internal/training"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

type TrainRunner interface {
	TrainOnce(ctx context.Context, now time.Time) (training.TrainResult, error)
}

type ModelReader interface {
	GetActiveModel(ctx context.Context, modelKey string) (*domain.ModelVersion, error)
	GetLatestModel(ctx context.Context, modelKey string) (*domain.ModelVersion, error)
}

type Handler struct {
	tracer  trace.Tracer
	trainer TrainRunner
	models  ModelReader
	cache   *redis.Client
}

func New(tracer trace.Tracer, trainer TrainRunner, models ModelReader, cache *redis.Client) *Handler {
	return &Handler{
		tracer:  tracer,
		trainer: trainer,
		models:  models,
		cache:   cache,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/models/:key", h.GetModel)
	r.POST("/api/loss", h.EvaluateLoss)
}

// RegisterProtectedRoutes wires the endpoints that sit behind API key auth.
func (h *Handler) RegisterProtectedRoutes(r gin.IRoutes) {
	r.POST("/api/train", h.TriggerTraining)
}
