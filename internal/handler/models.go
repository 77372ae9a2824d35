package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"solid-waffle/internal/cache"

	"github.com/gin-gonic/gin"
)

// GetModel godoc
// @Summary      Get the active model for a key
// @Description  Returns metadata and the serialized artifact of the currently active model version
// @Tags         models
// @Produce      json
// @Param        key  path  string  true  "Model key"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/models/{key} [get]
func (h *Handler) GetModel(c *gin.Context) {
	if h.models == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model registry unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-model")
	defer span.End()

	key := c.Param("key")

	if blob, version, ok, err := cache.FetchArtifact(ctx, h.cache, key); err == nil && ok {
		c.JSON(http.StatusOK, gin.H{
			"model_key": key,
			"version":   version,
			"artifact":  json.RawMessage(blob),
			"cached":    true,
		})
		return
	}

	model, err := h.models.GetActiveModel(ctx, key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if model == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active model for key"})
		return
	}

	if h.cache != nil {
		if err := cache.StoreArtifact(ctx, h.cache, key, model.Version, model.ArtifactBlob); err != nil {
			log.Printf("Failed to cache model artifact for %s: %v", key, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"model_key":  model.ModelKey,
		"version":    model.Version,
		"trained_at": model.TrainedAt,
		"metrics":    json.RawMessage(model.MetricsJSON),
		"artifact":   json.RawMessage(model.ArtifactBlob),
		"cached":     false,
	})
}
