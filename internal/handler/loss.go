package handler

import (
	"net/http"

	"solid-waffle/internal/dataset"
	"solid-waffle/internal/objective"

	"github.com/gin-gonic/gin"
)

type lossRequest struct {
	Samples [][]float64 `json:"samples" binding:"required"`
	Labels  []float64   `json:"labels" binding:"required"`
	Params  []float64   `json:"params" binding:"required"`
	Lambda  float64     `json:"lambda"`
}

// EvaluateLoss godoc
// @Summary      Evaluate the logistic objective for a supplied dataset
// @Description  Computes the regularized negative log-likelihood and its gradient at the given parameters
// @Tags         models
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/loss [post]
func (h *Handler) EvaluateLoss(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.evaluate-loss")
	defer span.End()

	var req lossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	design, err := dataset.FromSamples(req.Samples, req.Labels)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loss, err := objective.NewLogisticLoss(design, req.Lambda)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Params) != loss.Dim() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "params dimension does not match dataset"})
		return
	}

	grad := loss.Gradient(nil, req.Params)
	c.JSON(http.StatusOK, gin.H{
		"loss":     loss.Evaluate(req.Params),
		"gradient": grad,
		"samples":  loss.NumFunctions(),
	})
}
