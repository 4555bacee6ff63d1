package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ngfw-ml-scoring/internal/scoring"
)

// ScoreHandler handles HTTP requests for request-context risk scoring.
type ScoreHandler struct {
	scorer *scoring.Scorer
	logger *logrus.Logger
}

// NewScoreHandler creates a new scoring handler.
func NewScoreHandler(scorer *scoring.Scorer, logger *logrus.Logger) *ScoreHandler {
	return &ScoreHandler{
		scorer: scorer,
		logger: logger,
	}
}

// Root handles GET / requests with the static service identity. It carries
// no dependency on model state beyond the process having started.
func (h *ScoreHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": scoring.ServiceName,
	})
}

// Score handles POST /score requests.
func (h *ScoreHandler) Score(c *gin.Context) {
	var req scoring.RequestContext
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid score request payload")
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	result, err := h.scorer.Score(c.Request.Context(), &req)
	if err != nil {
		h.logger.WithError(err).Error("Scoring failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck handles GET /health requests with the extended health report.
func (h *ScoreHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.scorer.Health())
}
