package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/metrics"
)

// StatsHandler serves the graph statistics endpoint.
type StatsHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewStatsHandler creates a StatsHandler with the given dependencies.
func NewStatsHandler(svc GraphService, log *logrus.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: log}
}

// GetStats handles GET /api/v1/stats.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("stats")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	// Fresh counts double as a gauge refresh.
	metrics.NodeCount.Set(float64(stats.Nodes))
	metrics.RelationshipCount.Set(float64(stats.Relationships))

	c.JSON(http.StatusOK, stats)
}
