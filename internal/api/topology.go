package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/models"
)

// TopologyHandler serves whole-graph import and export.
type TopologyHandler struct {
	svc TopologyService
	log *logrus.Logger
}

// NewTopologyHandler creates a TopologyHandler.
func NewTopologyHandler(svc TopologyService, log *logrus.Logger) *TopologyHandler {
	return &TopologyHandler{svc: svc, log: log}
}

// Import handles POST /api/v1/topology. The replace query parameter clears
// the stored graph first.
func (h *TopologyHandler) Import(c *gin.Context) {
	var topo models.Topology
	if err := c.ShouldBindJSON(&topo); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return
	}

	replace, _ := strconv.ParseBool(c.DefaultQuery("replace", "false"))

	result, err := h.svc.Import(c.Request.Context(), &topo, models.ImportOptions{Replace: replace})
	if err != nil {
		var topoErr *models.TopologyError

		switch {
		case errors.As(err, &topoErr), errors.Is(err, models.ErrEmptyTopology):
			respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		default:
			h.log.WithError(err).Error("importing topology")
			respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
		}

		return
	}

	h.log.WithFields(logrus.Fields{
		"action":        "topology.import",
		"client_id":     clientID(c),
		"nodes":         result.NodesUpserted,
		"relationships": result.RelationshipsUpserted,
		"replaced":      result.Replaced,
	}).Info("audit")

	c.JSON(http.StatusOK, result)
}

// Export handles GET /api/v1/topology.
func (h *TopologyHandler) Export(c *gin.Context) {
	topo, err := h.svc.Export(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("exporting topology")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")

		return
	}

	c.JSON(http.StatusOK, topo)
}
