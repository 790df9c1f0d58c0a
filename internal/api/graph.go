package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GraphHandler serves neighborhood lookups.
type GraphHandler struct {
	svc GraphService
	log *logrus.Logger
}

// NewGraphHandler creates a GraphHandler.
func NewGraphHandler(svc GraphService, log *logrus.Logger) *GraphHandler {
	return &GraphHandler{svc: svc, log: log}
}

// Neighbors handles GET /api/v1/nodes/:id/neighbors: every relationship that
// starts or ends at the node, with the node at the other end.
func (h *GraphHandler) Neighbors(c *gin.Context) {
	ids, ok := pathIDs(c, "id")
	if !ok {
		return
	}

	limit, _ := page(c, 100)

	result, err := h.svc.Neighbors(c.Request.Context(), ids[0], limit)
	if err != nil {
		respondStoreError(c, h.log, err, "node")
		return
	}

	c.JSON(http.StatusOK, result)
}
