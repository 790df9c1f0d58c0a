package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/models"
)

// NodeHandler serves node CRUD endpoints.
type NodeHandler struct {
	svc NodeService
	log *logrus.Logger
}

// NewNodeHandler creates a NodeHandler.
func NewNodeHandler(svc NodeService, log *logrus.Logger) *NodeHandler {
	return &NodeHandler{svc: svc, log: log}
}

// List handles GET /api/v1/nodes. The label query parameter filters by label.
func (h *NodeHandler) List(c *gin.Context) {
	limit, offset := page(c, 50)

	nodes, hasMore, err := h.svc.ListNodes(c.Request.Context(), c.Query("label"), limit, offset)
	if err != nil {
		respondStoreError(c, h.log, err, "node")
		return
	}

	c.JSON(http.StatusOK, gin.H{"nodes": nodes, "has_more": hasMore})
}

// Get handles GET /api/v1/nodes/:id.
func (h *NodeHandler) Get(c *gin.Context) {
	ids, ok := pathIDs(c, "id")
	if !ok {
		return
	}

	node, err := h.svc.GetNode(c.Request.Context(), ids[0])
	if err != nil {
		respondStoreError(c, h.log, err, "node")
		return
	}

	c.JSON(http.StatusOK, node)
}

// Create handles POST /api/v1/nodes. IP nodes must carry an address.
func (h *NodeHandler) Create(c *gin.Context) {
	var req models.CreateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	node, err := h.svc.CreateNode(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, h.log, err, "node")
		return
	}

	audit(c, h.log, "node.create", logrus.Fields{"node_id": node.ID, "labels": node.Labels})
	c.JSON(http.StatusCreated, node)
}

// Delete handles DELETE /api/v1/nodes/:id. Relationships touching the node
// are removed with it.
func (h *NodeHandler) Delete(c *gin.Context) {
	ids, ok := pathIDs(c, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteNode(c.Request.Context(), ids[0]); err != nil {
		respondStoreError(c, h.log, err, "node")
		return
	}

	audit(c, h.log, "node.delete", logrus.Fields{"node_id": ids[0]})
	c.Status(http.StatusNoContent)
}
