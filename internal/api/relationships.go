package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/models"
)

// RelationshipHandler serves relationship endpoints.
type RelationshipHandler struct {
	svc RelationshipService
	log *logrus.Logger
}

// NewRelationshipHandler creates a RelationshipHandler.
func NewRelationshipHandler(svc RelationshipService, log *logrus.Logger) *RelationshipHandler {
	return &RelationshipHandler{svc: svc, log: log}
}

// List handles GET /api/v1/relationships, filtered by any of source, target
// and type.
func (h *RelationshipHandler) List(c *gin.Context) {
	limit, offset := page(c, 50)

	rels, hasMore, err := h.svc.ListRelationships(c.Request.Context(),
		c.Query("source"), c.Query("target"), c.Query("type"), limit, offset)
	if err != nil {
		respondStoreError(c, h.log, err, "relationship")
		return
	}

	c.JSON(http.StatusOK, gin.H{"relationships": rels, "has_more": hasMore})
}

// Create handles POST /api/v1/relationships. Both endpoints must exist.
func (h *RelationshipHandler) Create(c *gin.Context) {
	var req models.CreateRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return
	}

	rel, err := h.svc.CreateRelationship(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, h.log, err, "relationship")
		return
	}

	audit(c, h.log, "relationship.create", relFields(rel.Source, rel.Target, rel.Type))
	c.JSON(http.StatusCreated, rel)
}

// Delete handles DELETE /api/v1/relationships/:source/:target/:type.
func (h *RelationshipHandler) Delete(c *gin.Context) {
	ids, ok := pathIDs(c, "source", "target", "type")
	if !ok {
		return
	}

	if err := h.svc.DeleteRelationship(c.Request.Context(), ids[0], ids[1], ids[2]); err != nil {
		respondStoreError(c, h.log, err, "relationship")
		return
	}

	audit(c, h.log, "relationship.delete", relFields(ids[0], ids[1], ids[2]))
	c.Status(http.StatusNoContent)
}

func relFields(source, target, relType string) logrus.Fields {
	return logrus.Fields{"source": source, "target": target, "type": relType}
}
