package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/httputil"
	"github.com/hostgraph/hostgraph/internal/metrics"
	"github.com/hostgraph/hostgraph/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternalError    = "internal_error"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeValidationError  = "validation_error"
	ErrCodeSourceNotFound   = "source_not_found"
	ErrCodeAmbiguousSource  = "ambiguous_source"
	ErrCodeTargetNotFound   = "target_not_found"
	ErrCodeDepthOutOfRange  = "depth_out_of_range"
	ErrCodeBudgetExceeded   = "path_budget_exceeded"
	ErrCodeTraversalTimeout = "traversal_timeout"
	ErrCodeTraversalFailed  = "traversal_failed"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondStoreError maps a CRUD failure onto a status and code. what names the
// entity being written, for the conflict message.
func respondStoreError(c *gin.Context, log *logrus.Logger, err error, what string) {
	switch {
	case errors.Is(err, models.ErrNodeNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "node not found")
	case errors.Is(err, models.ErrRelationshipNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "relationship not found")
	case errors.Is(err, models.ErrDuplicateKey):
		respondError(c, http.StatusConflict, ErrCodeConflict, what+" already exists")
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error(what + " operation failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

// respondQueryError maps a close-host query failure onto a status and code.
// Input problems are reported before any traversal runs; the remaining cases
// abandon the traversal without a partial result.
func respondQueryError(c *gin.Context, log *logrus.Logger, err error) {
	var travErr *models.TraversalError

	switch {
	case errors.Is(err, models.ErrSourceNotFound):
		respondError(c, http.StatusBadRequest, ErrCodeSourceNotFound, err.Error())
	case errors.Is(err, models.ErrAmbiguousSource):
		respondError(c, http.StatusBadRequest, ErrCodeAmbiguousSource, err.Error())
	case errors.Is(err, models.ErrTargetNotFound):
		respondError(c, http.StatusBadRequest, ErrCodeTargetNotFound, err.Error())
	case errors.Is(err, models.ErrDepthOutOfRange):
		respondError(c, http.StatusBadRequest, ErrCodeDepthOutOfRange, err.Error())
	case errors.Is(err, models.ErrPathBudgetExceeded):
		respondError(c, http.StatusUnprocessableEntity, ErrCodeBudgetExceeded, "query explores too many paths; lower the depth")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, ErrCodeTraversalTimeout, "query did not finish in time")
	case errors.As(err, &travErr):
		log.WithError(err).WithField("depth", travErr.Depth).Error("traversal failed")
		respondError(c, http.StatusInternalServerError, ErrCodeTraversalFailed, "traversal failed")
	default:
		log.WithError(err).Error("close-host query")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
