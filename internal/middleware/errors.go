package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hostgraph/hostgraph/internal/httputil"
	"github.com/hostgraph/hostgraph/internal/metrics"
)

// Error codes written by the middleware chain.
const (
	codeUnauthorized    = "unauthorized"
	codeRateLimited     = "rate_limited"
	codePayloadTooLarge = "payload_too_large"
)

// respondError aborts the request with a JSON error body and counts it
// under the error code.
func respondError(c *gin.Context, status int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, status, errCode, message)
}
