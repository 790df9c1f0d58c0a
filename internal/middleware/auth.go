package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ClientIDKey is the gin context key holding the authenticated client ID.
const ClientIDKey = "client_id"

// authTimingFloor is the minimum response time for rejected requests so
// failures cannot be told apart by latency.
const authTimingFloor = 50 * time.Millisecond

// KeyAuthenticator resolves an API key to a client ID.
type KeyAuthenticator interface {
	Authenticate(key string) (string, bool)
}

// enforceTimingFloor sleeps if needed so the response takes at least authTimingFloor.
func enforceTimingFloor(start time.Time) {
	if elapsed := time.Since(start); elapsed < authTimingFloor {
		time.Sleep(authTimingFloor - elapsed)
	}
}

// AuthMiddleware returns Gin middleware that authenticates requests via Bearer token.
// When guard is non-nil, failures are counted per client address.
func AuthMiddleware(keys KeyAuthenticator, log *logrus.Logger, guard *BruteForceGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if c.Writer.Status() == http.StatusUnauthorized {
				enforceTimingFloor(start)
			}
		}()

		token := ExtractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "missing or invalid authorization header")
			return
		}

		clientID, ok := keys.Authenticate(token)
		if !ok {
			logAuthFailure(log, c, token)

			if guard != nil {
				guard.RecordFailure(c.ClientIP())
			}

			respondError(c, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
			return
		}

		if guard != nil {
			guard.Reset(c.ClientIP())
		}

		c.Set(ClientIDKey, clientID)
		c.Next()
	}
}

// NoAuth marks every request as coming from the anonymous client. It is used
// when authentication is explicitly disabled.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ClientIDKey, "anonymous")
		c.Next()
	}
}

// ExtractBearerToken extracts the API key from the Authorization header.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func logAuthFailure(log *logrus.Logger, c *gin.Context, token string) {
	log.WithFields(logrus.Fields{
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"request_id": c.GetString(RequestIDKey),
		"key_hash":   keyHash(token)[:12],
	}).Warn("authentication failed: invalid api key")
}
