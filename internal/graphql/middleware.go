package graphql

import (
	"github.com/gin-gonic/gin"

	"github.com/hostgraph/hostgraph/internal/middleware"
)

// ClientIDMiddleware copies the client set by the auth middleware into the
// request context, where resolvers can read it.
func ClientIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetString(middleware.ClientIDKey); id != "" {
			c.Request = c.Request.WithContext(WithClientID(c.Request.Context(), id))
		}
		c.Next()
	}
}
