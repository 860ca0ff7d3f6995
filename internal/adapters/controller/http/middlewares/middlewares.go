package middlewares

import (
	"strings"
	"time"

	"github.com/enqur/qrstudio/pkg/logger/types"
	"github.com/gin-gonic/gin"
)

// OwnerHeader carries the caller identity set by the upstream auth layer.
const OwnerHeader = "X-User-Email"

const ownerKey = "owner"

// Identify stores the caller identity from OwnerHeader in the context.
func Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ownerKey, strings.ToLower(strings.TrimSpace(c.GetHeader(OwnerHeader))))
		c.Next()
	}
}

// Owner returns the identity stored by Identify, or "" for anonymous callers.
func Owner(c *gin.Context) string {
	return c.GetString(ownerKey)
}

// Logger writes one line per request.
func Logger(logger *types.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		log := logger.Infof
		if status >= 500 {
			log = logger.Warnf
		}
		log("(owner: %s) %s %s | %d | %s", Owner(c), c.Request.Method, c.Request.URL.Path, status, time.Since(start))
	}
}

// Recovery turns panics into 500 responses and logs them.
func Recovery(logger *types.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("panic while serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	})
}
