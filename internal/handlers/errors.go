package handlers

import (
	"github.com/gin-gonic/gin"
)

// recordCause stores err on the gin context; ObservabilityMiddleware reads
// c.Errors to fill the request log's error field.
func recordCause(c *gin.Context, err error) {
	if err == nil {
		return
	}
	// The returned *gin.Error is only useful for chaining metadata
	_ = c.Error(err) //nolint:errcheck
}

// respondError writes {"error": message} and records err for the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	recordCause(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails adds a details member next to the error message.
// Only delivery failures use it, with the underlying cause as details.
func respondErrorWithDetails(c *gin.Context, status int, message, details string, err error) { //nolint:unparam
	recordCause(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}
