package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireFeature returns middleware that answers 404 for every route in its
// group when the feature switch is off. A disabled surface is
// indistinguishable from one that does not exist.
func RequireFeature(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   gin.H{"code": "NOT_FOUND", "message": "resource not found"},
			})
			return
		}
		c.Next()
	}
}
