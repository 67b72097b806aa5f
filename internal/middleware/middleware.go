package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"party-site/internal/auth"
	"party-site/pkg/logger"
)

// AdminRequired rejects requests while the admin session guard is logged out.
// The guard gates affordances only; it is not a data-layer boundary.
func AdminRequired(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !guard.IsAdmin() {
			logger.Debug(c.Request.Context(), "Admin route rejected: not logged in", "path", c.Request.URL.Path)
			c.JSON(http.StatusForbidden, gin.H{"error": "admin login required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
