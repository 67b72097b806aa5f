package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"party-site/pkg/logger"
)

// Session reports the guard's state so the client can show or hide the admin
// affordances.
func (h *Handlers) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"is_admin": h.Guard.IsAdmin(), "configured": h.Guard.Configured()})
}

// Login promotes the session to admin on an exact credential match.
func (h *Handlers) Login(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.Guard.Login(body.Username, body.Password); err != nil {
		logger.Debug(ctx, "Admin login rejected", "error", err)
		fail(c, err)
		return
	}
	logger.Info(ctx, "Admin logged in")
	c.JSON(http.StatusOK, gin.H{"is_admin": true})
}

// Logout demotes the session. Idempotent.
func (h *Handlers) Logout(c *gin.Context) {
	h.Guard.Logout()
	c.JSON(http.StatusOK, gin.H{"is_admin": false})
}
