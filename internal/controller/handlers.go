// Package controller holds the gin handlers. Every handler catches failures
// at its own boundary and turns them into a JSON error string; nothing
// propagates uncaught into the rendering layer.
package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
	"party-site/internal/auth"
	"party-site/internal/countdown"
	"party-site/internal/database"
	"party-site/internal/gateway"
	"party-site/internal/menu"
	"party-site/internal/messages"
	"party-site/internal/rsvp"
)

// Handlers bundles the long-lived components the routes dispatch into.
type Handlers struct {
	Engine   *countdown.Engine
	Guard    *auth.Guard
	Menu     *menu.Controller
	Messages *messages.Controller
	RSVP     *rsvp.Flow

	menuGroup     singleflight.Group
	messagesGroup singleflight.Group
}

// Health returns 200 if the process is alive. Used by load balancers.
func (h *Handlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the backend is reachable. The site stays up without a
// backend, but in that degraded state every write fails, so readiness is the
// honest signal for routing traffic.
func (h *Handlers) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	db := database.DB(ctx)
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "backend not configured"})
		return
	}
	if err := db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database ping failed"})
		return
	}
	c.String(http.StatusOK, "OK")
}

// Countdown returns the engine's latest snapshot.
func (h *Handlers) Countdown(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Snapshot())
}

// status maps the error taxonomy onto HTTP codes: configuration and remote
// failures are surfaced verbatim, validation stays a 400, and the guard's
// rejections keep their own codes.
func status(err error) int {
	switch {
	case errors.Is(err, gateway.ErrNotConfigured), errors.Is(err, auth.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, menu.ErrNotAdmin), errors.Is(err, messages.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, menu.ErrEmptyFields), errors.Is(err, messages.ErrEmptyFields), errors.Is(err, rsvp.ErrIncomplete):
		return http.StatusBadRequest
	case errors.Is(err, rsvp.ErrBusy):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(status(err), gin.H{"error": err.Error()})
}
