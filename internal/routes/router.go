package routes

import (
	"github.com/gin-gonic/gin"
	"party-site/internal/controller"
	"party-site/internal/middleware"
)

// Router builds the gin engine around the long-lived handlers.
func Router(h *controller.Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Health for load balancers and probes
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	// Public: the four views' data
	router.GET("/countdown", h.Countdown)
	router.GET("/menu", h.GetMenu)
	router.GET("/messages", h.GetMessages)
	router.POST("/messages", h.PostMessage)

	// RSVP flow
	router.GET("/rsvp", h.RSVPState)
	router.POST("/rsvp", h.SubmitRSVP)
	router.POST("/rsvp/reset", h.ResetRSVP)

	// Admin session
	router.GET("/auth/session", h.Session)
	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", h.Logout)

	// Protected: admin session required
	admin := router.Group("")
	admin.Use(middleware.AdminRequired(h.Guard))
	{
		admin.POST("/menu/items", h.AddMenuItem)
		admin.PUT("/menu/categories/:id/items/:index", h.EditMenuItem)
		admin.DELETE("/menu/categories/:id/items/:index", h.DeleteMenuItem)
		admin.DELETE("/messages/:id", h.DeleteMessage)
	}

	return router
}
