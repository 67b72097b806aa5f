package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"party-site/internal/rsvp"
	"party-site/pkg/logger"
)

// RSVPState returns the flow's phase and any preserved form values, so a page
// reload lands back where the user left off within this process.
func (h *Handlers) RSVPState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.RSVP.State(), "form": h.RSVP.Form()})
}

// SubmitRSVP validates and submits an attendance response. Validation errors
// come back 400 with the form left editable; a backend failure preserves the
// entered values for a retry.
func (h *Handlers) SubmitRSVP(c *gin.Context) {
	ctx := c.Request.Context()
	var form rsvp.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if err := h.RSVP.Submit(ctx, form); err != nil {
		logger.Debug(ctx, "SubmitRSVP failed", "error", err)
		fail(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"state": h.RSVP.State(), "message": "Your RSVP has been successfully submitted."})
}

// ResetRSVP returns the flow to a blank editing form ("submit another
// response").
func (h *Handlers) ResetRSVP(c *gin.Context) {
	h.RSVP.Reset()
	c.JSON(http.StatusOK, gin.H{"state": h.RSVP.State()})
}
