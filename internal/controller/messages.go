package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"party-site/internal/cache"
	"party-site/pkg/logger"
)

// GetMessages is the public handler: returns the guestbook newest-first,
// cache-first as raw bytes.
func (h *Handlers) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()
	if b, ok := cache.GetRawMessages(ctx); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}
	v, err, _ := h.messagesGroup.Do("messages", func() (interface{}, error) {
		if err := h.Messages.Load(context.Background()); err != nil {
			return nil, err
		}
		return json.Marshal(h.Messages.Messages())
	})
	if err != nil {
		logger.Error(ctx, "GetMessages load failed", "error", err)
		fail(c, err)
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	go cache.SetRawMessages(context.Background(), b)
}

// PostMessage is public: anyone can sign the guestbook.
func (h *Handlers) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Author  string `json:"author"`
		Content string `json:"content"`
		Avatar  string `json:"avatar"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	msg, err := h.Messages.Post(ctx, body.Author, body.Content, body.Avatar)
	if err != nil {
		logger.Debug(ctx, "PostMessage failed", "error", err)
		fail(c, err)
		return
	}
	cache.InvalidateMessages(ctx)
	c.JSON(http.StatusCreated, msg)
}

// DeleteMessage (admin): removes one message by id.
func (h *Handlers) DeleteMessage(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Messages.Delete(ctx, c.Param("id")); err != nil {
		logger.Debug(ctx, "DeleteMessage failed", "error", err)
		fail(c, err)
		return
	}
	cache.InvalidateMessages(ctx)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
