package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"party-site/internal/cache"
	"party-site/internal/gateway"
	"party-site/internal/menu"
	"party-site/pkg/logger"
)

// GetMenu is the public handler: returns the menu as JSON, cache-first as raw
// bytes, with concurrent cold reads collapsed through singleflight.
func (h *Handlers) GetMenu(c *gin.Context) {
	ctx := c.Request.Context()
	if b, ok := cache.GetRawMenu(ctx); ok {
		c.Data(http.StatusOK, "application/json", b)
		return
	}
	v, err, _ := h.menuGroup.Do("menu", func() (interface{}, error) {
		if err := h.Menu.Load(context.Background()); err != nil {
			return nil, err
		}
		return json.Marshal(h.Menu.Categories())
	})
	if err != nil {
		logger.Error(ctx, "GetMenu load failed", "error", err)
		fail(c, err)
		return
	}
	b := v.([]byte)
	c.Data(http.StatusOK, "application/json", b)
	go cache.SetRawMenu(context.Background(), b)
}

// AddMenuItem (admin): creates an item, lazily creating its category.
func (h *Handlers) AddMenuItem(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Course      string   `json:"course" binding:"required"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	item, err := h.Menu.AddItem(ctx, menu.Course(body.Course), body.Name, body.Description, body.Tags)
	if err != nil {
		logger.Debug(ctx, "AddMenuItem failed", "error", err)
		fail(c, err)
		return
	}
	cache.InvalidateMenu(ctx)
	c.JSON(http.StatusCreated, item)
}

// EditMenuItem (admin): replaces the name or description of the item at a
// positional index within a category.
func (h *Handlers) EditMenuItem(c *gin.Context) {
	ctx := c.Request.Context()
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}
	var body struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	field := gateway.ItemField(body.Field)
	if field != gateway.FieldName && field != gateway.FieldDescription {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field must be name or description"})
		return
	}
	if err := h.Menu.EditItem(ctx, c.Param("id"), index, field, body.Value); err != nil {
		logger.Debug(ctx, "EditMenuItem failed", "error", err)
		fail(c, err)
		return
	}
	cache.InvalidateMenu(ctx)
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteMenuItem (admin): removes an item by id, splicing the category's item
// list at the given index.
func (h *Handlers) DeleteMenuItem(c *gin.Context) {
	ctx := c.Request.Context()
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}
	itemID := c.Query("item_id")
	if err := h.Menu.DeleteItem(ctx, c.Param("id"), itemID, index); err != nil {
		logger.Debug(ctx, "DeleteMenuItem failed", "error", err)
		fail(c, err)
		return
	}
	cache.InvalidateMenu(ctx)
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
