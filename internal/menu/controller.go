// Package menu keeps the in-memory menu view in sync with the store. The view
// is replaced wholesale on Load and patched only after a gateway mutation
// succeeds, so the view and the store never diverge on failure.
package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"party-site/internal/auth"
	"party-site/internal/gateway"
	"party-site/internal/models"
)

// ErrNotAdmin is returned by mutations when no admin session is active.
var ErrNotAdmin = errors.New("admin login required")

// ErrEmptyFields is returned when a new item is missing its name or
// description; no gateway call is made.
var ErrEmptyFields = errors.New("item name and description are required")

// Course identifies which part of the meal an item belongs to. Each course
// maps to a fixed category title and icon.
type Course string

const (
	CourseStarters  Course = "starters"
	CourseMains     Course = "mains"
	CourseDesserts  Course = "desserts"
	CourseBeverages Course = "beverages"
)

var courses = map[Course]struct{ Title, IconKey string }{
	CourseStarters:  {"Starters", "leaf"},
	CourseMains:     {"Main Courses", "utensils"},
	CourseDesserts:  {"Desserts", "cake"},
	CourseBeverages: {"Beverages", "wine"},
}

// Controller orchestrates menu reads and admin-gated mutations. The mutex
// serializes every operation, including the gateway round trip inside
// ensureCategory, so two concurrent AddItem calls cannot both create a
// category with the same title through this process.
type Controller struct {
	mu         sync.Mutex
	gw         gateway.Gateway
	guard      *auth.Guard
	categories []models.MenuCategory
	loaded     bool
}

// NewController returns a controller with an empty view; call Load to
// populate it.
func NewController(gw gateway.Gateway, guard *auth.Guard) *Controller {
	return &Controller{gw: gw, guard: guard}
}

// Load replaces the local view with the store's current menu.
func (c *Controller) Load(ctx context.Context) error {
	cats, err := c.gw.ListMenu(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.categories = cats
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// ensureLoadedLocked syncs the view from the store before the first mutation,
// so a fresh process behind a warm list cache does not re-create categories
// the store already has or miss items an admin can plainly see.
func (c *Controller) ensureLoadedLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	cats, err := c.gw.ListMenu(ctx)
	if err != nil {
		return err
	}
	c.categories = cats
	c.loaded = true
	return nil
}

// Categories returns a copy of the current view.
func (c *Controller) Categories() []models.MenuCategory {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.MenuCategory, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat
		out[i].Items = append([]models.MenuItem(nil), cat.Items...)
	}
	return out
}

// EnsureCategory returns the id of the category with the given title,
// creating it remotely and appending it locally if it does not exist yet.
// Title equality is the sole dedup key. Idempotent.
func (c *Controller) EnsureCategory(ctx context.Context, title, iconKey string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return "", err
	}
	return c.ensureCategoryLocked(ctx, title, iconKey)
}

func (c *Controller) ensureCategoryLocked(ctx context.Context, title, iconKey string) (string, error) {
	for _, cat := range c.categories {
		if cat.Title == title {
			return cat.ID, nil
		}
	}
	cat, err := c.gw.InsertCategory(ctx, title, iconKey)
	if err != nil {
		return "", err
	}
	c.categories = append(c.categories, cat)
	return cat.ID, nil
}

// AddItem creates an item under the course's category, creating the category
// first if needed. Blank name or description (after trimming) makes no
// gateway call and leaves the view untouched.
func (c *Controller) AddItem(ctx context.Context, course Course, name, description string, tags []string) (models.MenuItem, error) {
	if !c.guard.IsAdmin() {
		return models.MenuItem{}, ErrNotAdmin
	}
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return models.MenuItem{}, ErrEmptyFields
	}
	info, ok := courses[course]
	if !ok {
		return models.MenuItem{}, fmt.Errorf("unknown course %q", course)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return models.MenuItem{}, err
	}
	catID, err := c.ensureCategoryLocked(ctx, info.Title, info.IconKey)
	if err != nil {
		return models.MenuItem{}, err
	}
	item, err := c.gw.InsertItem(ctx, catID, models.MenuItem{Name: name, Description: description, Tags: tags})
	if err != nil {
		return models.MenuItem{}, err
	}
	for i := range c.categories {
		if c.categories[i].ID == catID {
			c.categories[i].Items = append(c.categories[i].Items, item)
			break
		}
	}
	return item, nil
}

// EditItem replaces one field of the item at index within a category. A
// missing replacement value or an item that never round-tripped with the
// store (no id) is a no-op.
func (c *Controller) EditItem(ctx context.Context, categoryID string, index int, field gateway.ItemField, value string) error {
	if !c.guard.IsAdmin() {
		return ErrNotAdmin
	}
	if value == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	cat := c.findLocked(categoryID)
	if cat == nil || index < 0 || index >= len(cat.Items) {
		return fmt.Errorf("no menu item at index %d", index)
	}
	item := &cat.Items[index]
	if item.ID == "" {
		return nil
	}
	if err := c.gw.UpdateItem(ctx, item.ID, field, value); err != nil {
		return err
	}
	switch field {
	case gateway.FieldName:
		item.Name = value
	case gateway.FieldDescription:
		item.Description = value
	}
	return nil
}

// DeleteItem removes the item with itemID from a category. The id drives the
// remote delete; the index drives the local splice. itemID absent is a no-op.
// Concurrent admins editing the same category could desynchronize the
// index-to-item mapping; the single-owner view makes this safe in practice.
func (c *Controller) DeleteItem(ctx context.Context, categoryID, itemID string, index int) error {
	if !c.guard.IsAdmin() {
		return ErrNotAdmin
	}
	if itemID == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	cat := c.findLocked(categoryID)
	if cat == nil || index < 0 || index >= len(cat.Items) {
		return fmt.Errorf("no menu item at index %d", index)
	}
	if err := c.gw.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	cat.Items = append(cat.Items[:index], cat.Items[index+1:]...)
	return nil
}

func (c *Controller) findLocked(categoryID string) *models.MenuCategory {
	for i := range c.categories {
		if c.categories[i].ID == categoryID {
			return &c.categories[i]
		}
	}
	return nil
}
