// Package messages keeps the in-memory guestbook view in sync with the store,
// newest-first. Symmetric to the menu controller but single-level.
package messages

import (
	"context"
	"errors"
	"strings"
	"sync"

	"party-site/internal/auth"
	"party-site/internal/gateway"
	"party-site/internal/models"
)

// ErrNotAdmin is returned by Delete when no admin session is active.
var ErrNotAdmin = errors.New("admin login required")

// ErrEmptyFields is returned when a post is missing its author or content; no
// gateway call is made.
var ErrEmptyFields = errors.New("name and message are required")

// Controller orchestrates guestbook reads, public posts, and admin deletes.
type Controller struct {
	mu     sync.Mutex
	gw     gateway.Gateway
	guard  *auth.Guard
	list   []models.Message
	loaded bool
}

// NewController returns a controller with an empty view; call Load to
// populate it.
func NewController(gw gateway.Gateway, guard *auth.Guard) *Controller {
	return &Controller{gw: gw, guard: guard}
}

// Load replaces the local view with the store's messages, newest-first.
func (c *Controller) Load(ctx context.Context) error {
	msgs, err := c.gw.ListMessages(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.list = msgs
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// ensureLoadedLocked syncs the view from the store before the first mutation,
// so a fresh process behind a warm list cache works against the messages the
// store already has.
func (c *Controller) ensureLoadedLocked(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	msgs, err := c.gw.ListMessages(ctx)
	if err != nil {
		return err
	}
	c.list = msgs
	c.loaded = true
	return nil
}

// Messages returns a copy of the current view. Never nil, so an empty
// guestbook serializes as [] rather than null.
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.list))
	copy(out, c.list)
	return out
}

// Post inserts a message and prepends it to the view on success. Blank author
// or content (after trimming) makes no gateway call. When no avatar is
// supplied one is derived from the author name.
func (c *Controller) Post(ctx context.Context, author, content, avatar string) (models.Message, error) {
	author = strings.TrimSpace(author)
	content = strings.TrimSpace(content)
	if author == "" || content == "" {
		return models.Message{}, ErrEmptyFields
	}
	if avatar == "" {
		avatar = models.AvatarURL(author)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return models.Message{}, err
	}
	msg, err := c.gw.InsertMessage(ctx, author, avatar, content)
	if err != nil {
		return models.Message{}, err
	}
	c.list = append([]models.Message{msg}, c.list...)
	return msg, nil
}

// Delete removes the message with the given id. Admin-gated; removes the
// matching record from the view by identifier on success, and is a local
// no-op for an id not present.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if !c.guard.IsAdmin() {
		return ErrNotAdmin
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoadedLocked(ctx); err != nil {
		return err
	}
	if err := c.gw.DeleteMessage(ctx, id); err != nil {
		return err
	}
	for i, m := range c.list {
		if m.ID == id {
			c.list = append(c.list[:i], c.list[i+1:]...)
			break
		}
	}
	return nil
}
