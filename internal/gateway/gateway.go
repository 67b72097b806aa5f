// Package gateway is the façade over the remote data store for the three
// content resources: RSVPs, menu categories with their items, and guestbook
// messages. Every call is a single round trip with no retry; the controllers
// own the decision of when to re-trigger a failed call.
package gateway

import (
	"context"
	"errors"

	"party-site/internal/models"
)

// ErrNotConfigured is returned synchronously, without any I/O, by every
// operation when no backend is configured. Callers treat it exactly like a
// network failure: surface the message, change no local state.
var ErrNotConfigured = errors.New("data backend not configured (set DATABASE_URL)")

// ItemField names a mutable field of a menu item.
type ItemField string

const (
	FieldName        ItemField = "name"
	FieldDescription ItemField = "description"
)

// Gateway exposes list/insert/update/delete per resource. Identifiers and
// creation timestamps are assigned on the store side of this boundary.
type Gateway interface {
	// Menu. ListMenu returns categories in stable position order with items
	// nested in creation order.
	ListMenu(ctx context.Context) ([]models.MenuCategory, error)
	InsertCategory(ctx context.Context, title, iconKey string) (models.MenuCategory, error)
	InsertItem(ctx context.Context, categoryID string, item models.MenuItem) (models.MenuItem, error)
	UpdateItem(ctx context.Context, itemID string, field ItemField, value string) error
	DeleteItem(ctx context.Context, itemID string) error

	// Messages, newest-first.
	ListMessages(ctx context.Context) ([]models.Message, error)
	InsertMessage(ctx context.Context, author, avatar, content string) (models.Message, error)
	DeleteMessage(ctx context.Context, id string) error

	// RSVPs are insert-only from this client.
	InsertRSVP(ctx context.Context, r models.RSVP) error
}
