package gateway

import (
	"context"

	"party-site/internal/models"
)

// Unconfigured is the gateway used when no backend is reachable. Every
// operation fails immediately with ErrNotConfigured and performs no I/O.
type Unconfigured struct{}

func (Unconfigured) ListMenu(context.Context) ([]models.MenuCategory, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) InsertCategory(context.Context, string, string) (models.MenuCategory, error) {
	return models.MenuCategory{}, ErrNotConfigured
}

func (Unconfigured) InsertItem(context.Context, string, models.MenuItem) (models.MenuItem, error) {
	return models.MenuItem{}, ErrNotConfigured
}

func (Unconfigured) UpdateItem(context.Context, string, ItemField, string) error {
	return ErrNotConfigured
}

func (Unconfigured) DeleteItem(context.Context, string) error {
	return ErrNotConfigured
}

func (Unconfigured) ListMessages(context.Context) ([]models.Message, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) InsertMessage(context.Context, string, string, string) (models.Message, error) {
	return models.Message{}, ErrNotConfigured
}

func (Unconfigured) DeleteMessage(context.Context, string) error {
	return ErrNotConfigured
}

func (Unconfigured) InsertRSVP(context.Context, models.RSVP) error {
	return ErrNotConfigured
}
