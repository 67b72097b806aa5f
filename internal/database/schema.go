package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"party-site/internal/models"
	"party-site/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS rsvps (
	id         TEXT PRIMARY KEY,
	full_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	attendance TEXT NOT NULL CHECK (attendance IN ('yes', 'no')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS menu_categories (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL UNIQUE,
	icon_key   TEXT NOT NULL,
	position   INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS menu_items (
	id          TEXT PRIMARY KEY,
	category_id TEXT NOT NULL REFERENCES menu_categories(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	tags        TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	author     TEXT NOT NULL,
	avatar     TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_menu_items_category ON menu_items (category_id, created_at);
`

// MigrateOrCreateSchema creates the tables if they do not exist and seeds the
// default menu and welcome messages when both are empty.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return fmt.Errorf("database not configured")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := seedMenu(ctx); err != nil {
		return err
	}
	return seedMessages(ctx)
}

type seedItem struct {
	name, description, tags string
}

type seedCategory struct {
	title, iconKey string
	items          []seedItem
}

// The opening menu for the lunch, shown until an admin edits it.
var defaultMenu = []seedCategory{
	{"Starters", "leaf", []seedItem{
		{"Winter Wonderland Salad", "Mixed greens, cranberries, candied pecans, and a light vinaigrette.", "VG,GF"},
		{"Creamy Tomato & Basil Soup", "A rich, hearty soup served with a crusty bread roll.", "V"},
	}},
	{"Main Courses", "utensils", []seedItem{
		{"Roast Turkey with all the Trimmings", "Served with roast potatoes, stuffing, pigs in blankets, and gravy.", ""},
		{"Honey-Glazed Salmon", "Pan-seared salmon fillet with an asparagus and new potato medley.", "GF"},
		{"Mushroom & Chestnut Wellington", "A festive vegan pastry served with roasted root vegetables.", "VG"},
	}},
	{"Desserts", "cake", []seedItem{
		{"Christmas Pudding", "Served with brandy butter.", "V"},
		{"White Chocolate Cheesecake", "With a winter berry coulis.", "V"},
	}},
	{"Beverages", "wine", []seedItem{
		{"Festive Non-Alcoholic Punch", "Cranberry, orange & spices.", ""},
		{"Assorted Juices & Soft Drinks", "Orange, Apple, Cola, Lemonade.", ""},
	}},
}

var welcomeMessages = []struct {
	author, content string
}{
	{"Elara Vance", "Merry Christmas everyone! Hope you all have a wonderful holiday season filled with joy and laughter. Can't wait to see you all at the lunch!"},
	{"Ben Carter", "Wishing everyone a very Merry Christmas! Looking forward to catching up with everyone. The menu looks amazing!"},
	{"Olivia Chen", "Happy holidays S203! May your days be merry and bright. See you all soon!"},
}

func seedMenu(ctx context.Context) error {
	db := DB(ctx)
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_categories`).Scan(&count); err != nil {
		return fmt.Errorf("count menu categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	for pos, cat := range defaultMenu {
		catID := uuid.New().String()
		if _, err := db.ExecContext(ctx,
			`INSERT INTO menu_categories (id, title, icon_key, position) VALUES ($1, $2, $3, $4)`,
			catID, cat.title, cat.iconKey, pos); err != nil {
			return fmt.Errorf("seed category %q: %w", cat.title, err)
		}
		for _, item := range cat.items {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO menu_items (id, category_id, name, description, tags) VALUES ($1, $2, $3, $4, $5)`,
				uuid.New().String(), catID, item.name, item.description, item.tags); err != nil {
				return fmt.Errorf("seed item %q: %w", item.name, err)
			}
		}
	}
	logger.Info(ctx, "Seeded default menu", "categories", len(defaultMenu))
	return nil
}

func seedMessages(ctx context.Context) error {
	db := DB(ctx)
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, m := range welcomeMessages {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO messages (id, author, avatar, content) VALUES ($1, $2, $3, $4)`,
			uuid.New().String(), m.author, models.AvatarURL(m.author), m.content); err != nil {
			return fmt.Errorf("seed message from %q: %w", m.author, err)
		}
	}
	logger.Info(ctx, "Seeded welcome messages", "messages", len(welcomeMessages))
	return nil
}
