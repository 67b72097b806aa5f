package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"party-site/internal/models"
	"party-site/pkg/logger"
)

// Postgres is the live gateway backed by the shared connection pool.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// ListMenu returns all categories in position order, items nested in creation
// order.
func (p *Postgres) ListMenu(ctx context.Context) ([]models.MenuCategory, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, title, icon_key FROM menu_categories ORDER BY position, created_at`)
	if err != nil {
		logger.Error(ctx, "Gateway ListMenu categories failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	var cats []models.MenuCategory
	index := map[string]int{}
	for rows.Next() {
		var c models.MenuCategory
		if err := rows.Scan(&c.ID, &c.Title, &c.IconKey); err != nil {
			return nil, err
		}
		index[c.ID] = len(cats)
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := p.db.QueryContext(ctx,
		`SELECT id, category_id, name, description, tags FROM menu_items ORDER BY created_at`)
	if err != nil {
		logger.Error(ctx, "Gateway ListMenu items failed", "error", err)
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var (
			item  models.MenuItem
			catID string
			tags  string
		)
		if err := itemRows.Scan(&item.ID, &catID, &item.Name, &item.Description, &tags); err != nil {
			return nil, err
		}
		item.Tags = splitTags(tags)
		if i, ok := index[catID]; ok {
			cats[i].Items = append(cats[i].Items, item)
		}
	}
	return cats, itemRows.Err()
}

// InsertCategory creates a category with a fresh id and returns it.
func (p *Postgres) InsertCategory(ctx context.Context, title, iconKey string) (models.MenuCategory, error) {
	cat := models.MenuCategory{ID: uuid.New().String(), Title: title, IconKey: iconKey}
	var position int
	if err := p.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM menu_categories`).Scan(&position); err != nil {
		logger.Error(ctx, "Gateway InsertCategory position lookup failed", "error", err)
		return models.MenuCategory{}, err
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO menu_categories (id, title, icon_key, position) VALUES ($1, $2, $3, $4)`,
		cat.ID, cat.Title, cat.IconKey, position)
	if err != nil {
		logger.Error(ctx, "Gateway InsertCategory failed", "error", err, "title", title)
		return models.MenuCategory{}, err
	}
	return cat, nil
}

// InsertItem creates an item under the given category and returns it with its
// server-assigned id.
func (p *Postgres) InsertItem(ctx context.Context, categoryID string, item models.MenuItem) (models.MenuItem, error) {
	item.ID = uuid.New().String()
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO menu_items (id, category_id, name, description, tags) VALUES ($1, $2, $3, $4, $5)`,
		item.ID, categoryID, item.Name, item.Description, strings.Join(item.Tags, ","))
	if err != nil {
		logger.Error(ctx, "Gateway InsertItem failed", "error", err, "category_id", categoryID)
		return models.MenuItem{}, err
	}
	return item, nil
}

// UpdateItem replaces a single field of an item.
func (p *Postgres) UpdateItem(ctx context.Context, itemID string, field ItemField, value string) error {
	var query string
	switch field {
	case FieldName:
		query = `UPDATE menu_items SET name = $1 WHERE id = $2`
	case FieldDescription:
		query = `UPDATE menu_items SET description = $1 WHERE id = $2`
	default:
		return fmt.Errorf("unknown menu item field %q", field)
	}
	if _, err := p.db.ExecContext(ctx, query, value, itemID); err != nil {
		logger.Error(ctx, "Gateway UpdateItem failed", "error", err, "id", itemID)
		return err
	}
	return nil
}

// DeleteItem removes an item by id.
func (p *Postgres) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, itemID); err != nil {
		logger.Error(ctx, "Gateway DeleteItem failed", "error", err, "id", itemID)
		return err
	}
	return nil
}

// ListMessages returns all messages newest-first.
func (p *Postgres) ListMessages(ctx context.Context) ([]models.Message, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, author, avatar, content, created_at FROM messages ORDER BY created_at DESC`)
	if err != nil {
		logger.Error(ctx, "Gateway ListMessages failed", "error", err)
		return nil, err
	}
	defer rows.Close()
	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Author, &m.Avatar, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Timestamp = m.CreatedAt.Format("Jan 2, 2006 3:04 PM")
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// InsertMessage creates a message and returns the materialized record.
func (p *Postgres) InsertMessage(ctx context.Context, author, avatar, content string) (models.Message, error) {
	m := models.Message{
		ID:        uuid.New().String(),
		Author:    author,
		Avatar:    avatar,
		Content:   content,
		CreatedAt: time.Now(),
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO messages (id, author, avatar, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.Author, m.Avatar, m.Content, m.CreatedAt)
	if err != nil {
		logger.Error(ctx, "Gateway InsertMessage failed", "error", err)
		return models.Message{}, err
	}
	m.Timestamp = m.CreatedAt.Format("Jan 2, 2006 3:04 PM")
	return m, nil
}

// DeleteMessage removes a message by id.
func (p *Postgres) DeleteMessage(ctx context.Context, id string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id); err != nil {
		logger.Error(ctx, "Gateway DeleteMessage failed", "error", err, "id", id)
		return err
	}
	return nil
}

// InsertRSVP writes an attendance response.
func (p *Postgres) InsertRSVP(ctx context.Context, r models.RSVP) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO rsvps (id, full_name, email, attendance, created_at) VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.FullName, r.Email, r.Attendance, r.CreatedAt)
	if err != nil {
		logger.Error(ctx, "Gateway InsertRSVP failed", "error", err)
		return err
	}
	return nil
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
