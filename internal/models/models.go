package models

import "time"

// MenuItem is a single dish inside a menu category. ID is empty for items that
// have not yet round-tripped with the store.
type MenuItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"` // dietary markers: V, VG, GF
}

// MenuCategory is an ordered group of menu items. Title doubles as a natural
// key: the menu controller never creates two categories with the same title.
type MenuCategory struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	IconKey string     `json:"icon"`
	Items   []MenuItem `json:"items"`
}

// Message is one guestbook entry. Immutable after creation except for deletion.
type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp string    `json:"timestamp"` // display string derived from CreatedAt
}

// RSVP is a party attendance response. Written once, never read back by the
// client; the store owns it after submission.
type RSVP struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Attendance string    `json:"attendance"` // "yes" or "no"
	CreatedAt  time.Time `json:"created_at"`
}

// RSVPCommand is the message payload published to Kafka for queued RSVP
// ingestion.
type RSVPCommand struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Attendance  string    `json:"attendance"`
	RequestedAt time.Time `json:"requested_at"`
}

// TimeLeft is the countdown decomposition shown on the landing page.
type TimeLeft struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}
