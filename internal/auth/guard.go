// Package auth holds the admin session guard: a process-lifetime boolean that
// gates mutation affordances. It is not a data-layer authorization boundary;
// the store enforces (or does not enforce) its own rules.
package auth

import (
	"errors"
	"sync"
)

// ErrNotConfigured is returned by Login when either admin secret is unset.
var ErrNotConfigured = errors.New("admin credentials not configured (set ADMIN_USER and ADMIN_PASS)")

// ErrInvalidCredentials is returned by Login on a mismatch.
var ErrInvalidCredentials = errors.New("invalid admin username or password")

// Config carries the two admin secrets. Constructed explicitly and passed to
// NewGuard; never read ambiently.
type Config struct {
	User string
	Pass string
}

// Guard is the in-memory admin session. Never persisted; a process restart
// always starts logged out. There is no expiry and no token.
type Guard struct {
	mu    sync.Mutex
	cfg   Config
	admin bool
}

// NewGuard returns a logged-out guard for the given secrets.
func NewGuard(cfg Config) *Guard {
	return &Guard{cfg: cfg}
}

// Configured reports whether both secrets are set.
func (g *Guard) Configured() bool {
	return g.cfg.User != "" && g.cfg.Pass != ""
}

// Login promotes the session to admin iff both values exactly equal the
// configured secrets (case-sensitive, no hashing). State is unchanged on
// failure.
func (g *Guard) Login(user, pass string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.Configured() {
		return ErrNotConfigured
	}
	if user != g.cfg.User || pass != g.cfg.Pass {
		return ErrInvalidCredentials
	}
	g.admin = true
	return nil
}

// Logout demotes the session. Idempotent.
func (g *Guard) Logout() {
	g.mu.Lock()
	g.admin = false
	g.mu.Unlock()
}

// IsAdmin reports the current session state.
func (g *Guard) IsAdmin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.admin
}
