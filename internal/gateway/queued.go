package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"party-site/internal/models"
)

// RSVPPublisher pushes an RSVP command onto the ingestion queue.
type RSVPPublisher interface {
	PublishRSVP(ctx context.Context, cmd *models.RSVPCommand) error
}

// Queued wraps a gateway and routes RSVP inserts through the queue instead of
// writing directly; the worker applies them via the wrapped gateway. Safe for
// RSVPs only: they are insert-only and never read back by this client, so the
// deferred write is not observable. All other operations pass through.
type Queued struct {
	Gateway
	pub RSVPPublisher
}

// NewQueued decorates gw with queued RSVP ingestion.
func NewQueued(gw Gateway, pub RSVPPublisher) *Queued {
	return &Queued{Gateway: gw, pub: pub}
}

// InsertRSVP publishes the submission as a command. A successful publish
// counts as the one insert call of the submission flow.
func (q *Queued) InsertRSVP(ctx context.Context, r models.RSVP) error {
	cmd := &models.RSVPCommand{
		ID:          r.ID,
		FullName:    r.FullName,
		Email:       r.Email,
		Attendance:  r.Attendance,
		RequestedAt: time.Now(),
	}
	if cmd.ID == "" {
		cmd.ID = uuid.New().String()
	}
	return q.pub.PublishRSVP(ctx, cmd)
}
