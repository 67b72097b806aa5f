package gateway

import (
	"context"
	"errors"
	"testing"

	"party-site/internal/models"
)

type fakePublisher struct {
	published []*models.RSVPCommand
	fail      bool
}

func (f *fakePublisher) PublishRSVP(_ context.Context, cmd *models.RSVPCommand) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.published = append(f.published, cmd)
	return nil
}

func TestQueuedInsertRSVP(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a command instead of writing through", func(t *testing.T) {
		pub := &fakePublisher{}
		q := NewQueued(Unconfigured{}, pub)
		err := q.InsertRSVP(ctx, models.RSVP{FullName: "Ada", Email: "a@b.c", Attendance: "yes"})
		if err != nil {
			t.Fatalf("InsertRSVP() = %v", err)
		}
		if len(pub.published) != 1 {
			t.Fatalf("published = %d, want 1", len(pub.published))
		}
		cmd := pub.published[0]
		if cmd.ID == "" {
			t.Error("command has no id")
		}
		if cmd.FullName != "Ada" || cmd.Attendance != "yes" {
			t.Errorf("command = %+v", cmd)
		}
	})

	t.Run("publish failure propagates", func(t *testing.T) {
		q := NewQueued(Unconfigured{}, &fakePublisher{fail: true})
		if err := q.InsertRSVP(ctx, models.RSVP{FullName: "Ada", Email: "a@b.c", Attendance: "no"}); err == nil {
			t.Error("InsertRSVP() succeeded with a failing publisher")
		}
	})

	t.Run("other operations pass through to the wrapped gateway", func(t *testing.T) {
		q := NewQueued(Unconfigured{}, &fakePublisher{})
		if _, err := q.ListMenu(ctx); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("ListMenu() = %v, want the wrapped gateway's error", err)
		}
	})
}
