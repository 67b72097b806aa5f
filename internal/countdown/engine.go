// Package countdown computes the time remaining until the party: a fixed
// month/day/time whose year rolls forward once the date has passed.
package countdown

import (
	"context"
	"sync"
	"time"

	"party-site/internal/models"
	"party-site/pkg/logger"
)

// The party starts at noon on December 12.
const (
	targetMonth  = time.December
	targetDay    = 12
	targetHour   = 12
	targetMinute = 0
	targetSecond = 0
)

// Target returns the next occurrence of the party date relative to now, in
// now's location.
func Target(now time.Time) time.Time {
	t := time.Date(now.Year(), targetMonth, targetDay, targetHour, targetMinute, targetSecond, 0, now.Location())
	if now.After(t) {
		t = time.Date(now.Year()+1, targetMonth, targetDay, targetHour, targetMinute, targetSecond, 0, now.Location())
	}
	return t
}

// Remaining decomposes the time until the next target into days, hours,
// minutes and seconds. ok is false when the difference is not positive; the
// caller keeps its previous value in that case rather than showing a zero or
// negative countdown.
func Remaining(now time.Time) (models.TimeLeft, bool) {
	diff := Target(now).Sub(now)
	if diff <= 0 {
		return models.TimeLeft{}, false
	}
	total := int(diff / time.Second)
	return models.TimeLeft{
		Days:    total / 86400,
		Hours:   total / 3600 % 24,
		Minutes: total / 60 % 60,
		Seconds: total % 60,
	}, true
}

// Engine recomputes the countdown once per second and serves the latest
// snapshot. The only recurring timer in the system: started from main,
// stopped on shutdown.
type Engine struct {
	mu      sync.Mutex
	current models.TimeLeft
	now     func() time.Time
	stop    chan struct{}
	stopped sync.Once
}

// NewEngine returns an engine with an immediately computed first snapshot.
func NewEngine() *Engine {
	return newEngine(time.Now)
}

func newEngine(now func() time.Time) *Engine {
	e := &Engine{now: now, stop: make(chan struct{})}
	e.tick()
	return e
}

// Start runs the one-second tick loop until Stop is called or ctx is done.
func (e *Engine) Start(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	logger.Info(ctx, "Countdown engine started")
	for {
		select {
		case <-ticker.C:
			e.tick()
		case <-e.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels the tick loop. Idempotent.
func (e *Engine) Stop() {
	e.stopped.Do(func() { close(e.stop) })
}

// Snapshot returns the most recent positive countdown value. Across the
// target instant the snapshot freezes at the last positive value until the
// year rolls over on a later tick.
func (e *Engine) Snapshot() models.TimeLeft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

func (e *Engine) tick() {
	if left, ok := Remaining(e.now()); ok {
		e.mu.Lock()
		e.current = left
		e.mu.Unlock()
	}
}
