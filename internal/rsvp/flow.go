// Package rsvp implements the one-shot attendance submission flow:
// Editing -> Submitting -> Submitted, with a failed submit returning to
// Editing with the entered values preserved.
package rsvp

import (
	"context"
	"errors"
	"strings"
	"sync"

	"party-site/internal/gateway"
	"party-site/internal/models"
)

// State is the flow's current phase.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
)

// ErrIncomplete is returned when any of the three fields is missing; no
// gateway call is made and the form stays editable.
var ErrIncomplete = errors.New("please complete all fields before submitting")

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("a submission is already in progress")

// Form holds the entered values. Attendance is "yes" or "no".
type Form struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Attendance string `json:"attendance"`
}

// Flow is the submission state machine. A successful submit clears the form
// and lands in Submitted; Reset returns to a blank Editing form for another
// response.
type Flow struct {
	mu    sync.Mutex
	gw    gateway.Gateway
	state State
	form  Form
}

// NewFlow returns a flow in Editing with a blank form.
func NewFlow(gw gateway.Gateway) *Flow {
	return &Flow{gw: gw, state: StateEditing}
}

// State returns the current phase.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Form returns the currently entered values.
func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// Submit validates and sends the form. Validation failures never reach the
// gateway. A gateway failure keeps the entered values and stays in Editing so
// the user can re-trigger.
func (f *Flow) Submit(ctx context.Context, form Form) error {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	if form.FullName == "" || form.Email == "" || (form.Attendance != "yes" && form.Attendance != "no") {
		f.mu.Lock()
		f.form = form
		f.mu.Unlock()
		return ErrIncomplete
	}

	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrBusy
	}
	f.state = StateSubmitting
	f.form = form
	f.mu.Unlock()

	err := f.gw.InsertRSVP(ctx, models.RSVP{
		FullName:   form.FullName,
		Email:      form.Email,
		Attendance: form.Attendance,
	})

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateEditing
		return err
	}
	f.state = StateSubmitted
	f.form = Form{}
	return nil
}

// Reset returns to Editing with a blank form ("submit another response").
func (f *Flow) Reset() {
	f.mu.Lock()
	f.state = StateEditing
	f.form = Form{}
	f.mu.Unlock()
}
