package session

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-regform/pkg/dialog"
)

// DefaultDelay is the simulated submission round-trip time.
const DefaultDelay = 2 * time.Second

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission is still validating or waiting on the round trip.
var ErrSubmitInFlight = errors.New("session: submission already in flight")

// Status is the terminal outcome of one submit attempt.
type Status string

const (
	StatusInvalid   Status = "invalid"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Outcome reports how a submit attempt ended. FieldErrors is populated for
// StatusInvalid; Err for StatusFailed.
type Outcome struct {
	Status      Status
	FieldErrors map[string]string
	Err         error
}

// Submitter performs the (simulated) backend round trip.
type Submitter interface {
	Submit(ctx context.Context, values map[string]any) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, values map[string]any) error

func (f SubmitterFunc) Submit(ctx context.Context, values map[string]any) error {
	return f(ctx, values)
}

// Simulated waits a fixed delay and succeeds. The failure branch of the
// submission flow is unreachable through it; tests exercise that branch
// through a failing SubmitterFunc.
type Simulated struct {
	Delay time.Duration
}

// NewSimulated builds the default submitter. Non-positive delays fall back
// to DefaultDelay.
func NewSimulated(delay time.Duration) Simulated {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return Simulated{Delay: delay}
}

func (s Simulated) Submit(ctx context.Context, _ map[string]any) error {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit runs the submission flow: validate, then either report the
// aggregate warning (record kept) or perform the round trip and report
// success (record reset) or failure (record kept). A second Submit while one
// is in flight returns ErrSubmitInFlight without touching any state.
//
// Dialog presentation errors are returned alongside the outcome so terminal
// presenters can propagate an abort; the state transition itself has already
// completed by then.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return Outcome{}, ErrSubmitInFlight
	}
	s.state = StateValidating
	snapshot := cloneValues(s.values)
	s.mu.Unlock()

	fieldErrors := s.validator.Validate(snapshot)
	if len(fieldErrors) > 0 {
		s.mu.Lock()
		s.fieldErrors = cloneStrings(fieldErrors)
		s.state = StateIdle
		s.mu.Unlock()

		outcome := Outcome{Status: StatusInvalid, FieldErrors: fieldErrors}
		return outcome, s.dialogs.Present(ctx, dialog.ValidationWarning())
	}

	s.mu.Lock()
	s.fieldErrors = nil
	s.state = StateSubmitting
	s.mu.Unlock()

	if err := s.submitter.Submit(ctx, snapshot); err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()

		outcome := Outcome{Status: StatusFailed, Err: err}
		return outcome, s.dialogs.Present(ctx, dialog.SubmissionError())
	}

	s.mu.Lock()
	s.values = s.form.DefaultValues()
	s.state = StateIdle
	s.mu.Unlock()

	return Outcome{Status: StatusSucceeded}, s.dialogs.Present(ctx, dialog.SubmissionSuccess())
}
