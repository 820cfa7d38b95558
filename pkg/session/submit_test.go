package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-regform/pkg/dialog"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

// dialogRecorder captures every dialog the submission flow asks for.
type dialogRecorder struct {
	shown []dialog.Config
	err   error
}

func (r *dialogRecorder) Present(_ context.Context, cfg dialog.Config) error {
	r.shown = append(r.shown, cfg)
	return r.err
}

func instantSubmitter() Submitter {
	return SubmitterFunc(func(context.Context, map[string]any) error { return nil })
}

func fillValid(t *testing.T, sess *Session) {
	t.Helper()
	for name, value := range testsupport.ValidRecord() {
		if err := sess.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
}

func TestSubmit_InvalidRecordWarnsAndKeepsValues(t *testing.T) {
	recorder := &dialogRecorder{}
	sess := newSession(t, WithDialogs(recorder), WithSubmitter(instantSubmitter()))
	if err := sess.Set("firstName", "John"); err != nil {
		t.Fatal(err)
	}

	outcome, err := sess.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusInvalid {
		t.Fatalf("status: want %q, got %q", StatusInvalid, outcome.Status)
	}
	if outcome.FieldErrors["email"] == "" {
		t.Fatalf("expected inline errors, got %v", outcome.FieldErrors)
	}

	if len(recorder.shown) != 1 || recorder.shown[0].Kind != dialog.KindWarning {
		t.Fatalf("want one warning dialog, got %+v", recorder.shown)
	}
	if value, _ := sess.Value("firstName"); value != "John" {
		t.Fatalf("record must be retained on invalid, got %v", value)
	}
	if sess.FieldErrors()["email"] == "" {
		t.Fatal("session must keep the inline errors for rendering")
	}
	if sess.State() != StateIdle {
		t.Fatalf("state: want %q, got %q", StateIdle, sess.State())
	}
}

func TestSubmit_ValidRecordSucceedsAndResets(t *testing.T) {
	recorder := &dialogRecorder{}
	sess := newSession(t, WithDialogs(recorder), WithSubmitter(instantSubmitter()))
	fillValid(t, sess)

	outcome, err := sess.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusSucceeded {
		t.Fatalf("status: want %q, got %q", StatusSucceeded, outcome.Status)
	}
	if len(recorder.shown) != 1 || recorder.shown[0].Kind != dialog.KindSuccess {
		t.Fatalf("want one success dialog, got %+v", recorder.shown)
	}

	if value, _ := sess.Value("firstName"); value != "" {
		t.Errorf("record must reset on success, got %v", value)
	}
	if value, _ := sess.Value("acceptTerms"); value != false {
		t.Errorf("acceptTerms must reset to false, got %v", value)
	}
	if len(sess.FieldErrors()) != 0 {
		t.Errorf("inline errors must clear, got %v", sess.FieldErrors())
	}
}

func TestSubmit_FailureShowsErrorAndKeepsValues(t *testing.T) {
	boom := errors.New("backend down")
	recorder := &dialogRecorder{}
	sess := newSession(t,
		WithDialogs(recorder),
		WithSubmitter(SubmitterFunc(func(context.Context, map[string]any) error {
			return boom
		})),
	)
	fillValid(t, sess)

	outcome, err := sess.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusFailed {
		t.Fatalf("status: want %q, got %q", StatusFailed, outcome.Status)
	}
	if !errors.Is(outcome.Err, boom) {
		t.Fatalf("outcome error: want %v, got %v", boom, outcome.Err)
	}
	if len(recorder.shown) != 1 || recorder.shown[0].Kind != dialog.KindError {
		t.Fatalf("want one error dialog, got %+v", recorder.shown)
	}
	if value, _ := sess.Value("email"); value != "john@acme.com" {
		t.Fatalf("record must be retained on failure, got %v", value)
	}
	if sess.State() != StateIdle {
		t.Fatalf("state: want %q, got %q", StateIdle, sess.State())
	}
}

func TestSubmit_GuardsAgainstDoubleSubmit(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	sess := newSession(t,
		WithSubmitter(SubmitterFunc(func(ctx context.Context, _ map[string]any) error {
			close(started)
			select {
			case <-release:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})),
	)
	fillValid(t, sess)

	done := make(chan Outcome, 1)
	go func() {
		outcome, _ := sess.Submit(context.Background())
		done <- outcome
	}()

	<-started
	if sess.State() != StateSubmitting {
		t.Fatalf("state: want %q, got %q", StateSubmitting, sess.State())
	}
	if _, err := sess.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("want ErrSubmitInFlight, got %v", err)
	}

	close(release)
	outcome := <-done
	if outcome.Status != StatusSucceeded {
		t.Fatalf("first submit: want %q, got %q", StatusSucceeded, outcome.Status)
	}
	if sess.State() != StateIdle {
		t.Fatalf("state after completion: want %q, got %q", StateIdle, sess.State())
	}
}

func TestSubmit_DialogErrorIsReturnedWithOutcome(t *testing.T) {
	abort := errors.New("presenter aborted")
	recorder := &dialogRecorder{err: abort}
	sess := newSession(t, WithDialogs(recorder), WithSubmitter(instantSubmitter()))
	fillValid(t, sess)

	outcome, err := sess.Submit(context.Background())
	if !errors.Is(err, abort) {
		t.Fatalf("want presenter error, got %v", err)
	}
	if outcome.Status != StatusSucceeded {
		t.Fatalf("outcome must still report the transition, got %q", outcome.Status)
	}
}

func TestSimulated_HonoursContextCancellation(t *testing.T) {
	sub := NewSimulated(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sub.Submit(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestNewSimulated_DefaultsDelay(t *testing.T) {
	if sub := NewSimulated(0); sub.Delay != DefaultDelay {
		t.Fatalf("delay: want %v, got %v", DefaultDelay, sub.Delay)
	}
	if sub := NewSimulated(50 * time.Millisecond); sub.Delay != 50*time.Millisecond {
		t.Fatalf("explicit delay overridden: %v", sub.Delay)
	}
}
