// Package dialog defines the confirmation-dialog collaborator the submission
// flow talks to. The engine only decides *which* dialog to show; presentation
// (modal, terminal prompt, test recorder) is the Presenter's problem.
package dialog

import "context"

// Kind names the three call sites the submission flow has.
type Kind string

const (
	KindWarning Kind = "warning"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Config describes one dialog: text plus the presentational hooks (icon
// class, confirm-button class) a styled presenter can use.
type Config struct {
	Kind         Kind
	Title        string
	Body         string
	Icon         string
	ConfirmClass string
}

// Presenter shows a dialog and blocks until the user dismisses it.
type Presenter interface {
	Present(ctx context.Context, cfg Config) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(ctx context.Context, cfg Config) error

func (f PresenterFunc) Present(ctx context.Context, cfg Config) error { return f(ctx, cfg) }

// Nop discards every dialog. Useful for headless runs.
func Nop() Presenter {
	return PresenterFunc(func(context.Context, Config) error { return nil })
}

// ValidationWarning is the aggregate dialog shown when submit finds one or
// more invalid fields. Per-field detail stays inline; this one summarises.
func ValidationWarning() Config {
	return Config{
		Kind:         KindWarning,
		Title:        "Validation failed",
		Body:         "Please check the required fields and try again.",
		Icon:         "icon-warning",
		ConfirmClass: "btn-warning",
	}
}

// SubmissionSuccess confirms a completed round trip.
func SubmissionSuccess() Config {
	return Config{
		Kind:         KindSuccess,
		Title:        "Registration submitted",
		Body:         "Thank you, your registration has been received.",
		Icon:         "icon-success",
		ConfirmClass: "btn-success",
	}
}

// SubmissionError reports a failed round trip. The record is retained so the
// user can resubmit.
func SubmissionError() Config {
	return Config{
		Kind:         KindError,
		Title:        "Submission failed",
		Body:         "Something went wrong while submitting the form. Please try again.",
		Icon:         "icon-error",
		ConfirmClass: "btn-danger",
	}
}
