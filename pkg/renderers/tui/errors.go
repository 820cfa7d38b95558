package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSubmissionFailed wraps a failed submission round trip after the
	// error dialog has been shown.
	ErrSubmissionFailed = errors.New("tui: submission failed")
)
