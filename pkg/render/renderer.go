// Package render defines the contract between the form engine and its
// presentation layers, plus helpers for splitting error payloads into
// field-level and form-level messages.
package render

import (
	"context"

	"github.com/goliatone/go-regform/pkg/model"
)

// Renderer converts a form model plus per-request state into a byte
// representation (HTML, terminal transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}

// RenderOptions carry per-request data renderers fold into their output
// without mutating the form model.
type RenderOptions struct {
	// Values pre-populates rendered controls, keyed by field name.
	Values map[string]any
	// Errors surfaces validator feedback keyed by field name; renderers show
	// these inline beside each control.
	Errors map[string]string
	// Transient surfaces live keystroke-rejection messages keyed by field
	// name. They sit in the same inline slot as Errors but expire on their
	// own; renderers should not persist them.
	Transient map[string]string
}
