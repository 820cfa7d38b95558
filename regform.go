// Package regform is the top-level facade for the registration form engine:
// a static field schema compiled from an embedded OpenAPI document, a pure
// record validator, a keystroke input filter with self-expiring messages,
// and a sequential submission flow with confirmation dialogs.
package regform

import (
	"github.com/goliatone/go-regform/pkg/dialog"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/session"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Session aliases the form session type for convenience.
type Session = session.Session

// Outcome aliases the submit outcome type.
type Outcome = session.Outcome

// DialogConfig aliases the dialog configuration consumed by presenters.
type DialogConfig = dialog.Config

// Schema returns the compiled registration form model.
func Schema() (model.FormModel, error) {
	return schema.Registration()
}

// NewValidator builds a validator over the registration schema with the
// embedded message catalog.
func NewValidator() (*validation.Validator, error) {
	form, err := schema.Registration()
	if err != nil {
		return nil, err
	}
	catalog, err := schema.Messages()
	if err != nil {
		return nil, err
	}
	return validation.New(form, catalog)
}

// NewSession builds a registration session; see pkg/session for options.
func NewSession(options ...session.Option) (*Session, error) {
	return session.New(options...)
}

// Renderers builds a registry holding the built-in renderers, so callers can
// select a presentation by name.
func Renderers() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	return registry, nil
}
