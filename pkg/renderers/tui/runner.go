// Package tui drives a registration session over a terminal: one prompt per
// schema field, keystroke filtering on the constrained fields, then the
// submit round trip with its confirmation dialogs. Prompt IO is abstracted
// behind PromptDriver so the flow is testable without a terminal.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/session"
)

// OutputFormat controls how the submitted record is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits the submitted record as JSON.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPretty emits one name=value line per field.
	OutputFormatPretty OutputFormat = "pretty"
)

// Option configures the runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver (default: survey).
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Runner) {
		if format != "" {
			r.output = format
		}
	}
}

// Runner walks a session through prompt, submit, and outcome reporting.
type Runner struct {
	driver  PromptDriver
	session *session.Session
	output  OutputFormat
}

// New builds a runner over the given session.
func New(sess *session.Session, options ...Option) (*Runner, error) {
	if sess == nil {
		return nil, errors.New("tui: session is required")
	}
	r := &Runner{
		driver:  NewSurveyDriver(),
		session: sess,
		output:  OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Driver exposes the prompt driver so callers can share it with the dialog
// presenter.
func (r *Runner) Driver() PromptDriver {
	return r.driver
}

// Run prompts every field, submits, and loops over the invalid fields until
// the record goes through or the user aborts. It returns the serialized
// record that was submitted.
func (r *Runner) Run(ctx context.Context) ([]byte, error) {
	form := r.session.Form()

	for _, field := range form.Fields {
		if err := r.promptField(ctx, field); err != nil {
			return nil, err
		}
	}

	for {
		// Submit resets the record on success; keep the submitted state.
		snapshot := r.session.Values()
		outcome, err := r.session.Submit(ctx)
		if err != nil {
			return nil, err
		}

		switch outcome.Status {
		case session.StatusSucceeded:
			return r.serialize(form, snapshot)
		case session.StatusFailed:
			return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, outcome.Err)
		case session.StatusInvalid:
			for _, field := range form.Fields {
				message, ok := outcome.FieldErrors[field.Name]
				if !ok {
					continue
				}
				if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, message)); err != nil {
					return nil, err
				}
			}
			for _, field := range form.Fields {
				if _, ok := outcome.FieldErrors[field.Name]; !ok {
					continue
				}
				if err := r.promptField(ctx, field); err != nil {
					return nil, err
				}
			}
		default:
			return nil, fmt.Errorf("tui: unexpected submit outcome %q", outcome.Status)
		}
	}
}

func (r *Runner) promptField(ctx context.Context, field model.Field) error {
	switch {
	case field.Type == model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field)
	case len(field.Enum) > 0:
		return r.promptEnum(ctx, field)
	case field.Format == "textarea":
		return r.promptTextArea(ctx, field)
	default:
		return r.promptText(ctx, field)
	}
}

func (r *Runner) promptBoolean(ctx context.Context, field model.Field) error {
	current, _ := r.session.Value(field.Name)
	checked, _ := current.(bool)
	response, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: field.Label,
		Default: checked,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	return r.session.Set(field.Name, response)
}

func (r *Runner) promptEnum(ctx context.Context, field model.Field) error {
	options := make([]string, 0, len(field.Enum))
	for _, raw := range field.Enum {
		options = append(options, fmt.Sprint(raw))
	}

	defaultIdx := -1
	if current, ok := r.session.Value(field.Name); ok {
		if text, ok := current.(string); ok {
			defaultIdx = indexOf(options, text)
		}
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         field.Description,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", field.Name)); err != nil {
				return err
			}
			continue
		}
		return r.session.Set(field.Name, options[idx])
	}
}

func (r *Runner) promptTextArea(ctx context.Context, field model.Field) error {
	current, _ := r.session.Value(field.Name)
	text, _ := current.(string)
	response, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: field.Label,
		Default: text,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	return r.session.Set(field.Name, response)
}

// promptText collects free text. Constrained fields replay the response
// through the session's keystroke filter, so disallowed characters never
// reach the record and the filter's rejection message is surfaced.
func (r *Runner) promptText(ctx context.Context, field model.Field) error {
	current, _ := r.session.Value(field.Name)
	text, _ := current.(string)
	response, err := r.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: text,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}

	if field.Class == model.ClassFree {
		return r.session.Set(field.Name, response)
	}

	if err := r.session.Set(field.Name, ""); err != nil {
		return err
	}
	if err := r.session.TypeText(field.Name, response); err != nil {
		return err
	}
	if message, ok := transientFor(r.session, field); ok {
		kept, _ := r.session.Value(field.Name)
		return r.driver.Info(ctx, fmt.Sprintf("%s (kept %q)", message, kept))
	}
	return nil
}

func transientFor(sess *session.Session, field model.Field) (string, bool) {
	switch field.Class {
	case model.ClassName:
		return sess.Filter().NameErrors().Get(field.Name)
	case model.ClassNumeric:
		return sess.Filter().NumericErrors().Get(field.Name)
	default:
		return "", false
	}
}

func (r *Runner) serialize(form model.FormModel, values map[string]any) ([]byte, error) {
	switch r.output {
	case OutputFormatPretty:
		var b strings.Builder
		for _, field := range form.Fields {
			fmt.Fprintf(&b, "%s=%v\n", field.Name, values[field.Name])
		}
		return []byte(b.String()), nil
	default:
		return json.Marshal(values)
	}
}
