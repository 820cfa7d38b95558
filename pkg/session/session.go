// Package session owns the mutable state of one registration form session:
// the record values, the inline validation errors, the keystroke filter
// stores, and the sequential submission state machine. All mutation goes
// through Session methods; there are no package-level globals.
package session

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-regform/pkg/dialog"
	"github.com/goliatone/go-regform/pkg/inputfilter"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/validation"
)

// State is the submission flow's current position. Validating and Submitting
// both count as in-flight for the double-submit guard.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// ErrUnknownField is returned when a value or keystroke targets a field the
// schema does not declare.
var ErrUnknownField = errors.New("session: unknown field")

// Session is a single form-filling session. Safe for concurrent use; in
// practice the only concurrent callers are the transient-error timers and
// the submission wait.
type Session struct {
	mu          sync.Mutex
	form        model.FormModel
	values      map[string]any
	fieldErrors map[string]string
	state       State

	validator *validation.Validator
	filter    *inputfilter.Filter
	dialogs   dialog.Presenter
	submitter Submitter
}

// Option configures a Session.
type Option func(*Session)

// WithForm replaces the registration schema with a caller-supplied model.
func WithForm(form model.FormModel) Option {
	return func(s *Session) { s.form = form }
}

// WithValidator injects a pre-built validator.
func WithValidator(v *validation.Validator) Option {
	return func(s *Session) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithFilter injects a pre-built input filter.
func WithFilter(f *inputfilter.Filter) Option {
	return func(s *Session) {
		if f != nil {
			s.filter = f
		}
	}
}

// WithDialogs sets the confirmation dialog collaborator.
func WithDialogs(p dialog.Presenter) Option {
	return func(s *Session) {
		if p != nil {
			s.dialogs = p
		}
	}
}

// WithSubmitter replaces the simulated round trip.
func WithSubmitter(sub Submitter) Option {
	return func(s *Session) {
		if sub != nil {
			s.submitter = sub
		}
	}
}

// New builds a session over the registration schema (or the form supplied
// via WithForm), seeded with all-default values.
func New(options ...Option) (*Session, error) {
	s := &Session{
		state:     StateIdle,
		filter:    inputfilter.New(),
		dialogs:   dialog.Nop(),
		submitter: NewSimulated(DefaultDelay),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if len(s.form.Fields) == 0 {
		form, err := schema.Registration()
		if err != nil {
			return nil, err
		}
		s.form = form
	}
	if s.validator == nil {
		catalog, err := schema.Messages()
		if err != nil {
			return nil, err
		}
		v, err := validation.New(s.form, catalog)
		if err != nil {
			return nil, err
		}
		s.validator = v
	}

	s.values = s.form.DefaultValues()
	return s, nil
}

// Form returns the schema this session runs over.
func (s *Session) Form() model.FormModel {
	return s.form
}

// State reports the submission flow position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Values snapshots the current record.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.values)
}

// Value reads one field's current value.
func (s *Session) Value(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[name]
	return value, ok
}

// Set writes a field value directly. This is the binding path for selects
// and the terms checkbox; keystroke-constrained fields should go through
// Press or TypeText so the filter sees every character.
func (s *Session) Set(name string, value any) error {
	if _, ok := s.form.Field(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return nil
}

// Press routes one keystroke through the input filter and applies it to the
// field's stored value: allowed printable keys append, Backspace removes the
// last rune, Delete and Tab leave the value alone. Rejected keys never reach
// the record.
func (s *Session) Press(name, key string) (inputfilter.Decision, error) {
	field, ok := s.form.Field(name)
	if !ok {
		return inputfilter.Decision{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.values[name].(string)
	decision := s.filter.Press(field, key, current)
	if !decision.Allowed {
		return decision, nil
	}

	switch key {
	case inputfilter.KeyBackspace:
		if current != "" {
			runes := []rune(current)
			s.values[name] = string(runes[:len(runes)-1])
		}
	case inputfilter.KeyDelete, inputfilter.KeyTab:
		// editing keys that do not change the tail of the value
	default:
		// Named keys ("Enter", "Escape", ...) carry no printable rune and
		// must never be appended literally.
		if utf8.RuneCountInString(key) == 1 {
			s.values[name] = current + key
		}
	}
	return decision, nil
}

// TypeText feeds a chunk of text through the filter rune by rune and stores
// whatever survives. Typing "A1b2" into firstName leaves "Ab" behind.
func (s *Session) TypeText(name, text string) error {
	field, ok := s.form.Field(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, _ := s.values[name].(string)
	s.values[name] = s.filter.FilterText(field, current, text)
	return nil
}

// FieldErrors snapshots the inline messages from the last submit attempt.
func (s *Session) FieldErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneStrings(s.fieldErrors)
}

// Filter exposes the keystroke filter (and through it the transient stores)
// so presenters can render live rejection messages.
func (s *Session) Filter() *inputfilter.Filter {
	return s.filter
}

// TransientErrors merges both filter classes into one field→message view for
// renderers that show a single inline slot per field.
func (s *Session) TransientErrors() map[string]string {
	out := s.filter.NameErrors().Messages()
	for field, message := range s.filter.NumericErrors().Messages() {
		out[field] = message
	}
	return out
}

// Reset returns the record to its all-default state and clears inline
// errors. Transient messages are left to expire on their own.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = s.form.DefaultValues()
	s.fieldErrors = nil
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}

func cloneStrings(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
