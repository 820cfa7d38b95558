// Package inputfilter is the keystroke-level gatekeeper for the registration
// form. It decides, per field class, whether a key may reach the record, and
// surfaces rejections as transient messages that clear themselves after two
// seconds. It enforces character classes only; final validation stays with
// pkg/validation.
package inputfilter

import (
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-regform/pkg/model"
)

// Editing keys the numeric class lets through alongside digits.
const (
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
	KeyTab       = "Tab"
)

// Rejection messages. The live-typing digit cap is 10 for every numeric
// field, independent of the validator's final phone-number bound of 15.
const (
	MsgNoDigits   = "Numbers are not allowed in this field"
	MsgDigitsOnly = "Only numbers are allowed in this field"
	MsgDigitCap   = "Maximum 10 digits allowed"

	numericKeyCap = 10
)

// Decision reports the outcome of a single keystroke.
type Decision struct {
	Allowed bool
	Message string
}

// Filter routes keystrokes for the two constrained field classes and owns
// one transient-error store per class, keyed independently by field name.
type Filter struct {
	nameErrors    *TransientErrors
	numericErrors *TransientErrors
}

// New builds a filter with fresh transient stores.
func New() *Filter {
	return &Filter{
		nameErrors:    NewTransientErrors(),
		numericErrors: NewTransientErrors(),
	}
}

// WithScheduler swaps the timer factory on both stores (tests).
func (f *Filter) WithScheduler(after AfterFunc) *Filter {
	f.nameErrors.WithScheduler(after)
	f.numericErrors.WithScheduler(after)
	return f
}

// NameErrors exposes the transient store for name-class rejections.
func (f *Filter) NameErrors() *TransientErrors { return f.nameErrors }

// NumericErrors exposes the transient store for numeric-class rejections.
func (f *Filter) NumericErrors() *TransientErrors { return f.numericErrors }

// Press evaluates one keystroke against the field's class. current is the
// field's value before the keystroke; it matters only for the numeric digit
// cap. Rejections record a transient message for exactly that field.
func (f *Filter) Press(field model.Field, key string, current string) Decision {
	switch field.Class {
	case model.ClassName:
		return f.pressName(field.Name, key)
	case model.ClassNumeric:
		return f.pressNumeric(field.Name, key, current)
	default:
		return Decision{Allowed: true}
	}
}

func (f *Filter) pressName(field, key string) Decision {
	r, ok := keyRune(key)
	if ok && unicode.IsDigit(r) {
		f.nameErrors.Set(field, MsgNoDigits)
		return Decision{Message: MsgNoDigits}
	}
	return Decision{Allowed: true}
}

func (f *Filter) pressNumeric(field, key, current string) Decision {
	switch key {
	case KeyBackspace, KeyDelete, KeyTab:
		return Decision{Allowed: true}
	}

	r, ok := keyRune(key)
	if !ok || !unicode.IsDigit(r) {
		f.numericErrors.Set(field, MsgDigitsOnly)
		return Decision{Message: MsgDigitsOnly}
	}
	if utf8.RuneCountInString(current) >= numericKeyCap {
		f.numericErrors.Set(field, MsgDigitCap)
		return Decision{Message: MsgDigitCap}
	}
	return Decision{Allowed: true}
}

// FilterText runs a chunk of typed or pasted text through Press one rune at
// a time and returns what survives appended to current. Rejected runes raise
// their transient messages exactly as individual keystrokes would.
func (f *Filter) FilterText(field model.Field, current, text string) string {
	out := current
	for _, r := range text {
		if decision := f.Press(field, string(r), out); decision.Allowed {
			out += string(r)
		}
	}
	return out
}

// keyRune reports the printable rune behind a key, when there is one. Named
// keys like "Backspace" have none.
func keyRune(key string) (rune, bool) {
	if utf8.RuneCountInString(key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return r, true
}
