// Package validation evaluates a candidate registration record against the
// compiled field schema. Validate is a pure function of its input: it mutates
// nothing and reports one message per failing field.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/schema"
)

// emailPattern matches the pragmatic address syntax used across the form;
// full RFC 5322 parsing is out of scope.
const emailPattern = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`

var emailRe = regexp.MustCompile(emailPattern)

// fieldRules is the compiled form of a field's declared constraints. Within a
// field the checks run in priority order: required, then pattern/email, then
// length bounds. The first failing check wins.
type fieldRules struct {
	label    string
	boolean  bool
	required bool
	accepted bool
	pattern  *regexp.Regexp
	email    bool
	minLen   *int
	maxLen   *int
	params   map[string]map[string]string
}

// Validator checks records against a form model. Construct once, reuse for
// every submit; it is safe for concurrent use after New returns.
type Validator struct {
	order   []string
	rules   map[string]fieldRules
	catalog *schema.Catalog
}

// New compiles the form's validation rules. Invalid pattern expressions are
// construction errors, not runtime failures.
func New(form model.FormModel, catalog *schema.Catalog) (*Validator, error) {
	v := &Validator{
		order:   form.FieldNames(),
		rules:   make(map[string]fieldRules, len(form.Fields)),
		catalog: catalog,
	}

	for _, field := range form.Fields {
		compiled := fieldRules{
			label:    field.Label,
			boolean:  field.Type == model.FieldTypeBoolean,
			required: field.Required,
			params:   make(map[string]map[string]string),
		}
		for _, rule := range field.Validations {
			compiled.params[rule.Kind] = rule.Params
			switch rule.Kind {
			case model.ValidationRulePattern:
				expr := rule.Params["pattern"]
				re, err := regexp.Compile(expr)
				if err != nil {
					return nil, fmt.Errorf("validation: field %q: compile pattern %q: %w", field.Name, expr, err)
				}
				compiled.pattern = re
			case model.ValidationRuleEmail:
				compiled.email = true
			case model.ValidationRuleMinLength:
				if value, ok := parseInt(rule.Params["value"]); ok {
					compiled.minLen = &value
				}
			case model.ValidationRuleMaxLength:
				if value, ok := parseInt(rule.Params["value"]); ok {
					compiled.maxLen = &value
				}
			case model.ValidationRuleAccepted:
				compiled.accepted = true
			}
		}
		v.rules[field.Name] = compiled
	}
	return v, nil
}

// Validate evaluates every field independently and returns a field→message
// mapping holding the first failing constraint per field. Fields that pass
// are absent. An empty map means the record is submittable.
func (v *Validator) Validate(values map[string]any) map[string]string {
	out := make(map[string]string)
	for _, name := range v.order {
		if message, ok := v.ValidateField(name, values[name]); !ok {
			out[name] = message
		}
	}
	return out
}

// ValidateField checks a single field value. The second return is true when
// the value passes. Unknown field names pass; the schema is the source of
// truth for what gets checked.
func (v *Validator) ValidateField(name string, value any) (string, bool) {
	rules, ok := v.rules[name]
	if !ok {
		return "", true
	}

	if rules.boolean {
		checked, isBool := value.(bool)
		if rules.accepted && (!isBool || !checked) {
			return v.message(name, model.ValidationRuleAccepted, rules), false
		}
		if rules.required && !isBool {
			return v.message(name, "required", rules), false
		}
		return "", true
	}

	// Malformed types degrade to the empty string so they fail the
	// required/pattern checks instead of raising a system error.
	text, _ := value.(string)

	if strings.TrimSpace(text) == "" {
		if rules.required {
			return v.message(name, "required", rules), false
		}
		return "", true
	}
	if rules.pattern != nil && !rules.pattern.MatchString(text) {
		return v.message(name, model.ValidationRulePattern, rules), false
	}
	if rules.email && !emailRe.MatchString(text) {
		return v.message(name, model.ValidationRuleEmail, rules), false
	}
	length := utf8.RuneCountInString(text)
	if rules.minLen != nil && length < *rules.minLen {
		return v.message(name, model.ValidationRuleMinLength, rules), false
	}
	if rules.maxLen != nil && length > *rules.maxLen {
		return v.message(name, model.ValidationRuleMaxLength, rules), false
	}
	return "", true
}

func (v *Validator) message(field, kind string, rules fieldRules) string {
	return v.catalog.Message(field, kind, rules.label, rules.params[kind])
}

func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	value := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
		value = value*10 + int(r-'0')
	}
	return value, true
}
