package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages. Messages keyed by a name the form does not declare become
// form-level so they are never silently dropped.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// SplitErrors normalises a field→message payload against the form's declared
// fields. Whitespace-only messages are discarded; form-level messages come
// out sorted for deterministic rendering.
func SplitErrors(form model.FormModel, payload map[string]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	declared := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		declared[field.Name] = struct{}{}
	}

	for name, message := range payload {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, ok := declared[name]; ok {
			if mapping.Fields == nil {
				mapping.Fields = make(map[string]string)
			}
			mapping.Fields[name] = trimmed
			continue
		}
		mapping.Form = append(mapping.Form, trimmed)
	}

	sort.Strings(mapping.Form)
	return mapping
}
