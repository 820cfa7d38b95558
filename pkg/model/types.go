package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
)

// FieldClass groups fields by the keystroke policy the input filter applies
// to them. Fields outside the two constrained classes carry ClassFree.
type FieldClass string

const (
	// ClassFree places no keystroke restrictions on the field.
	ClassFree FieldClass = ""
	// ClassName rejects digit keystrokes (firstName, lastName).
	ClassName FieldClass = "name"
	// ClassNumeric accepts digits plus editing keys only (zipCode, code,
	// phoneNumber).
	ClassNumeric FieldClass = "numeric"
)

const (
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
	ValidationRuleEmail     = "email"
	ValidationRuleAccepted  = "accepted"
)

// ValidationRule represents a single validation constraint applied to a
// field. Length limits encode their threshold in Params["value"] while
// pattern rules preserve the original expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside the registration form. Struct
// fields are annotated so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Class       FieldClass        `json:"class,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation renderers and sessions consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field declaration by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns field names in declared order.
func (m FormModel) FieldNames() []string {
	out := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		out = append(out, field.Name)
	}
	return out
}

// DefaultValues builds the all-default record for a form: empty strings for
// text and enum fields, false for booleans. Declared defaults win when set.
func (m FormModel) DefaultValues() map[string]any {
	values := make(map[string]any, len(m.Fields))
	for _, field := range m.Fields {
		if field.Default != nil {
			values[field.Name] = field.Default
			continue
		}
		switch field.Type {
		case FieldTypeBoolean:
			values[field.Name] = false
		default:
			values[field.Name] = ""
		}
	}
	return values
}
