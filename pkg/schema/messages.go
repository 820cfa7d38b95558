package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog resolves validation messages by field name and rule kind. Field
// entries win over the per-kind defaults; "{label}" and "{value}" markers are
// interpolated at lookup time.
type Catalog struct {
	Defaults map[string]string            `yaml:"defaults"`
	Fields   map[string]map[string]string `yaml:"fields"`
}

// LoadCatalog parses a YAML message catalog.
func LoadCatalog(raw []byte) (*Catalog, error) {
	catalog := &Catalog{}
	if err := yaml.Unmarshal(raw, catalog); err != nil {
		return nil, fmt.Errorf("schema: parse message catalog: %w", err)
	}
	if len(catalog.Defaults) == 0 {
		return nil, fmt.Errorf("schema: message catalog declares no defaults")
	}
	return catalog, nil
}

// Message resolves the message for a (field, kind) pair. Params feed the
// "{value}" marker; label feeds "{label}". A missing entry falls back to a
// generic invalid-field message so no failure ever goes unreported.
func (c *Catalog) Message(field, kind, label string, params map[string]string) string {
	template := ""
	if c != nil {
		if overrides, ok := c.Fields[field]; ok {
			template = overrides[kind]
		}
		if template == "" {
			template = c.Defaults[kind]
		}
	}
	if template == "" {
		template = "{label} is invalid"
	}

	out := strings.ReplaceAll(template, "{label}", label)
	for key, value := range params {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
