// Package vanilla renders the registration form as plain HTML: one control
// per schema field with inline slots for validator errors and transient
// keystroke messages. Markup lives in embedded pongo2 templates.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/render/template"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	templates  template.Renderer
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) { cfg.templateFS = files }
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer template.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// Renderer is the vanilla HTML presentation of a form model.
type Renderer struct {
	templates template.Renderer
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer with the embedded templates unless overridden.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templates
	if templates == nil {
		engine, err := template.New(template.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure templates: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates: templates,
		// Schema text (labels, descriptions) may come from documents the
		// caller loaded; strip any markup before it reaches the template.
		policy: bluemonday.StrictPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form markup with values, inline errors, and
// transient messages folded in.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapping := render.SplitErrors(form, opts.Errors)

	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, r.fieldData(field, opts, mapping))
	}

	out, err := r.templates.RenderTemplate("form", map[string]any{
		"form": map[string]any{
			"operationId": form.OperationID,
			"endpoint":    form.Endpoint,
			"method":      form.Method,
			"summary":     r.policy.Sanitize(form.Summary),
		},
		"fields":      fields,
		"form_errors": mapping.Form,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form %q: %w", form.OperationID, err)
	}
	return []byte(out), nil
}

func (r *Renderer) fieldData(field model.Field, opts render.RenderOptions, mapping render.ErrorMapping) map[string]any {
	data := map[string]any{
		"name":        field.Name,
		"label":       r.policy.Sanitize(field.Label),
		"description": r.policy.Sanitize(field.Description),
		"required":    field.Required,
		"kind":        fieldKind(field),
		"type":        inputType(field),
		"error":       mapping.Fields[field.Name],
		"transient":   opts.Transient[field.Name],
	}

	value := opts.Values[field.Name]
	switch field.Type {
	case model.FieldTypeBoolean:
		checked, _ := value.(bool)
		data["checked"] = checked
	default:
		text, _ := value.(string)
		data["value"] = text
	}

	if len(field.Enum) > 0 {
		selected, _ := value.(string)
		options := make([]map[string]any, 0, len(field.Enum))
		for _, raw := range field.Enum {
			optionValue := fmt.Sprint(raw)
			options = append(options, map[string]any{
				"value":    optionValue,
				"label":    optionValue,
				"selected": optionValue == selected,
			})
		}
		data["options"] = options
	}

	if field.Class == model.ClassNumeric {
		data["inputmode"] = "numeric"
	}
	return data
}

func fieldKind(field model.Field) string {
	switch {
	case field.Type == model.FieldTypeBoolean:
		return "checkbox"
	case len(field.Enum) > 0:
		return "select"
	case field.Format == "textarea":
		return "textarea"
	default:
		return "input"
	}
}

func inputType(field model.Field) string {
	switch {
	case field.Format == "email":
		return "email"
	case field.Class == model.ClassNumeric:
		return "tel"
	default:
		return "text"
	}
}
