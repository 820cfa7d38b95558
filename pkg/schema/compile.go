package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
)

const (
	orderExtensionKey    = "x-regform-order"
	classExtensionKey    = "x-regform-class"
	acceptedExtensionKey = "x-regform-accepted"
)

var errOperationNotFound = errors.New("schema: operation not found in document")

// Compile loads an OpenAPI document and converts the request body of the
// named operation into a FormModel. The embedded registration document goes
// through the same path as caller-supplied ones.
func Compile(ctx context.Context, raw []byte, operationID string) (model.FormModel, error) {
	if len(raw) == 0 {
		return model.FormModel{}, errors.New("schema: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("schema: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return model.FormModel{}, errors.New("schema: document does not contain any paths")
	}

	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range map[string]*openapi3.Operation{
			"POST": item.Post,
			"PUT":  item.Put,
		} {
			if operation == nil || operation.OperationID != operationID {
				continue
			}
			return buildForm(operation, method, path)
		}
	}

	return model.FormModel{}, fmt.Errorf("schema: %w: %q", errOperationNotFound, operationID)
}

func buildForm(operation *openapi3.Operation, method, path string) (model.FormModel, error) {
	body := requestSchema(operation.RequestBody)
	if body == nil {
		return model.FormModel{}, fmt.Errorf("schema: operation %q has no request body schema", operation.OperationID)
	}

	form := model.FormModel{
		OperationID: operation.OperationID,
		Endpoint:    path,
		Method:      method,
		Summary:     operation.Summary,
		Description: operation.Description,
	}

	requiredSet := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		requiredSet[name] = struct{}{}
	}

	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, required := requiredSet[name]
		field, err := buildField(name, ref.Value, required)
		if err != nil {
			return model.FormModel{}, err
		}
		form.Fields = append(form.Fields, field)
	}

	if len(form.Fields) == 0 {
		return model.FormModel{}, fmt.Errorf("schema: operation %q declares no properties", operation.OperationID)
	}
	return form, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := body.Value.Content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range body.Value.Content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// propertyOrder honours the x-regform-order extension; properties the
// extension omits (or the whole set, when absent) fall back to sorted names
// so output stays deterministic.
func propertyOrder(schema *openapi3.Schema) []string {
	remaining := make(map[string]struct{}, len(schema.Properties))
	for name := range schema.Properties {
		remaining[name] = struct{}{}
	}

	var out []string
	if raw, ok := schema.Extensions[orderExtensionKey]; ok {
		if items, ok := raw.([]any); ok {
			for _, item := range items {
				name, ok := item.(string)
				if !ok {
					continue
				}
				if _, exists := remaining[name]; !exists {
					continue
				}
				out = append(out, name)
				delete(remaining, name)
			}
		}
	}

	rest := make([]string, 0, len(remaining))
	for name := range remaining {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func buildField(name string, src *openapi3.Schema, required bool) (model.Field, error) {
	field := model.Field{
		Name:        name,
		Type:        fieldType(src.Type),
		Format:      src.Format,
		Required:    required,
		Label:       Label(name),
		Description: src.Description,
		Default:     src.Default,
		Class:       fieldClass(src.Extensions),
	}

	if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
	}

	if src.Pattern != "" {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	if src.Format == "email" {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind: model.ValidationRuleEmail,
		})
	}
	if src.MinLength != 0 {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRuleMinLength,
			Params: map[string]string{"value": strconv.FormatUint(src.MinLength, 10)},
		})
	}
	if src.MaxLength != nil {
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind:   model.ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.FormatUint(*src.MaxLength, 10)},
		})
	}
	if accepted(src.Extensions) {
		if field.Type != model.FieldTypeBoolean {
			return model.Field{}, fmt.Errorf("schema: field %q: %s requires a boolean type", name, acceptedExtensionKey)
		}
		field.Validations = append(field.Validations, model.ValidationRule{
			Kind: model.ValidationRuleAccepted,
		})
	}

	return field, nil
}

func fieldType(types *openapi3.Types) model.FieldType {
	if types == nil {
		return model.FieldTypeString
	}
	for _, value := range types.Slice() {
		if value == "boolean" {
			return model.FieldTypeBoolean
		}
	}
	return model.FieldTypeString
}

func fieldClass(extensions map[string]any) model.FieldClass {
	raw, ok := extensions[classExtensionKey]
	if !ok {
		return model.ClassFree
	}
	switch fmt.Sprint(raw) {
	case string(model.ClassName):
		return model.ClassName
	case string(model.ClassNumeric):
		return model.ClassNumeric
	default:
		return model.ClassFree
	}
}

func accepted(extensions map[string]any) bool {
	raw, ok := extensions[acceptedExtensionKey]
	if !ok {
		return false
	}
	value, ok := raw.(bool)
	return ok && value
}

// Label derives a human-readable label from a camelCase property name, e.g.
// "phoneNumber" becomes "Phone number".
func Label(name string) string {
	if name == "" {
		return ""
	}
	var words []string
	var current strings.Builder
	for _, r := range name {
		if r >= 'A' && r <= 'Z' && current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	for i, word := range words {
		if i == 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
			continue
		}
		words[i] = strings.ToLower(word)
	}
	return strings.Join(words, " ")
}
