// Package schema owns the registration Field Schema: an embedded OpenAPI
// document compiled into the model IR, plus the validation message catalog.
// The schema is static; callers read it, they never mutate it.
package schema

import (
	"context"
	"sync"

	"github.com/goliatone/go-regform/pkg/model"
)

// RegistrationOperationID identifies the registration operation inside the
// embedded document.
const RegistrationOperationID = "registerCompany"

var (
	registrationOnce sync.Once
	registrationForm model.FormModel
	registrationErr  error

	catalogOnce sync.Once
	catalog     *Catalog
	catalogErr  error
)

// Registration compiles (once) and returns the registration form model.
func Registration() (model.FormModel, error) {
	registrationOnce.Do(func() {
		registrationForm, registrationErr = Compile(context.Background(), registrationDocument, RegistrationOperationID)
	})
	if registrationErr != nil {
		return model.FormModel{}, registrationErr
	}
	return cloneForm(registrationForm), nil
}

// Messages parses (once) and returns the embedded validation message catalog.
func Messages() (*Catalog, error) {
	catalogOnce.Do(func() {
		catalog, catalogErr = LoadCatalog(messageCatalog)
	})
	return catalog, catalogErr
}

// cloneForm keeps the cached model immutable from the caller's perspective.
func cloneForm(form model.FormModel) model.FormModel {
	out := form
	out.Fields = make([]model.Field, len(form.Fields))
	copy(out.Fields, form.Fields)
	for i, field := range out.Fields {
		if len(field.Enum) > 0 {
			out.Fields[i].Enum = append([]any(nil), field.Enum...)
		}
		if len(field.Validations) > 0 {
			rules := append([]model.ValidationRule(nil), field.Validations...)
			for j, rule := range rules {
				if len(rule.Params) == 0 {
					continue
				}
				params := make(map[string]string, len(rule.Params))
				for key, value := range rule.Params {
					params[key] = value
				}
				rules[j].Params = params
			}
			out.Fields[i].Validations = rules
		}
		if len(field.Metadata) > 0 {
			metadata := make(map[string]string, len(field.Metadata))
			for key, value := range field.Metadata {
				metadata[key] = value
			}
			out.Fields[i].Metadata = metadata
		}
	}
	return out
}
