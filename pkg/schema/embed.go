package schema

import _ "embed"

//go:embed registration.yaml
var registrationDocument []byte

//go:embed messages.yaml
var messageCatalog []byte

// RegistrationDocument exposes the raw embedded OpenAPI document so callers
// can feed it to their own tooling or serve it over HTTP.
func RegistrationDocument() []byte {
	out := make([]byte, len(registrationDocument))
	copy(out, registrationDocument)
	return out
}
