// Package testsupport holds fixtures shared by tests across the module.
package testsupport

// ValidRecord returns a record that passes every validation rule. Tests
// mutate the copy they receive.
func ValidRecord() map[string]any {
	return map[string]any{
		"title":          "mr",
		"firstName":      "John",
		"lastName":       "Doe",
		"position":       "developer",
		"company":        "Acme",
		"businessArena":  "Tech",
		"employees":      "1-10",
		"street":         "1 Main St",
		"additionalInfo": "",
		"zipCode":        "12345",
		"place":          "colombo",
		"country":        "us",
		"code":           "94",
		"phoneNumber":    "0771234567",
		"email":          "john@acme.com",
		"acceptTerms":    true,
	}
}

// RequiredFields lists every field the schema marks required, in declared
// order.
func RequiredFields() []string {
	return []string{
		"title", "firstName", "lastName", "position", "company",
		"businessArena", "employees", "street", "zipCode", "place",
		"country", "code", "phoneNumber", "email", "acceptTerms",
	}
}
