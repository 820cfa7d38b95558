package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/schema"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	form, err := schema.Registration()
	if err != nil {
		t.Fatalf("registration: %v", err)
	}
	catalog, err := schema.Messages()
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	v, err := New(form, catalog)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidate_ValidRecordPasses(t *testing.T) {
	v := newValidator(t)
	errs := v.Validate(testsupport.ValidRecord())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_EachRequiredFieldAlone(t *testing.T) {
	v := newValidator(t)
	for _, name := range testsupport.RequiredFields() {
		t.Run(name, func(t *testing.T) {
			record := testsupport.ValidRecord()
			if name == "acceptTerms" {
				record[name] = false
			} else {
				record[name] = ""
			}

			errs := v.Validate(record)
			if len(errs) != 1 {
				t.Fatalf("want exactly one error, got %v", errs)
			}
			if errs[name] == "" {
				t.Fatalf("missing error for %s, got %v", name, errs)
			}
		})
	}
}

func TestValidate_OptionalFieldEmptyPasses(t *testing.T) {
	v := newValidator(t)
	record := testsupport.ValidRecord()
	record["additionalInfo"] = ""
	if errs := v.Validate(record); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_AllEmptyReportsEveryRequiredField(t *testing.T) {
	v := newValidator(t)
	errs := v.Validate(map[string]any{})

	var got []string
	for _, name := range testsupport.RequiredFields() {
		if errs[name] != "" {
			got = append(got, name)
		}
	}
	if diff := cmp.Diff(testsupport.RequiredFields(), got); diff != "" {
		t.Fatalf("required coverage mismatch (-want +got):\n%s", diff)
	}
	if errs["additionalInfo"] != "" {
		t.Fatalf("additionalInfo must not error when empty, got %q", errs["additionalInfo"])
	}
}

func TestValidate_PhoneNumberBounds(t *testing.T) {
	v := newValidator(t)
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"nine digits", "123456789", "Phone number must be at least 10 digits"},
		{"ten digits", "1234567890", ""},
		{"fifteen digits", "123456789012345", ""},
		{"sixteen digits", "1234567890123456", "Phone number must be at most 15 digits"},
		{"letters", "12345abcde", "Only numbers are allowed"},
		{"empty", "", "Phone number is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := testsupport.ValidRecord()
			record["phoneNumber"] = tc.value
			errs := v.Validate(record)
			if got := errs["phoneNumber"]; got != tc.want {
				t.Errorf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidate_NameFieldsRejectDigits(t *testing.T) {
	v := newValidator(t)
	record := testsupport.ValidRecord()
	record["firstName"] = "J0hn"
	errs := v.Validate(record)
	if got := errs["firstName"]; got != "Only letters and spaces are allowed" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestValidate_EmailSyntax(t *testing.T) {
	v := newValidator(t)
	cases := map[string]bool{
		"john@acme.com":     true,
		"john.doe@acme.io":  true,
		"john@acme":         false,
		"not-an-email":      false,
		"@acme.com":         false,
		"john doe@acme.com": false,
	}
	for value, valid := range cases {
		record := testsupport.ValidRecord()
		record["email"] = value
		errs := v.Validate(record)
		if valid && errs["email"] != "" {
			t.Errorf("%q: unexpected error %q", value, errs["email"])
		}
		if !valid && errs["email"] == "" {
			t.Errorf("%q: expected an error", value)
		}
	}
}

func TestValidate_AcceptTermsStrictlyTrue(t *testing.T) {
	v := newValidator(t)
	for name, value := range map[string]any{
		"false":       false,
		"absent":      nil,
		"truthy text": "yes",
		"truthy int":  1,
		"string true": "true",
	} {
		t.Run(name, func(t *testing.T) {
			record := testsupport.ValidRecord()
			if value == nil {
				delete(record, "acceptTerms")
			} else {
				record["acceptTerms"] = value
			}
			errs := v.Validate(record)
			if got := errs["acceptTerms"]; got != "You must accept the terms" {
				t.Fatalf("want terms message, got %q", got)
			}
		})
	}
}

func TestValidate_MalformedTypesFailAsEmpty(t *testing.T) {
	v := newValidator(t)
	record := testsupport.ValidRecord()
	record["firstName"] = 42

	errs := v.Validate(record)
	if got := errs["firstName"]; got != "First name is required" {
		t.Fatalf("want required message, got %q", got)
	}
}

func TestValidate_PriorityWithinField(t *testing.T) {
	v := newValidator(t)

	// Non-digit content shorter than the minimum must report the pattern
	// failure, not the length one.
	record := testsupport.ValidRecord()
	record["phoneNumber"] = "abc"
	errs := v.Validate(record)
	if got := errs["phoneNumber"]; got != "Only numbers are allowed" {
		t.Fatalf("want pattern message first, got %q", got)
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	v := newValidator(t)
	record := testsupport.ValidRecord()
	record["email"] = "broken"
	before := cloneRecord(record)

	v.Validate(record)
	if diff := cmp.Diff(before, record); diff != "" {
		t.Fatalf("validator mutated its input (-want +got):\n%s", diff)
	}
}

func cloneRecord(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, val := range src {
		out[k] = val
	}
	return out
}
