package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/session"
)

// stubDriver replays scripted responses and records every Info line.
type stubDriver struct {
	inputs    []string
	selects   []int
	confirms  []bool
	textareas []string
	infos     []string
}

func (d *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("stub: input script exhausted")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("stub: select script exhausted")
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("stub: confirm script exhausted")
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if len(d.textareas) == 0 {
		return "", errors.New("stub: textarea script exhausted")
	}
	out := d.textareas[0]
	d.textareas = d.textareas[1:]
	return out, nil
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func instantSubmitter() session.Submitter {
	return session.SubmitterFunc(func(context.Context, map[string]any) error { return nil })
}

// validScript answers every prompt of the registration form in field order:
// selects for title, position, employees, place, and country; one textarea
// for additionalInfo; one confirm for acceptTerms; inputs for the rest.
func validScript() *stubDriver {
	return &stubDriver{
		selects: []int{0, 2, 0, 0, 0},
		inputs: []string{
			"John", "Doe", "Acme", "Tech", "1 Main St",
			"12345", "94", "0771234567", "john@acme.com",
		},
		textareas: []string{""},
		confirms:  []bool{true},
	}
}

func newRunner(t *testing.T, driver PromptDriver, sessOptions ...session.Option) (*Runner, *session.Session) {
	t.Helper()
	sessOptions = append([]session.Option{session.WithSubmitter(instantSubmitter())}, sessOptions...)
	sess, err := session.New(sessOptions...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	runner, err := New(sess, WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return runner, sess
}

func TestRun_HappyPath(t *testing.T) {
	driver := validScript()
	runner, sess := newRunner(t, driver)

	out, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal(out, &record); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if record["firstName"] != "John" || record["title"] != "mr" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["position"] != "developer" {
		t.Fatalf("select mapping: want developer, got %v", record["position"])
	}
	if record["acceptTerms"] != true {
		t.Fatalf("acceptTerms: want true, got %v", record["acceptTerms"])
	}

	// Success resets the live record; the output keeps the submitted state.
	if value, _ := sess.Value("firstName"); value != "" {
		t.Fatalf("session must reset after success, got %v", value)
	}
}

func TestRun_InvalidThenFixed(t *testing.T) {
	driver := validScript()
	driver.inputs[8] = "broken-email"
	// The retry pass re-prompts only the invalid field.
	driver.inputs = append(driver.inputs, "john@acme.com")

	runner, _ := newRunner(t, driver)
	out, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var sawEmailError bool
	for _, info := range driver.infos {
		if strings.Contains(info, "Email:") && strings.Contains(info, "valid email") {
			sawEmailError = true
		}
	}
	if !sawEmailError {
		t.Fatalf("expected inline email error before re-prompt, infos: %v", driver.infos)
	}

	var record map[string]any
	if err := json.Unmarshal(out, &record); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if record["email"] != "john@acme.com" {
		t.Fatalf("email after retry: got %v", record["email"])
	}
	if len(driver.inputs) != 0 {
		t.Fatalf("retry must consume only the corrected field, leftover: %v", driver.inputs)
	}
}

func TestRun_FiltersConstrainedInput(t *testing.T) {
	driver := validScript()
	driver.inputs[0] = "J0hn"

	runner, _ := newRunner(t, driver)
	out, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var sawFilterNotice bool
	for _, info := range driver.infos {
		if strings.Contains(info, "Numbers are not allowed") && strings.Contains(info, `kept "Jhn"`) {
			sawFilterNotice = true
		}
	}
	if !sawFilterNotice {
		t.Fatalf("expected filter notice, infos: %v", driver.infos)
	}

	var record map[string]any
	if err := json.Unmarshal(out, &record); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if record["firstName"] != "Jhn" {
		t.Fatalf("filtered value: want %q, got %v", "Jhn", record["firstName"])
	}
}

func TestRun_RetriesOutOfRangeSelection(t *testing.T) {
	driver := validScript()
	driver.selects = append([]int{-1}, driver.selects...)

	runner, _ := newRunner(t, driver)
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var sawRetryNotice bool
	for _, info := range driver.infos {
		if strings.Contains(info, "Invalid title selection") {
			sawRetryNotice = true
		}
	}
	if !sawRetryNotice {
		t.Fatalf("expected selection retry notice, infos: %v", driver.infos)
	}
}

func TestRun_SubmissionFailure(t *testing.T) {
	driver := validScript()
	boom := errors.New("backend down")
	runner, _ := newRunner(t, driver, session.WithSubmitter(
		session.SubmitterFunc(func(context.Context, map[string]any) error { return boom }),
	))

	_, err := runner.Run(context.Background())
	if !errors.Is(err, ErrSubmissionFailed) {
		t.Fatalf("want ErrSubmissionFailed, got %v", err)
	}
}

func TestRun_PrettyOutput(t *testing.T) {
	driver := validScript()
	sess, err := session.New(session.WithSubmitter(instantSubmitter()))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	runner, err := New(sess, WithPromptDriver(driver), WithOutputFormat(OutputFormatPretty))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	out, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "firstName=John\n") || !strings.Contains(text, "acceptTerms=true\n") {
		t.Fatalf("unexpected pretty output:\n%s", text)
	}
}

func TestNew_RequiresSession(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil session")
	}
}
