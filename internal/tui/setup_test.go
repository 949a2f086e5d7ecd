// ABOUTME: Tests for the setup wizard state machine.
// ABOUTME: Drives key messages through the model with an injected validator.
package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func stepThrough(t *testing.T, m SetupModel, msgs ...tea.Msg) SetupModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(SetupModel)
		if !ok {
			t.Fatalf("Update returned %T, expected SetupModel", next)
		}
	}
	return m
}

func TestSetupAdvancesThroughSteps(t *testing.T) {
	m := NewSetupModel("", "", "")
	m.validateFn = func(ctx context.Context, databaseURL string) error {
		return nil
	}

	if m.step != StepAPIKey {
		t.Fatalf("expected StepAPIKey, got %d", m.step)
	}

	m = stepThrough(t, m, keyRunes("sk-test"), enter())
	if m.step != StepModel {
		t.Fatalf("expected StepModel, got %d", m.step)
	}

	m = stepThrough(t, m, enter())
	if m.step != StepDatabaseURL {
		t.Fatalf("expected StepDatabaseURL, got %d", m.step)
	}
	if m.inputs[1].Value() != "gpt-4o" {
		t.Errorf("expected default model applied, got %q", m.inputs[1].Value())
	}

	m = stepThrough(t, m, keyRunes("postgres://localhost/remix"), enter())
	if m.step != StepValidating {
		t.Fatalf("expected StepValidating, got %d", m.step)
	}
}

func TestSetupRequiresDatabaseURL(t *testing.T) {
	m := NewSetupModel("sk-test", "gpt-4o", "")

	m = stepThrough(t, m, enter(), enter())
	if m.step != StepDatabaseURL {
		t.Fatalf("expected StepDatabaseURL, got %d", m.step)
	}

	m = stepThrough(t, m, enter())
	if m.step != StepDatabaseURL {
		t.Errorf("expected empty database URL to block advancing, got %d", m.step)
	}
}

func TestSetupValidationSuccess(t *testing.T) {
	m := NewSetupModel("sk-test", "", "postgres://localhost/remix")
	m.validateFn = func(ctx context.Context, databaseURL string) error {
		if databaseURL != "postgres://localhost/remix" {
			t.Errorf("unexpected database URL %q", databaseURL)
		}
		return nil
	}

	m = stepThrough(t, m, enter(), enter(), enter())
	if m.step != StepValidating {
		t.Fatalf("expected StepValidating, got %d", m.step)
	}

	m = stepThrough(t, m, validationResultMsg{err: nil})
	if m.step != StepDone {
		t.Fatalf("expected StepDone, got %d", m.step)
	}
	if !m.ShouldSave() {
		t.Error("expected ShouldSave after successful validation")
	}

	apiKey, model, databaseURL := m.Result()
	if apiKey != "sk-test" {
		t.Errorf("expected api key preserved, got %q", apiKey)
	}
	if model != "gpt-4o" {
		t.Errorf("expected default model, got %q", model)
	}
	if databaseURL != "postgres://localhost/remix" {
		t.Errorf("expected database URL preserved, got %q", databaseURL)
	}
}

func TestSetupValidationFailureOffersRetry(t *testing.T) {
	m := NewSetupModel("", "", "postgres://bad")
	validateErr := fmt.Errorf("connection failed: refused")
	m.validateFn = func(ctx context.Context, databaseURL string) error {
		return validateErr
	}

	m = stepThrough(t, m, enter(), enter(), enter())
	m = stepThrough(t, m, validationResultMsg{err: validateErr})
	if m.step != StepFailed {
		t.Fatalf("expected StepFailed, got %d", m.step)
	}

	// retry re-enters validation
	m = stepThrough(t, m, keyRunes("r"))
	if m.step != StepValidating {
		t.Errorf("expected retry to re-validate, got %d", m.step)
	}
}

func TestSetupSaveAnywayAfterFailure(t *testing.T) {
	m := NewSetupModel("", "", "postgres://bad")
	m.step = StepFailed
	m.validationErr = fmt.Errorf("unreachable")

	m = stepThrough(t, m, keyRunes("s"))
	if m.step != StepDone {
		t.Fatalf("expected StepDone after save anyway, got %d", m.step)
	}
	if !m.ShouldSave() {
		t.Error("expected ShouldSave after save anyway")
	}
}

func TestSetupQuitDoesNotSave(t *testing.T) {
	m := NewSetupModel("", "", "")

	m = stepThrough(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.ShouldSave() {
		t.Error("expected no save after cancel")
	}
}
