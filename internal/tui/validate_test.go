// ABOUTME: Tests for database connection validation.
// ABOUTME: Covers malformed connection strings and cancelled contexts.
package tui

import (
	"context"
	"strings"
	"testing"
)

func TestValidateStoreMalformedURL(t *testing.T) {
	err := ValidateStore(context.Background(), "not-a-connection-string://///")
	if err == nil {
		t.Fatal("expected an error for a malformed connection string")
	}
	if !strings.Contains(err.Error(), "connection failed") {
		t.Errorf("expected a connection error, got %v", err)
	}
}

func TestValidateStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ValidateStore(ctx, "postgres://localhost:1/remix")
	if err == nil {
		t.Fatal("expected an error with a cancelled context")
	}
}
