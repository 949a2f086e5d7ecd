// ABOUTME: Connection validation for the saved-post database.
// ABOUTME: Tests credentials by opening a single connection and pinging it.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ValidateStore tests the database connection string by connecting and
// pinging. The context allows cancellation when the user quits during
// validation.
func ValidateStore(ctx context.Context, databaseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close(ctx) }()

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}
