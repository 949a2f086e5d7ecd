// ABOUTME: Interface definition for saved post persistence.
// ABOUTME: Defines the insert/list/delete capability any concrete store satisfies.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/2389-research/remix/internal/models"
)

// ErrEmptyContent rejects a save before any network call is made.
var ErrEmptyContent = errors.New("cannot save an empty post")

// ErrNotFound is returned when a delete targets an unknown identifier.
var ErrNotFound = errors.New("saved post not found")

// Store defines operations for saved post persistence. Implementations hold no
// session state; callers own all in-memory lists.
type Store interface {
	// SavePost inserts one record for the given content and returns the
	// persisted record including its assigned identifier and timestamp.
	SavePost(ctx context.Context, content string) (*models.SavedPost, error)

	// ListPosts returns all saved posts ordered by creation time descending.
	ListPosts(ctx context.Context) ([]*models.SavedPost, error)

	// DeletePost removes the record with the given identifier.
	DeletePost(ctx context.Context, id uuid.UUID) error

	// SearchPosts returns saved posts relevant to the query, most relevant
	// first. Falls back to substring matching when no embedder is available.
	SearchPosts(ctx context.Context, query string, limit int) ([]*models.SavedPost, error)

	// Ping checks connectivity to the backing store.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close()
}
