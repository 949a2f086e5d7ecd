// ABOUTME: Core data models for generated post candidates and saved posts.
// ABOUTME: Provides constructor functions and type definitions for remix.
package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// CharLimit is the per-post character budget candidates are drafted against.
const CharLimit = 280

// SegmentDelimiter separates complete-thought segments inside a post body.
const SegmentDelimiter = "|"

// Post is an in-memory, unsaved candidate post produced by one generation run.
// It carries no stable identity until saved.
type Post struct {
	Segments []string // trimmed complete-thought segments, in order
	Body     string   // raw accumulated body, delimiters included
}

// NewPost builds a post from a raw body, deriving segments by splitting on the
// segment delimiter and trimming each piece.
func NewPost(body string) Post {
	parts := strings.Split(body, SegmentDelimiter)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		segments = append(segments, strings.TrimSpace(part))
	}
	return Post{Segments: segments, Body: body}
}

// Remaining returns the character budget left against CharLimit, measured on
// the raw body. Negative when the body runs over budget.
func (p Post) Remaining() int {
	return CharLimit - utf8.RuneCountInString(p.Body)
}

// SavedPost is a persisted post record with store-assigned ID and timestamp.
type SavedPost struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
}

// NewSavedPost creates a saved post with generated UUID and timestamp. Used by
// stores that assign identity client-side.
func NewSavedPost(content string) *SavedPost {
	return &SavedPost{
		ID:        uuid.New(),
		Content:   content,
		CreatedAt: time.Now(),
	}
}
