// ABOUTME: In-memory saved post store for tests and offline experimentation.
// ABOUTME: Assigns identity client-side and mirrors the Postgres store's semantics.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/2389-research/remix/internal/embeddings"
	"github.com/2389-research/remix/internal/models"
)

// Memory keeps saved posts in process memory.
type Memory struct {
	mu       sync.Mutex
	posts    []*models.SavedPost
	vectors  map[uuid.UUID][]float32
	embedder embeddings.Embedder
}

// NewMemory creates an empty in-memory store. The embedder may be nil, in
// which case search falls back to substring matching.
func NewMemory(embedder embeddings.Embedder) *Memory {
	return &Memory{
		vectors:  make(map[uuid.UUID][]float32),
		embedder: embedder,
	}
}

// SavePost assigns a UUID and timestamp and records the post.
func (m *Memory) SavePost(ctx context.Context, content string) (*models.SavedPost, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := models.NewSavedPost(content)

	if m.embedder != nil {
		if vec, err := m.embedder.Embed(ctx, content); err == nil {
			m.mu.Lock()
			m.vectors[post.ID] = vec
			m.mu.Unlock()
		}
	}

	m.mu.Lock()
	m.posts = append(m.posts, post)
	m.mu.Unlock()
	return post, nil
}

// ListPosts returns all saved posts, newest first.
func (m *Memory) ListPosts(ctx context.Context) ([]*models.SavedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	posts := make([]*models.SavedPost, len(m.posts))
	copy(posts, m.posts)
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// DeletePost removes the record with the given identifier.
func (m *Memory) DeletePost(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, post := range m.posts {
		if post.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			delete(m.vectors, id)
			return nil
		}
	}
	return ErrNotFound
}

// SearchPosts ranks posts by cosine similarity when an embedder is available,
// otherwise by case-insensitive substring match, newest first.
func (m *Memory) SearchPosts(ctx context.Context, query string, limit int) ([]*models.SavedPost, error) {
	if limit <= 0 {
		limit = 10
	}

	if m.embedder != nil {
		queryVec, err := m.embedder.Embed(ctx, query)
		if err == nil {
			return m.searchByVector(queryVec, limit), nil
		}
	}

	posts, _ := m.ListPosts(ctx)
	var matched []*models.SavedPost
	queryLower := strings.ToLower(query)
	for _, post := range posts {
		if strings.Contains(strings.ToLower(post.Content), queryLower) {
			matched = append(matched, post)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

func (m *Memory) searchByVector(queryVec []float32, limit int) []*models.SavedPost {
	m.mu.Lock()
	defer m.mu.Unlock()

	type scored struct {
		post  *models.SavedPost
		score float64
	}
	var results []scored
	for _, post := range m.posts {
		vec, ok := m.vectors[post.ID]
		if !ok {
			continue
		}
		results = append(results, scored{post, embeddings.CosineSimilarity(queryVec, vec)})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if limit > len(results) {
		limit = len(results)
	}

	posts := make([]*models.SavedPost, 0, limit)
	for _, r := range results[:limit] {
		posts = append(posts, r.post)
	}
	return posts
}

// Ping always succeeds.
func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

// Close releases nothing.
func (m *Memory) Close() {}
