// ABOUTME: Postgres-backed saved post store using a pgx connection pool.
// ABOUTME: Owns a versioned schema and optional pgvector embeddings for search.
package store

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/2389-research/remix/internal/embeddings"
	"github.com/2389-research/remix/internal/models"
)

// migrations are applied in order; remix_schema_version records the last
// applied index. The store owns this schema, not the caller.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS saved_posts (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		content text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE EXTENSION IF NOT EXISTS vector`,
	`ALTER TABLE saved_posts ADD COLUMN IF NOT EXISTS embedding vector(1536)`,
}

// Postgres stores saved posts in a remote Postgres database.
type Postgres struct {
	pool     *pgxpool.Pool
	embedder embeddings.Embedder
}

// PostgresOption configures optional Postgres dependencies.
type PostgresOption func(*Postgres)

// WithEmbedder enables semantic search by embedding content at save time.
func WithEmbedder(e embeddings.Embedder) PostgresOption {
	return func(p *Postgres) {
		p.embedder = e
	}
}

// NewPostgres connects to the database and brings the schema up to date.
func NewPostgres(ctx context.Context, databaseURL string, opts ...PostgresOption) (*Postgres, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("no database URL configured - run 'remix setup' or set REMIX_DATABASE_URL")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		// Vector type registration fails harmlessly when the extension is absent.
		_ = pgxvector.RegisterTypes(ctx, conn)
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	p := &Postgres{pool: pool}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) ensureSchema(ctx context.Context) error {
	const versionTable = `CREATE TABLE IF NOT EXISTS remix_schema_version (
		version int PRIMARY KEY,
		applied_at timestamptz NOT NULL DEFAULT now()
	)`
	if _, err := p.pool.Exec(ctx, versionTable); err != nil {
		return fmt.Errorf("failed to create schema version table: %w", err)
	}

	var current int
	row := p.pool.QueryRow(ctx, `SELECT coalesce(max(version), 0) FROM remix_schema_version`)
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		if _, err := p.pool.Exec(ctx, migrations[i]); err != nil {
			return fmt.Errorf("failed to apply schema migration %d: %w", i+1, err)
		}
		if _, err := p.pool.Exec(ctx, `INSERT INTO remix_schema_version (version) VALUES ($1)`, i+1); err != nil {
			return fmt.Errorf("failed to record schema migration %d: %w", i+1, err)
		}
	}
	return nil
}

// SavePost inserts one record and returns it with the assigned id and timestamp.
func (p *Postgres) SavePost(ctx context.Context, content string) (*models.SavedPost, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	var embedding any
	if p.embedder != nil {
		vec, err := p.embedder.Embed(ctx, content)
		if err != nil {
			// Search indexing is best effort; the save itself must not fail.
			fmt.Fprintf(os.Stderr, "Warning: failed to embed post: %v\n", err)
		} else {
			v := pgvector.NewVector(vec)
			embedding = &v
		}
	}

	const stmt = `INSERT INTO saved_posts (content, embedding) VALUES ($1, $2) RETURNING id, created_at`

	post := &models.SavedPost{Content: content}
	row := p.pool.QueryRow(ctx, stmt, content, embedding)
	if err := row.Scan(&post.ID, &post.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}
	return post, nil
}

// ListPosts returns all saved posts, newest first.
func (p *Postgres) ListPosts(ctx context.Context) ([]*models.SavedPost, error) {
	const stmt = `SELECT id, content, created_at FROM saved_posts ORDER BY created_at DESC`

	rows, err := p.pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// DeletePost removes the record with the given identifier.
func (p *Postgres) DeletePost(ctx context.Context, id uuid.UUID) error {
	const stmt = `DELETE FROM saved_posts WHERE id = $1`

	tag, err := p.pool.Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchPosts ranks saved posts against the query. With an embedder configured
// it uses vector distance; otherwise it falls back to substring matching.
func (p *Postgres) SearchPosts(ctx context.Context, query string, limit int) ([]*models.SavedPost, error) {
	if limit <= 0 {
		limit = 10
	}

	if p.embedder == nil {
		const stmt = `SELECT id, content, created_at FROM saved_posts
			WHERE content ILIKE '%' || $1 || '%'
			ORDER BY created_at DESC LIMIT $2`
		rows, err := p.pool.Query(ctx, stmt, query, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to search posts: %w", err)
		}
		defer rows.Close()
		return scanPosts(rows)
	}

	vec, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	const stmt = `SELECT id, content, created_at FROM saved_posts
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1 LIMIT $2`
	rows, err := p.pool.Query(ctx, stmt, pgvector.NewVector(vec), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

// Ping checks database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func scanPosts(rows pgx.Rows) ([]*models.SavedPost, error) {
	var posts []*models.SavedPost
	for rows.Next() {
		post := &models.SavedPost{}
		if err := rows.Scan(&post.ID, &post.Content, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}
