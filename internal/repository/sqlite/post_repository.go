package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/internal/domain"
	"github.com/threadboard/threadboard/internal/repository"
)

const createPostsTable = `
CREATE TABLE IF NOT EXISTS posts (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	author_id TEXT NOT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTable); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO posts (id, title, content, author_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		post.ID.String(),
		post.Title,
		post.Content,
		post.AuthorID.String(),
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, content, author_id, created_at, updated_at
FROM posts
WHERE id = ?`,
		id.String(),
	)
	return scanPost(row)
}

func (r *PostRepository) List(ctx context.Context, limit, offset int64) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, content, author_id, created_at, updated_at
FROM posts
ORDER BY created_at DESC
LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var (
			post     domain.Post
			id       string
			authorID string
		)
		if err := rows.Scan(
			&id,
			&post.Title,
			&post.Content,
			&authorID,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		if post.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse post id: %w", err)
		}
		if post.AuthorID, err = uuid.Parse(authorID); err != nil {
			return nil, fmt.Errorf("parse post author id: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) UpdatePartial(ctx context.Context, id uuid.UUID, title, content *string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE posts
SET title = COALESCE(?, title),
    content = COALESCE(?, content),
    updated_at = ?
WHERE id = ?`,
		nullString(title),
		nullString(content),
		time.Now().UTC(),
		id.String(),
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepository) DeleteByAuthor(ctx context.Context, id, authorID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM posts
WHERE id = ? AND author_id = ?`,
		id.String(),
		authorID.String(),
	)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("post rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanPost(row *sql.Row) (*domain.Post, error) {
	var (
		post     domain.Post
		id       string
		authorID string
	)
	if err := row.Scan(
		&id,
		&post.Title,
		&post.Content,
		&authorID,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	var err error
	if post.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse post id: %w", err)
	}
	if post.AuthorID, err = uuid.Parse(authorID); err != nil {
		return nil, fmt.Errorf("parse post author id: %w", err)
	}
	return &post, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
