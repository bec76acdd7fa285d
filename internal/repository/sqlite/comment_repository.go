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

const createCommentsTable = `
CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	author_id TEXT NOT NULL REFERENCES users(id),
	parent_id TEXT NULL REFERENCES comments(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCommentsTable); err != nil {
		return fmt.Errorf("create comments table: %w", err)
	}
	return nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	var parentID any
	if comment.ParentID != nil {
		parentID = comment.ParentID.String()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO comments (id, content, post_id, author_id, parent_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		comment.ID.String(),
		comment.Content,
		comment.PostID.String(),
		comment.AuthorID.String(),
		parentID,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, content, post_id, author_id, parent_id, created_at, updated_at
FROM comments
WHERE id = ?`,
		id.String(),
	)

	comment, err := scanComment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int64) ([]domain.Comment, error) {
	return r.list(ctx, `
SELECT id, content, post_id, author_id, parent_id, created_at, updated_at
FROM comments
WHERE post_id = ?
ORDER BY created_at DESC
LIMIT ? OFFSET ?`,
		postID.String(), limit, offset)
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID uuid.UUID, limit, offset int64) ([]domain.Comment, error) {
	return r.list(ctx, `
SELECT id, content, post_id, author_id, parent_id, created_at, updated_at
FROM comments
WHERE parent_id = ?
ORDER BY created_at ASC
LIMIT ? OFFSET ?`,
		parentID.String(), limit, offset)
}

func (r *CommentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows.Scan)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE comments
SET content = ?, updated_at = ?
WHERE id = ?`,
		content,
		time.Now().UTC(),
		id.String(),
	)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByAuthor(ctx context.Context, id, authorID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM comments
WHERE id = ? AND author_id = ?`,
		id.String(),
		authorID.String(),
	)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("comment rows affected: %w", err)
	}
	return affected > 0, nil
}

func scanComment(scan func(dest ...any) error) (*domain.Comment, error) {
	var (
		comment  domain.Comment
		id       string
		postID   string
		authorID string
		parentID sql.NullString
	)
	if err := scan(
		&id,
		&comment.Content,
		&postID,
		&authorID,
		&parentID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}

	var err error
	if comment.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse comment id: %w", err)
	}
	if comment.PostID, err = uuid.Parse(postID); err != nil {
		return nil, fmt.Errorf("parse comment post id: %w", err)
	}
	if comment.AuthorID, err = uuid.Parse(authorID); err != nil {
		return nil, fmt.Errorf("parse comment author id: %w", err)
	}
	if parentID.Valid {
		parsed, err := uuid.Parse(parentID.String)
		if err != nil {
			return nil, fmt.Errorf("parse comment parent id: %w", err)
		}
		comment.ParentID = &parsed
	}
	return &comment, nil
}
