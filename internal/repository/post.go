package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/internal/domain"
)

// PostRepository exposes persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	// List returns posts ordered by creation time descending.
	List(ctx context.Context, limit, offset int64) ([]domain.Post, error)
	// UpdatePartial overwrites only the non-nil fields and refreshes the
	// update timestamp.
	UpdatePartial(ctx context.Context, id uuid.UUID, title, content *string) error
	// DeleteByAuthor removes the post only if it exists and belongs to the
	// given author, reporting whether a row was removed.
	DeleteByAuthor(ctx context.Context, id, authorID uuid.UUID) (bool, error)
}
