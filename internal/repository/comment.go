package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/internal/domain"
)

// CommentRepository exposes persistence operations for Comment entities.
type CommentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, comment *domain.Comment) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	// ListByPost returns a post's comments ordered by creation time
	// descending.
	ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int64) ([]domain.Comment, error)
	// ListReplies returns replies to a comment ordered oldest first.
	ListReplies(ctx context.Context, parentID uuid.UUID, limit, offset int64) ([]domain.Comment, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	DeleteByAuthor(ctx context.Context, id, authorID uuid.UUID) (bool, error)
}
