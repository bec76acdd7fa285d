package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Lookups return domain.ErrNotFound when no row matches.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
