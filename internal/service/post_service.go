package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/internal/domain"
	"github.com/threadboard/threadboard/internal/repository"
)

// PostService coordinates post operations and enforces the ownership rule
// on mutations.
type PostService interface {
	Create(ctx context.Context, title, content string, authorID uuid.UUID) (*domain.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context, page, perPage int64) ([]domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, title, content *string, authorID uuid.UUID) (*domain.Post, error)
	Delete(ctx context.Context, id, authorID uuid.UUID) (bool, error)
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, title, content string, authorID uuid.UUID) (*domain.Post, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if content == "" {
		return nil, errors.New("content is required")
	}

	post := &domain.Post{
		ID:       uuid.New(),
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.posts.Get(ctx, id)
}

func (s *postService) List(ctx context.Context, page, perPage int64) ([]domain.Post, error) {
	offset := (page - 1) * perPage
	return s.posts.List(ctx, perPage, offset)
}

// Update refreshes only the non-nil fields. A missing post and a post owned
// by someone else both come back as domain.ErrNotFound; the caller cannot
// tell which, so existence is never confirmed to non-owners.
func (s *postService) Update(ctx context.Context, id uuid.UUID, title, content *string, authorID uuid.UUID) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, domain.ErrNotFound
	}

	if err := s.posts.UpdatePartial(ctx, id, title, content); err != nil {
		return nil, err
	}
	return s.posts.Get(ctx, id)
}

// Delete reports false for both a missing post and one owned by someone
// else, mirroring Update's conflation.
func (s *postService) Delete(ctx context.Context, id, authorID uuid.UUID) (bool, error) {
	return s.posts.DeleteByAuthor(ctx, id, authorID)
}
