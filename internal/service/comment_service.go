package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/threadboard/threadboard/internal/domain"
	"github.com/threadboard/threadboard/internal/repository"
)

// CommentService coordinates comment operations, including one level of
// replies, and enforces the ownership rule on mutations.
type CommentService interface {
	Create(ctx context.Context, postID uuid.UUID, content string, parentID *uuid.UUID, authorID uuid.UUID) (*domain.Comment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, page, perPage int64) ([]domain.Comment, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, page, perPage int64) ([]domain.Comment, error)
	Update(ctx context.Context, id uuid.UUID, content string, authorID uuid.UUID) (*domain.Comment, error)
	Delete(ctx context.Context, id, authorID uuid.UUID) (bool, error)
}

type commentService struct {
	comments repository.CommentRepository
}

func NewCommentService(comments repository.CommentRepository) CommentService {
	return &commentService{comments: comments}
}

func (s *commentService) Create(ctx context.Context, postID uuid.UUID, content string, parentID *uuid.UUID, authorID uuid.UUID) (*domain.Comment, error) {
	if content == "" {
		return nil, errors.New("content is required")
	}

	comment := &domain.Comment{
		ID:       uuid.New(),
		Content:  content,
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return s.comments.Get(ctx, id)
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID, page, perPage int64) ([]domain.Comment, error) {
	offset := (page - 1) * perPage
	return s.comments.ListByPost(ctx, postID, perPage, offset)
}

func (s *commentService) ListReplies(ctx context.Context, parentID uuid.UUID, page, perPage int64) ([]domain.Comment, error) {
	offset := (page - 1) * perPage
	return s.comments.ListReplies(ctx, parentID, perPage, offset)
}

// Update and Delete conflate "missing" with "not yours" the same way the
// post service does.
func (s *commentService) Update(ctx context.Context, id uuid.UUID, content string, authorID uuid.UUID) (*domain.Comment, error) {
	if content == "" {
		return nil, errors.New("content is required")
	}

	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != authorID {
		return nil, domain.ErrNotFound
	}

	if err := s.comments.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	return s.comments.Get(ctx, id)
}

func (s *commentService) Delete(ctx context.Context, id, authorID uuid.UUID) (bool, error) {
	return s.comments.DeleteByAuthor(ctx, id, authorID)
}
