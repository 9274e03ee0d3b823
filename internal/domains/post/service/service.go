package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/post/model"
	"tsismis-backend/internal/domains/post/repository"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type postService struct {
	repo repository.PostRepository
}

func NewPostService(repo repository.PostRepository) ServiceInterface {
	return &postService{repo: repo}
}

// =====================================================
// CREATE POST
// =====================================================

func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	// Step 2: Build entity
	now := time.Now()
	post := &model.Post{
		ID:        uuid.New(),
		Message:   req.Message,
		Tags:      req.Tags,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	// Step 3: Persist
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

// =====================================================
// UPDATE POST
// =====================================================

func (s *postService) UpdatePost(ctx context.Context, requesterID, postID uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	// Only the author may mutate a post.
	if post.AuthorID != requesterID {
		return nil, model.NewNotOwnerError("update")
	}

	post.Message = req.Message
	post.Tags = req.Tags
	if post.Tags == nil {
		post.Tags = []string{}
	}
	post.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, post); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// =====================================================
// DELETE POST
// =====================================================

func (s *postService) DeletePost(ctx context.Context, requesterID, postID uuid.UUID) error {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return model.NewPostNotFoundError()
		}
		return fmt.Errorf("failed to get post: %w", err)
	}

	if post.AuthorID != requesterID {
		return model.NewNotOwnerError("delete")
	}

	// Repository deletes the post's edges in the same transaction.
	if err := s.repo.Delete(ctx, postID); err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return model.NewPostNotFoundError()
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	return nil
}

// =====================================================
// GET POST
// =====================================================

func (s *postService) GetPost(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}
