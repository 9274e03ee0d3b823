package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/edge/model"
	"tsismis-backend/internal/domains/edge/repository"
	postmodel "tsismis-backend/internal/domains/post/model"
	postrepo "tsismis-backend/internal/domains/post/repository"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type edgeService struct {
	edgeRepo repository.EdgeRepository
	postRepo postrepo.PostRepository
}

func NewEdgeService(edgeRepo repository.EdgeRepository, postRepo postrepo.PostRepository) ServiceInterface {
	return &edgeService{
		edgeRepo: edgeRepo,
		postRepo: postRepo,
	}
}

func (s *edgeService) Like(ctx context.Context, userID, postID uuid.UUID) error {
	return s.create(ctx, userID, postID, model.KindLike)
}

func (s *edgeService) Unlike(ctx context.Context, userID, postID uuid.UUID) error {
	return s.remove(ctx, userID, postID, model.KindLike)
}

func (s *edgeService) Favorite(ctx context.Context, userID, postID uuid.UUID) error {
	return s.create(ctx, userID, postID, model.KindFavorite)
}

func (s *edgeService) Unfavorite(ctx context.Context, userID, postID uuid.UUID) error {
	return s.remove(ctx, userID, postID, model.KindFavorite)
}

// create adds an edge after verifying the target post exists.
// Only the referencing user ever creates edges, never the post author.
func (s *edgeService) create(ctx context.Context, userID, postID uuid.UUID, kind model.Kind) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, postmodel.ErrPostNotFound) {
			return model.NewPostNotFoundError()
		}
		return fmt.Errorf("failed to get post: %w", err)
	}

	edge := &model.Edge{
		PostID:    postID,
		UserID:    userID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	if err := s.edgeRepo.Create(ctx, edge); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return model.NewAlreadyExistsError(kind)
		}
		return fmt.Errorf("failed to create %s: %w", kind, err)
	}

	return nil
}

func (s *edgeService) remove(ctx context.Context, userID, postID uuid.UUID, kind model.Kind) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, postmodel.ErrPostNotFound) {
			return model.NewPostNotFoundError()
		}
		return fmt.Errorf("failed to get post: %w", err)
	}

	if err := s.edgeRepo.Delete(ctx, postID, userID, kind); err != nil {
		if errors.Is(err, model.ErrEdgeNotFound) {
			return model.NewEdgeNotFoundError(kind)
		}
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	return nil
}
