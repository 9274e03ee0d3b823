package service

import (
	"context"

	"github.com/google/uuid"
)

type ServiceInterface interface {
	Like(ctx context.Context, userID, postID uuid.UUID) error
	Unlike(ctx context.Context, userID, postID uuid.UUID) error
	Favorite(ctx context.Context, userID, postID uuid.UUID) error
	Unfavorite(ctx context.Context, userID, postID uuid.UUID) error
}
