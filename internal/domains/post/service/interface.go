package service

import (
	"context"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/post/model"
)

type ServiceInterface interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, req model.CreatePostRequest) (*model.Post, error)
	UpdatePost(ctx context.Context, requesterID, postID uuid.UUID, req model.UpdatePostRequest) (*model.Post, error)
	DeletePost(ctx context.Context, requesterID, postID uuid.UUID) error
	GetPost(ctx context.Context, postID uuid.UUID) (*model.Post, error)
}
