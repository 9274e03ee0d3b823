package repository

import (
	"context"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/post/model"
)

// PostRepository is the data access contract for posts.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error

	// Delete removes the post and, in the same transaction, every
	// like/favorite edge that references it. Edges are never orphaned.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListFeed returns at most limit posts matching the filter, newest
	// first, with the author resolved on each row. Callers fetch one
	// past the page boundary to detect a next page.
	ListFeed(ctx context.Context, filter model.FeedFilter, limit int) ([]*model.Post, error)
}
