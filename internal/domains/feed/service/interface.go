package service

import (
	"context"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/feed/model"
)

// ServiceInterface exposes the five feed reads. Every operation takes
// the authenticated requester explicitly; identity is never resolved
// from ambient state. An empty cursor means "from the top".
type ServiceInterface interface {
	GetFeed(ctx context.Context, requesterID uuid.UUID, cursor string, limit int) (*model.Page, error)
	GetOwnFeed(ctx context.Context, requesterID uuid.UUID, cursor string, limit int) (*model.Page, error)
	GetFeedByUsername(ctx context.Context, requesterID uuid.UUID, username, cursor string, limit int) (*model.Page, error)
	GetFavoritedFeed(ctx context.Context, requesterID uuid.UUID, cursor string, limit int) (*model.Page, error)
	SearchMessages(ctx context.Context, requesterID uuid.UUID, query, cursor string, limit int) (*model.Page, error)
}
