package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/user/model"
)

// UserRepository is the data access contract for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByUsername matches case-insensitively; usernames are unique
	// regardless of case.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, description *string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// ListLatest returns the n most recently registered users.
	ListLatest(ctx context.Context, n int) ([]*model.User, error)

	// SearchByUsername returns users whose username contains the query
	// (case-insensitive), newest first, at most limit records, restricted
	// to createdAt strictly before the cursor when given.
	SearchByUsername(ctx context.Context, query string, before *time.Time, limit int) ([]*model.User, error)

	// Stats computes the derived counters for a user on read:
	// post count plus likes/favorites received across their posts.
	Stats(ctx context.Context, userID uuid.UUID) (*model.Stats, error)
}
