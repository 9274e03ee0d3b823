package service

import (
	"context"

	"github.com/google/uuid"

	"tsismis-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	Signup(ctx context.Context, req model.SignupRequest) error
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	Me(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, req model.UpdatePasswordRequest) error

	LatestUsers(ctx context.Context) ([]model.Summary, error)
	SearchUsers(ctx context.Context, query, cursor string, limit int) (*model.SummaryPage, error)
}
