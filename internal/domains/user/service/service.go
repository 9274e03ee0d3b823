package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tsismis-backend/internal/domains/user/model"
	"tsismis-backend/internal/domains/user/repository"
	"tsismis-backend/internal/shared/avatar"
	"tsismis-backend/internal/shared/pagination"
	"tsismis-backend/pkg/cache"
	"tsismis-backend/pkg/jwt"
)

const (
	// Failed-login throttling, tracked in redis per username.
	maxFailedLogins   = 5
	failedLoginWindow = 15 * time.Minute

	latestUsersKey   = "users:latest"
	latestUsersTTL   = 30 * time.Second
	latestUsersCount = 3
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
	cache      cache.Cache
	avatarURL  string
}

func NewUserService(
	repo repository.UserRepository,
	jwtManager *jwt.Manager,
	c cache.Cache,
	avatarURL string,
) ServiceInterface {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		cache:      c,
		avatarURL:  avatarURL,
	}
}

// =====================================================
// SIGNUP
// =====================================================

func (s *userService) Signup(ctx context.Context, req model.SignupRequest) error {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return model.NewInvalidInputError(err)
	}

	// Step 2: Reject taken usernames up front (case-insensitive).
	// The unique index is the real guard against races.
	_, err := s.repo.GetByUsername(ctx, req.Username)
	if err == nil {
		return model.NewUsernameTakenError(req.Username)
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	// Step 3: Hash password
	// bcrypt cost 12
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 4: Persist
	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return model.NewUsernameTakenError(req.Username)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// =====================================================
// LOGIN
// =====================================================

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	throttleKey := "login:failed:" + strings.ToLower(req.Username)

	// Step 1: Check throttle counter
	var attempts int64
	if found, err := s.cache.Get(ctx, throttleKey, &attempts); err == nil && found && attempts >= maxFailedLogins {
		return nil, model.NewTooManyAttemptsError()
	}

	// Step 2: Look up user
	user, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.recordFailedLogin(ctx, throttleKey)
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Step 3: Constant-time password comparison
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, throttleKey)
		return nil, model.NewInvalidCredentialsError()
	}

	// Step 4: Reset throttle and issue token
	_ = s.cache.Delete(ctx, throttleKey)

	token, err := s.jwtManager.Generate(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.LoginResponse{Token: token}, nil
}

// recordFailedLogin bumps the throttle counter; cache errors are not
// allowed to break the login path.
func (s *userService) recordFailedLogin(ctx context.Context, key string) {
	if _, err := s.cache.Increment(ctx, key); err != nil {
		return
	}
	_ = s.cache.Expire(ctx, key, failedLoginWindow)
}

// =====================================================
// PROFILES
// =====================================================

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.buildProfile(ctx, user)
}

func (s *userService) GetProfileByUsername(ctx context.Context, username string) (*model.Profile, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return s.buildProfile(ctx, user)
}

func (s *userService) buildProfile(ctx context.Context, user *model.User) (*model.Profile, error) {
	stats, err := s.repo.Stats(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	return &model.Profile{
		ID:                user.ID,
		Username:          user.Username,
		DisplayName:       user.DisplayName,
		Description:       user.Description,
		Avatar:            avatar.URL(s.avatarURL, user.ID),
		CreatedAt:         user.CreatedAt,
		Posts:             stats.Posts,
		LikesReceived:     stats.LikesReceived,
		FavoritesReceived: stats.FavoritesReceived,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidInputError(err)
	}

	if err := s.repo.UpdateProfile(ctx, userID, req.DisplayName, req.Description); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.Me(ctx, userID)
}

func (s *userService) UpdatePassword(ctx context.Context, userID uuid.UUID, req model.UpdatePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewInvalidInputError(err)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return model.NewInvalidCredentialsError()
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// =====================================================
// LISTINGS
// =====================================================

func (s *userService) LatestUsers(ctx context.Context) ([]model.Summary, error) {
	var cached []model.Summary
	if found, err := s.cache.Get(ctx, latestUsersKey, &cached); err == nil && found {
		return cached, nil
	}

	users, err := s.repo.ListLatest(ctx, latestUsersCount)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest users: %w", err)
	}

	summaries := s.toSummaries(users)
	_ = s.cache.Set(ctx, latestUsersKey, summaries, latestUsersTTL)

	return summaries, nil
}

func (s *userService) SearchUsers(ctx context.Context, query, cursor string, limit int) (*model.SummaryPage, error) {
	if limit < 0 {
		return nil, model.NewInvalidInputError(errors.New("limit must not be negative"))
	}

	var before *time.Time
	if cursor != "" {
		t, err := pagination.Parse(cursor)
		if err != nil {
			return nil, model.NewInvalidInputError(err)
		}
		before = &t
	}

	users, err := s.repo.SearchByUsername(ctx, query, before, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	hasNextPage := len(users) > limit
	page := users
	if hasNextPage {
		page = users[:limit]
	}

	var endCursor *string
	if len(page) > 0 {
		c := pagination.Encode(page[len(page)-1].CreatedAt)
		endCursor = &c
	}

	return &model.SummaryPage{
		Users:       s.toSummaries(page),
		EndCursor:   endCursor,
		HasNextPage: hasNextPage,
	}, nil
}

func (s *userService) toSummaries(users []*model.User) []model.Summary {
	summaries := make([]model.Summary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, model.Summary{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Avatar:      avatar.URL(s.avatarURL, u.ID),
			CreatedAt:   u.CreatedAt,
		})
	}
	return summaries
}
