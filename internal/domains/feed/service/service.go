package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	edgemodel "tsismis-backend/internal/domains/edge/model"
	edgerepo "tsismis-backend/internal/domains/edge/repository"
	"tsismis-backend/internal/domains/feed/model"
	postmodel "tsismis-backend/internal/domains/post/model"
	postrepo "tsismis-backend/internal/domains/post/repository"
	usermodel "tsismis-backend/internal/domains/user/model"
	userrepo "tsismis-backend/internal/domains/user/repository"
	"tsismis-backend/internal/shared/pagination"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

// feedService runs the shared read pipeline: build a base filter,
// paginate by cursor, batch-aggregate edge counts and flags for the
// returned ids, then denormalize each post into the feed shape. All
// five operations go through the same pipeline so pagination semantics
// and response shape are identical across feed types.
type feedService struct {
	posts     postrepo.PostRepository
	edges     edgerepo.EdgeRepository
	users     userrepo.UserRepository
	avatarURL string
}

func NewFeedService(
	posts postrepo.PostRepository,
	edges edgerepo.EdgeRepository,
	users userrepo.UserRepository,
	avatarURL string,
) ServiceInterface {
	return &feedService{
		posts:     posts,
		edges:     edges,
		users:     users,
		avatarURL: avatarURL,
	}
}

// =====================================================
// FEED OPERATIONS
// =====================================================

// GetFeed is the global feed: no base filter.
func (s *feedService) GetFeed(ctx context.Context, requesterID uuid.UUID, cursor string, limit int) (*model.Page, error) {
	return s.run(ctx, requesterID, postmodel.FeedFilter{}, cursor, limit)
}

// GetOwnFeed restricts to the requester's posts.
func (s *feedService) GetOwnFeed(ctx context.Context, requesterID uuid.UUID, cursor string, limit int) (*model.Page, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.run(ctx, requesterID, postmodel.FeedFilter{AuthorID: &requesterID}, cursor, limit)
}

// GetFeedByUsername restricts to a resolved user's posts. An unknown
// username is NotFound, never an empty page.
func (s *feedService) GetFeedByUsername(ctx context.Context, requesterID uuid.UUID, username, cursor string, limit int) (*model.Page, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, usermodel.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError(err)
		}
		return nil, fmt.Errorf("failed to resolve username: %w", err)
	}

	return s.run(ctx, requesterID, postmodel.FeedFilter{AuthorID: &target.ID}, cursor, limit)
}

// GetFavoritedFeed is two-phase: fetch the requester's favorite edges
// first, then page over that post id set.
func (s *feedService) GetFavoritedFeed(ctx context.Context, requesterID uuid.UUID, cursor string, limit int) (*model.Page, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	postIDs, err := s.edges.ListPostIDsByUser(ctx, edgemodel.KindFavorite, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if len(postIDs) == 0 {
		return &model.Page{Items: []model.FeedItem{}}, nil
	}

	return s.run(ctx, requesterID, postmodel.FeedFilter{IDs: postIDs}, cursor, limit)
}

// SearchMessages filters by case-insensitive substring match.
func (s *feedService) SearchMessages(ctx context.Context, requesterID uuid.UUID, query, cursor string, limit int) (*model.Page, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	return s.run(ctx, requesterID, postmodel.FeedFilter{MessageContains: query}, cursor, limit)
}

// =====================================================
// SHARED PIPELINE
// =====================================================

func (s *feedService) run(ctx context.Context, requesterID uuid.UUID, filter postmodel.FeedFilter, cursor string, limit int) (*model.Page, error) {
	// Step 1: Validate limit and extend the filter with the cursor.
	// limit 0 still peeks one record so HasNextPage is meaningful.
	if limit < 0 {
		return nil, model.NewInvalidLimitError()
	}
	if cursor != "" {
		before, err := pagination.Parse(cursor)
		if err != nil {
			return nil, model.NewInvalidCursorError(err)
		}
		filter.Before = &before
	}

	// Step 2: Fetch one past the page boundary, newest first.
	fetched, err := s.posts.ListFeed(ctx, filter, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed page: %w", err)
	}

	hasNextPage := len(fetched) > limit
	page := fetched
	if hasNextPage {
		page = fetched[:limit]
	}

	postIDs := make([]uuid.UUID, len(page))
	for i, p := range page {
		postIDs[i] = p.ID
	}

	// Step 3: Batch-aggregate edges for the returned ids. Two queries
	// per kind regardless of page size; like and favorite maps are
	// built by separate calls to keep the two semantics apart.
	likes, err := s.buildMaps(ctx, edgemodel.KindLike, postIDs, requesterID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.buildMaps(ctx, edgemodel.KindFavorite, postIDs, requesterID)
	if err != nil {
		return nil, err
	}

	// Step 4: Denormalize.
	items := make([]model.FeedItem, len(page))
	for i, p := range page {
		items[i] = s.denormalize(p, likes, favorites)
	}

	var endCursor *string
	if len(page) > 0 {
		c := pagination.Encode(page[len(page)-1].CreatedAt)
		endCursor = &c
	}

	return &model.Page{
		Items:       items,
		EndCursor:   endCursor,
		HasNextPage: hasNextPage,
	}, nil
}

// requireUser resolves the requester; a missing account is NotFound.
func (s *feedService) requireUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, usermodel.ErrUserNotFound) {
			return model.NewUserNotFoundError(err)
		}
		return fmt.Errorf("failed to resolve requester: %w", err)
	}
	return nil
}
