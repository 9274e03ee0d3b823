package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	edgemodel "tsismis-backend/internal/domains/edge/model"
	"tsismis-backend/internal/domains/feed/model"
	postmodel "tsismis-backend/internal/domains/post/model"
	usermodel "tsismis-backend/internal/domains/user/model"
)

const testAvatarURL = "https://avatars.test/svg"

// =====================================================
// FAKES
// =====================================================

type fakePostRepo struct {
	posts     []*postmodel.Post
	listCalls int

	// afterList runs once the page fetch has completed, before the
	// aggregation queries. Used to exercise the window where a
	// concurrent write lands between the two pipeline stages.
	afterList func()
}

func (f *fakePostRepo) Create(ctx context.Context, post *postmodel.Post) error {
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*postmodel.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, postmodel.ErrPostNotFound
}

func (f *fakePostRepo) Update(ctx context.Context, post *postmodel.Post) error { return nil }

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakePostRepo) ListFeed(ctx context.Context, filter postmodel.FeedFilter, limit int) ([]*postmodel.Post, error) {
	f.listCalls++

	var matched []*postmodel.Post
	for _, p := range f.posts {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			continue
		}
		if filter.IDs != nil && !containsID(filter.IDs, p.ID) {
			continue
		}
		if filter.MessageContains != "" &&
			!strings.Contains(strings.ToLower(p.Message), strings.ToLower(filter.MessageContains)) {
			continue
		}
		if filter.Before != nil && !p.CreatedAt.Before(*filter.Before) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}

	if f.afterList != nil {
		f.afterList()
	}
	return matched, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type fakeEdgeRepo struct {
	edges []edgemodel.Edge

	countQueries int
	flagQueries  int
}

func (f *fakeEdgeRepo) Create(ctx context.Context, edge *edgemodel.Edge) error {
	for _, e := range f.edges {
		if e.PostID == edge.PostID && e.UserID == edge.UserID && e.Kind == edge.Kind {
			return edgemodel.ErrAlreadyExists
		}
	}
	f.edges = append(f.edges, *edge)
	return nil
}

func (f *fakeEdgeRepo) Delete(ctx context.Context, postID, userID uuid.UUID, kind edgemodel.Kind) error {
	for i, e := range f.edges {
		if e.PostID == postID && e.UserID == userID && e.Kind == kind {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return nil
		}
	}
	return edgemodel.ErrEdgeNotFound
}

func (f *fakeEdgeRepo) CountByPostIDs(ctx context.Context, kind edgemodel.Kind, postIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	f.countQueries++
	counts := make(map[uuid.UUID]int)
	for _, e := range f.edges {
		if e.Kind == kind && containsID(postIDs, e.PostID) {
			counts[e.PostID]++
		}
	}
	return counts, nil
}

func (f *fakeEdgeRepo) FlaggedByUser(ctx context.Context, kind edgemodel.Kind, postIDs []uuid.UUID, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	f.flagQueries++
	flags := make(map[uuid.UUID]bool)
	for _, e := range f.edges {
		if e.Kind == kind && e.UserID == userID && containsID(postIDs, e.PostID) {
			flags[e.PostID] = true
		}
	}
	return flags, nil
}

func (f *fakeEdgeRepo) ListPostIDsByUser(ctx context.Context, kind edgemodel.Kind, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, e := range f.edges {
		if e.Kind == kind && e.UserID == userID {
			ids = append(ids, e.PostID)
		}
	}
	return ids, nil
}

type fakeUserRepo struct {
	users []*usermodel.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *usermodel.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*usermodel.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, usermodel.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*usermodel.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, usermodel.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, description *string) error {
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) ListLatest(ctx context.Context, n int) ([]*usermodel.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) SearchByUsername(ctx context.Context, query string, before *time.Time, limit int) ([]*usermodel.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Stats(ctx context.Context, userID uuid.UUID) (*usermodel.Stats, error) {
	return &usermodel.Stats{}, nil
}

// =====================================================
// FIXTURE HELPERS
// =====================================================

type fixture struct {
	posts     *fakePostRepo
	edges     *fakeEdgeRepo
	users     *fakeUserRepo
	svc       *feedService
	requester *usermodel.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &fakeUserRepo{}
	requester := newUser("requester")
	users.users = append(users.users, requester)

	posts := &fakePostRepo{}
	edges := &fakeEdgeRepo{}

	svc := NewFeedService(posts, edges, users, testAvatarURL).(*feedService)

	return &fixture{posts: posts, edges: edges, users: users, svc: svc, requester: requester}
}

func newUser(username string) *usermodel.User {
	now := time.Now()
	return &usermodel.User{
		ID:          uuid.New(),
		Username:    username,
		DisplayName: username,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// newPost creates a post authored by author at the given millisecond
// timestamp, with the author already resolved.
func newPost(author *usermodel.User, message string, millis int64) *postmodel.Post {
	created := time.UnixMilli(millis)
	return &postmodel.Post{
		ID:        uuid.New(),
		Message:   message,
		Tags:      []string{},
		AuthorID:  author.ID,
		Author:    author,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func (fx *fixture) seedPosts(author *usermodel.User, timestamps ...int64) []*postmodel.Post {
	seeded := make([]*postmodel.Post, len(timestamps))
	for i, ts := range timestamps {
		p := newPost(author, fmt.Sprintf("post at t=%d", ts), ts)
		fx.posts.posts = append(fx.posts.posts, p)
		seeded[i] = p
	}
	return seeded
}

func (fx *fixture) like(post *postmodel.Post, user uuid.UUID) {
	fx.edges.edges = append(fx.edges.edges, edgemodel.Edge{
		PostID: post.ID, UserID: user, Kind: edgemodel.KindLike, CreatedAt: time.Now(),
	})
}

func (fx *fixture) favorite(post *postmodel.Post, user uuid.UUID) {
	fx.edges.edges = append(fx.edges.edges, edgemodel.Edge{
		PostID: post.ID, UserID: user, Kind: edgemodel.KindFavorite, CreatedAt: time.Now(),
	})
}

// =====================================================
// PAGINATION
// =====================================================

func TestGetFeedPaginationWalk(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	fx.seedPosts(author, 5, 4, 3, 2, 1)

	ctx := context.Background()

	// First page: no cursor.
	page, err := fx.svc.GetFeed(ctx, fx.requester.ID, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "post at t=5", page.Items[0].Message)
	assert.Equal(t, "post at t=4", page.Items[1].Message)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, page.EndCursor)
	assert.Equal(t, "4", *page.EndCursor)

	// Second page: resume from the cursor.
	page, err = fx.svc.GetFeed(ctx, fx.requester.ID, *page.EndCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "post at t=3", page.Items[0].Message)
	assert.Equal(t, "post at t=2", page.Items[1].Message)
	assert.True(t, page.HasNextPage)
	require.NotNil(t, page.EndCursor)
	assert.Equal(t, "2", *page.EndCursor)

	// Final page.
	page, err = fx.svc.GetFeed(ctx, fx.requester.ID, *page.EndCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "post at t=1", page.Items[0].Message)
	assert.False(t, page.HasNextPage)
	require.NotNil(t, page.EndCursor)
	assert.Equal(t, "1", *page.EndCursor)
}

func TestGetFeedNoDuplicatesAcrossPages(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	fx.seedPosts(author, 9, 8, 7, 6, 5, 4, 3, 2, 1)

	ctx := context.Background()
	seen := make(map[uuid.UUID]bool)
	cursor := ""

	for {
		page, err := fx.svc.GetFeed(ctx, fx.requester.ID, cursor, 4)
		require.NoError(t, err)

		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "post %s returned twice", item.ID)
			seen[item.ID] = true
		}
		if !page.HasNextPage {
			break
		}
		cursor = *page.EndCursor
	}

	assert.Len(t, seen, 9)
}

func TestGetFeedPageShapeInvariants(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	fx.seedPosts(author, 5, 4, 3, 2, 1)

	ctx := context.Background()

	cases := []struct {
		limit       int
		wantLen     int
		wantHasNext bool
	}{
		{limit: 3, wantLen: 3, wantHasNext: true},
		{limit: 5, wantLen: 5, wantHasNext: false},
		{limit: 50, wantLen: 5, wantHasNext: false},
	}

	for _, tc := range cases {
		page, err := fx.svc.GetFeed(ctx, fx.requester.ID, "", tc.limit)
		require.NoError(t, err)
		assert.Len(t, page.Items, tc.wantLen, "limit %d", tc.limit)
		assert.Equal(t, tc.wantHasNext, page.HasNextPage, "limit %d", tc.limit)
	}
}

func TestGetFeedLimitZero(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	fx.seedPosts(author, 5)

	page, err := fx.svc.GetFeed(context.Background(), fx.requester.ID, "", 0)
	require.NoError(t, err)

	// Empty page, but the one peeked record still signals a next page.
	assert.Empty(t, page.Items)
	assert.True(t, page.HasNextPage)
	assert.Nil(t, page.EndCursor)
}

func TestGetFeedEmptyStore(t *testing.T) {
	fx := newFixture(t)

	page, err := fx.svc.GetFeed(context.Background(), fx.requester.ID, "", 10)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.False(t, page.HasNextPage)
	assert.Nil(t, page.EndCursor)
}

func TestGetFeedNegativeLimit(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.GetFeed(context.Background(), fx.requester.ID, "", -1)

	var feedErr *model.FeedError
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, model.ErrCodeInvalidLimit, feedErr.Code)
}

func TestGetFeedMalformedCursor(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.GetFeed(context.Background(), fx.requester.ID, "not-a-cursor", 10)

	var feedErr *model.FeedError
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, model.ErrCodeInvalidCursor, feedErr.Code)
}

// =====================================================
// AGGREGATION
// =====================================================

func TestAggregationCountsAndFlags(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	posts := fx.seedPosts(author, 3, 2, 1)

	// posts[0]: three likes (one from the requester), one favorite
	// from the requester.
	fx.like(posts[0], fx.requester.ID)
	fx.like(posts[0], uuid.New())
	fx.like(posts[0], uuid.New())
	fx.favorite(posts[0], fx.requester.ID)

	// posts[1]: one like from someone else.
	fx.like(posts[1], uuid.New())

	page, err := fx.svc.GetFeed(context.Background(), fx.requester.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	first := page.Items[0]
	assert.Equal(t, 3, first.Likes)
	assert.True(t, first.HasLiked)
	assert.Equal(t, 1, first.Favorites)
	assert.True(t, first.HasFavorited)

	second := page.Items[1]
	assert.Equal(t, 1, second.Likes)
	assert.False(t, second.HasLiked)
	assert.Equal(t, 0, second.Favorites)
	assert.False(t, second.HasFavorited)

	// posts[2] has no edges at all: everything defaults.
	third := page.Items[2]
	assert.Equal(t, 0, third.Likes)
	assert.False(t, third.HasLiked)
	assert.Equal(t, 0, third.Favorites)
	assert.False(t, third.HasFavorited)
}

func TestAggregationQueryCountIndependentOfPageSize(t *testing.T) {
	ctx := context.Background()

	for _, pageSize := range []int{1, 50} {
		fx := newFixture(t)
		author := newUser("author")
		fx.users.users = append(fx.users.users, author)

		timestamps := make([]int64, pageSize)
		for i := range timestamps {
			timestamps[i] = int64(i + 1)
		}
		fx.seedPosts(author, timestamps...)

		_, err := fx.svc.GetFeed(ctx, fx.requester.ID, "", pageSize)
		require.NoError(t, err)

		// One grouped count and one flag fetch per kind, two kinds.
		assert.Equal(t, 2, fx.edges.countQueries, "page size %d", pageSize)
		assert.Equal(t, 2, fx.edges.flagQueries, "page size %d", pageSize)
	}
}

// A like that lands between the page fetch and the aggregation step is
// visible in the counts of that same response. That window is accepted
// behavior, not something the pipeline guards against.
func TestAggregationSeesWritesAfterPageFetch(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	posts := fx.seedPosts(author, 1)

	fx.posts.afterList = func() {
		fx.like(posts[0], uuid.New())
	}

	page, err := fx.svc.GetFeed(context.Background(), fx.requester.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].Likes)
}

// =====================================================
// FEED VARIANTS
// =====================================================

func TestGetOwnFeedOnlyRequesterPosts(t *testing.T) {
	fx := newFixture(t)
	other := newUser("other")
	fx.users.users = append(fx.users.users, other)

	fx.seedPosts(fx.requester, 4, 2)
	fx.seedPosts(other, 5, 3, 1)

	page, err := fx.svc.GetOwnFeed(context.Background(), fx.requester.ID, "", 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Equal(t, fx.requester.ID, item.Author.ID)
	}
}

func TestGetFeedByUsername(t *testing.T) {
	fx := newFixture(t)
	target := newUser("maria")
	fx.users.users = append(fx.users.users, target)
	fx.seedPosts(target, 3, 2, 1)
	fx.seedPosts(fx.requester, 4)

	page, err := fx.svc.GetFeedByUsername(context.Background(), fx.requester.ID, "maria", "", 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	for _, item := range page.Items {
		assert.Equal(t, "maria", item.Author.Username)
	}
}

func TestGetFeedByUsernameUnknownIsNotFound(t *testing.T) {
	fx := newFixture(t)

	page, err := fx.svc.GetFeedByUsername(context.Background(), fx.requester.ID, "ghost", "", 10)

	// NotFound, never an empty page.
	assert.Nil(t, page)
	var feedErr *model.FeedError
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, model.ErrCodeUserNotFound, feedErr.Code)
}

func TestGetFavoritedFeedTwoPhase(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	posts := fx.seedPosts(author, 5, 4, 3, 2, 1)

	fx.favorite(posts[1], fx.requester.ID)
	fx.favorite(posts[3], fx.requester.ID)

	page, err := fx.svc.GetFavoritedFeed(context.Background(), fx.requester.ID, "", 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "post at t=4", page.Items[0].Message)
	assert.Equal(t, "post at t=2", page.Items[1].Message)
	assert.True(t, page.Items[0].HasFavorited)
	assert.True(t, page.Items[1].HasFavorited)
}

func TestGetFavoritedFeedNoFavorites(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)
	fx.seedPosts(author, 2, 1)

	page, err := fx.svc.GetFavoritedFeed(context.Background(), fx.requester.ID, "", 10)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.False(t, page.HasNextPage)
	assert.Nil(t, page.EndCursor)
	// With nothing favorited there is no page to fetch at all.
	assert.Equal(t, 0, fx.posts.listCalls)
}

func TestSearchMessagesCaseInsensitive(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	fx.users.users = append(fx.users.users, author)

	chika := newPost(author, "May CHIKA ako sa inyo", 3)
	other := newPost(author, "walang laman", 2)
	fx.posts.posts = append(fx.posts.posts, chika, other)

	page, err := fx.svc.SearchMessages(context.Background(), fx.requester.ID, "chika", "", 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, chika.ID, page.Items[0].ID)
}

func TestSearchMessagesUnknownRequester(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.SearchMessages(context.Background(), uuid.New(), "anything", "", 10)

	var feedErr *model.FeedError
	require.ErrorAs(t, err, &feedErr)
	assert.Equal(t, model.ErrCodeUserNotFound, feedErr.Code)
}

// =====================================================
// DENORMALIZATION
// =====================================================

func TestDenormalize(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	post := newPost(author, "hello", 7)

	likes := aggregates{
		counts: map[uuid.UUID]int{post.ID: 3},
		flags:  map[uuid.UUID]bool{post.ID: true},
	}
	favorites := aggregates{
		counts: map[uuid.UUID]int{},
		flags:  map[uuid.UUID]bool{},
	}

	item := fx.svc.denormalize(post, likes, favorites)

	assert.Equal(t, post.ID, item.ID)
	assert.Equal(t, "hello", item.Message)
	assert.Equal(t, 3, item.Likes)
	assert.True(t, item.HasLiked)
	assert.Equal(t, 0, item.Favorites)
	assert.False(t, item.HasFavorited)
	assert.Equal(t, author.ID, item.Author.ID)
	assert.Equal(t, testAvatarURL+"?seed="+author.ID.String(), item.Author.Avatar)

	// Same inputs, same avatar; no randomness anywhere.
	again := fx.svc.denormalize(post, likes, favorites)
	assert.Equal(t, item, again)
}

func TestDenormalizePanicsOnUnresolvedAuthor(t *testing.T) {
	fx := newFixture(t)
	author := newUser("author")
	post := newPost(author, "hello", 7)
	post.Author = nil

	assert.Panics(t, func() {
		fx.svc.denormalize(post, aggregates{}, aggregates{})
	})
}
