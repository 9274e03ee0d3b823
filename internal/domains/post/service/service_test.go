package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsismis-backend/internal/domains/post/model"
)

// =====================================================
// FAKE REPOSITORY
// =====================================================

type fakeRepo struct {
	posts map[uuid.UUID]*model.Post

	deleted []uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{posts: make(map[uuid.UUID]*model.Post)}
}

func (f *fakeRepo) Create(ctx context.Context, post *model.Post) error {
	f.posts[post.ID] = post
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakeRepo) Update(ctx context.Context, post *model.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return model.ErrPostNotFound
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return model.ErrPostNotFound
	}
	delete(f.posts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepo) ListFeed(ctx context.Context, filter model.FeedFilter, limit int) ([]*model.Post, error) {
	return nil, nil
}

// =====================================================
// CREATE
// =====================================================

func TestCreatePost(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPostService(repo)
	author := uuid.New()

	post, err := svc.CreatePost(context.Background(), author, model.CreatePostRequest{
		Message: "may chika ako",
		Tags:    []string{"chika", "news"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.Equal(t, author, post.AuthorID)
	assert.Equal(t, "may chika ako", post.Message)
	assert.Equal(t, []string{"chika", "news"}, post.Tags)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)

	stored, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Message, stored.Message)
}

func TestCreatePostNilTagsBecomeEmpty(t *testing.T) {
	svc := NewPostService(newFakeRepo())

	post, err := svc.CreatePost(context.Background(), uuid.New(), model.CreatePostRequest{
		Message: "walang tags",
	})
	require.NoError(t, err)

	assert.NotNil(t, post.Tags)
	assert.Empty(t, post.Tags)
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.CreatePostRequest
	}{
		{name: "empty message", req: model.CreatePostRequest{Message: ""}},
		{name: "message too long", req: model.CreatePostRequest{
			Message: strings.Repeat("a", model.MaxMessageLength+1),
		}},
		{name: "too many tags", req: model.CreatePostRequest{
			Message: "ok",
			Tags:    []string{"a", "b", "c", "d", "e", "f"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, uuid.New(), tc.req)

			var postErr *model.PostError
			require.ErrorAs(t, err, &postErr)
			assert.Equal(t, model.ErrCodeInvalidInput, postErr.Code)
		})
	}
}

func TestCreatePostBoundaryValues(t *testing.T) {
	svc := NewPostService(newFakeRepo())
	ctx := context.Background()

	// Exactly at the limits is still valid.
	_, err := svc.CreatePost(ctx, uuid.New(), model.CreatePostRequest{
		Message: strings.Repeat("a", model.MaxMessageLength),
		Tags:    []string{"a", "b", "c", "d", "e"},
	})
	assert.NoError(t, err)
}

// =====================================================
// UPDATE
// =====================================================

func TestUpdatePost(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPostService(repo)
	author := uuid.New()

	created, err := svc.CreatePost(context.Background(), author, model.CreatePostRequest{
		Message: "original",
	})
	require.NoError(t, err)
	originalCreatedAt := created.CreatedAt

	time.Sleep(time.Millisecond)

	updated, err := svc.UpdatePost(context.Background(), author, created.ID, model.UpdatePostRequest{
		Message: "edited",
		Tags:    []string{"edit"},
	})
	require.NoError(t, err)

	assert.Equal(t, "edited", updated.Message)
	assert.Equal(t, []string{"edit"}, updated.Tags)
	// createdAt never moves; updatedAt does.
	assert.Equal(t, originalCreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(originalCreatedAt))
}

func TestUpdatePostNotOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPostService(repo)
	author := uuid.New()

	created, err := svc.CreatePost(context.Background(), author, model.CreatePostRequest{
		Message: "original",
	})
	require.NoError(t, err)

	_, err = svc.UpdatePost(context.Background(), uuid.New(), created.ID, model.UpdatePostRequest{
		Message: "hijacked",
	})

	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, model.ErrCodeNotOwner, postErr.Code)

	// Unchanged in the store.
	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Message)
}

func TestUpdatePostNotFound(t *testing.T) {
	svc := NewPostService(newFakeRepo())

	_, err := svc.UpdatePost(context.Background(), uuid.New(), uuid.New(), model.UpdatePostRequest{
		Message: "whatever",
	})

	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, model.ErrCodePostNotFound, postErr.Code)
}

// =====================================================
// DELETE
// =====================================================

func TestDeletePost(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPostService(repo)
	author := uuid.New()

	created, err := svc.CreatePost(context.Background(), author, model.CreatePostRequest{
		Message: "to be removed",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), author, created.ID))
	assert.Equal(t, []uuid.UUID{created.ID}, repo.deleted)

	_, err = svc.GetPost(context.Background(), created.ID)
	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, model.ErrCodePostNotFound, postErr.Code)
}

func TestDeletePostNotOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := NewPostService(repo)

	created, err := svc.CreatePost(context.Background(), uuid.New(), model.CreatePostRequest{
		Message: "not yours",
	})
	require.NoError(t, err)

	err = svc.DeletePost(context.Background(), uuid.New(), created.ID)

	var postErr *model.PostError
	require.ErrorAs(t, err, &postErr)
	assert.Equal(t, model.ErrCodeNotOwner, postErr.Code)
	assert.Empty(t, repo.deleted)
}
