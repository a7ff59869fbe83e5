package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"vibeshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePostValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo(), nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"Missing Title", CreatePostInput{Location: "here"}},
		{"Blank Title", CreatePostInput{Title: "   ", Location: "here"}},
		{"Title Too Long", CreatePostInput{Title: strings.Repeat("x", 301), Location: "here"}},
		{"Missing Location", CreatePostInput{Title: "hello"}},
		{"Location Too Long", CreatePostInput{Title: "hello", Location: strings.Repeat("x", 121)}},
		{"Bad Media Kind", CreatePostInput{Title: "hello", Location: "here",
			Media: []MediaInput{{Kind: "gif", URL: "http://x"}}}},
		{"Missing Media URL", CreatePostInput{Title: "hello", Location: "here",
			Media: []MediaInput{{Kind: models.MediaImage}}}},
		{"Too Many Media", CreatePostInput{Title: "hello", Location: "here",
			Media: make([]MediaInput, 11)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, 1, tt.input)
			assertValidationError(t, err)
		})
	}
}

func TestPostService_CreatePost(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}

	var created *models.Post
	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 1
		created = p
		return nil
	}

	svc := NewPostService(posts, users, nil)
	post, err := svc.CreatePost(context.Background(), 1, CreatePostInput{
		Title:    "  Sunset  ",
		Location: "Lisbon",
		Media: []MediaInput{
			{Kind: models.MediaImage, URL: "http://img/1", PublicID: "a"},
			{Kind: models.MediaVideo, URL: "http://vid/2", PublicID: "b"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Sunset", post.Title)
	assert.Equal(t, "alice", post.User.Username)
	// Media keeps its submitted order via positions.
	require.Len(t, post.Media, 2)
	assert.Equal(t, 0, post.Media[0].Position)
	assert.Equal(t, 1, post.Media[1].Position)
}

func TestPostService_PostsByUsernameUnknown(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo(), nil)
	_, err := svc.PostsByUsername(context.Background(), "ghost", 20, 0)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestPostService_DeletePostNotOwner(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2}, nil
	}

	svc := NewPostService(posts, noopUserRepo(), nil)
	err := svc.DeletePost(context.Background(), 1, 10)
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

type removerStub struct {
	removed []string
	err     error
}

func (r *removerStub) Remove(_ context.Context, publicID string) error {
	r.removed = append(r.removed, publicID)
	return r.err
}

func TestPostService_DeletePostRemovesHostedMedia(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{
			ID:     id,
			UserID: 1,
			Media: []models.MediaItem{
				{PublicID: "obj-1"},
				{URL: "http://external/not-hosted"},
				{PublicID: "obj-2"},
			},
		}, nil
	}
	deleted := false
	posts.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	remover := &removerStub{}
	svc := NewPostService(posts, noopUserRepo(), remover)
	require.NoError(t, svc.DeletePost(context.Background(), 1, 10))
	assert.True(t, deleted)
	// Only items with a hosted object are removed.
	assert.Equal(t, []string{"obj-1", "obj-2"}, remover.removed)
}

func TestPostService_DeletePostMediaRemovalFailureIsNotFatal(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1, Media: []models.MediaItem{{PublicID: "obj-1"}}}, nil
	}
	deleted := false
	posts.deleteFn = func(context.Context, uint) error {
		deleted = true
		return nil
	}

	svc := NewPostService(posts, noopUserRepo(), &removerStub{err: errors.New("host down")})
	require.NoError(t, svc.DeletePost(context.Background(), 1, 10))
	assert.True(t, deleted)
}
