package service

import (
	"context"
	"testing"

	"vibeshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialService_FollowSelf(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 3, Username: username}, nil
	}

	svc := NewSocialService(users, noopFollowRepo())
	err := svc.Follow(context.Background(), 3, "me")
	assertValidationError(t, err)
}

func TestSocialService_FollowUnknownUser(t *testing.T) {
	svc := NewSocialService(noopUserRepo(), noopFollowRepo())
	err := svc.Follow(context.Background(), 1, "ghost")
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestSocialService_FollowResolvesTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 7, Username: username}, nil
	}

	var gotFollower, gotFollowee uint
	follows := noopFollowRepo()
	follows.followFn = func(_ context.Context, followerID, followeeID uint) error {
		gotFollower, gotFollowee = followerID, followeeID
		return nil
	}

	svc := NewSocialService(users, follows)
	require.NoError(t, svc.Follow(context.Background(), 2, "bob"))
	assert.Equal(t, uint(2), gotFollower)
	assert.Equal(t, uint(7), gotFollowee)
}

func TestSocialService_UnfollowSelf(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 4, Username: username}, nil
	}

	svc := NewSocialService(users, noopFollowRepo())
	err := svc.Unfollow(context.Background(), 4, "me")
	assertValidationError(t, err)
}

func TestSocialService_FollowersUnknownUser(t *testing.T) {
	svc := NewSocialService(noopUserRepo(), noopFollowRepo())
	_, err := svc.Followers(context.Background(), "ghost")
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestSocialService_Following(t *testing.T) {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 9, Username: username}, nil
	}
	follows := noopFollowRepo()
	follows.listFollowingFn = func(_ context.Context, userID uint) ([]models.UserSummary, error) {
		assert.Equal(t, uint(9), userID)
		return []models.UserSummary{{ID: 1, Username: "alice"}}, nil
	}

	svc := NewSocialService(users, follows)
	got, err := svc.Following(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].Username)
}
