package server

import (
	"fmt"
	"net/http"
	"testing"

	"vibeshare/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUsers(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")
	signupUser(t, app, "alison")
	signupUser(t, app, "bob")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/user/search?q=ali", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []models.UserSummary
	decodeBody(t, resp, &results)
	require.Len(t, results, 2)
	usernames := []string{results[0].Username, results[1].Username}
	assert.ElementsMatch(t, []string{"alice", "alison"}, usernames)

	// A blank query is rejected rather than listing everyone.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/search", token, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetAllUsers(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")
	signupUser(t, app, "bob")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/user/all", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []models.UserSummary
	decodeBody(t, resp, &summaries)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.NotZero(t, s.ID)
		assert.NotEmpty(t, s.Username)
	}
}

func TestGetProfiles(t *testing.T) {
	app, _ := newTestApp(t)
	token, userID := signupUser(t, app, "alice")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/user/profile", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.User
	decodeBody(t, resp, &me)
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "alice", me.Username)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/user/%d", userID), token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var other models.User
	decodeBody(t, resp, &other)
	assert.Equal(t, "alice", other.Username)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/999", token, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/abc", token, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateMyProfile(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/user/profile", token, fiber.Map{
		"name": "Alice",
		"bio":  "hello world",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "hello world", updated.Bio)

	// Out-of-range fields are rejected.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/user/profile", token, fiber.Map{
		"gender": "robot",
	}), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateMyProfileUsername(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")
	signupUser(t, app, "bob")

	// Taking another user's name is rejected.
	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/user/profile", token, fiber.Map{
		"username": "bob",
	}), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/user/profile", token, fiber.Map{
		"username": "alicia",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, "alicia", updated.Username)

	// The rename is visible wherever the user is looked up by name.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/stats/alicia", token, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/stats/alice", token, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdatePictures(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/user/profile-picture", token, fiber.Map{
		"url": "http://img/avatar.png",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "http://img/avatar.png", user.ProfilePicture)
	assert.Empty(t, user.CoverPicture)

	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/user/cover-picture", token, fiber.Map{
		"url": "http://img/cover.png",
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &user)
	assert.Equal(t, "http://img/cover.png", user.CoverPicture)
	assert.Equal(t, "http://img/avatar.png", user.ProfilePicture)

	// A blank URL is a validation failure.
	resp, err = app.Test(jsonRequest(t, http.MethodPut, "/user/profile-picture", token, fiber.Map{}), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollowUnfollow(t *testing.T) {
	app, _ := newTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	signupUser(t, app, "bob")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/user/follow/bob", aliceToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Now following bob", body["message"])

	// Self-follow is rejected and unknown targets are 404.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/user/follow/alice", aliceToken, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/user/follow/ghost", aliceToken, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/user/unfollow/bob", aliceToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Unfollowed bob", body["message"])
}

func TestFollowListings(t *testing.T) {
	app, _ := newTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/user/follow/bob", aliceToken, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/followers/bob", bobToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var followers []models.UserSummary
	decodeBody(t, resp, &followers)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/following/alice", aliceToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var following []models.UserSummary
	decodeBody(t, resp, &following)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/followers/ghost", aliceToken, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFavoritesFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token, _ := signupUser(t, app, "alice")
	post := createPostVia(t, app, token, "keeper")
	favPath := fmt.Sprintf("/user/favorites/%d", post.ID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, favPath, token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Post saved", body["message"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/favorites/alice", token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var favorites []models.Post
	decodeBody(t, resp, &favorites)
	require.Len(t, favorites, 1)
	assert.Equal(t, "keeper", favorites[0].Title)

	resp, err = app.Test(jsonRequest(t, http.MethodDelete, favPath, token, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "Post unsaved", body["message"])

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/favorites/alice", token, nil), -1)
	require.NoError(t, err)
	decodeBody(t, resp, &favorites)
	assert.Empty(t, favorites)

	// Saving a post that does not exist is a 404.
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/user/favorites/999", token, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetUserStats(t *testing.T) {
	app, _ := newTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")

	createPostVia(t, app, aliceToken, "one")
	createPostVia(t, app, aliceToken, "two")

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/user/follow/alice", bobToken, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/stats/alice", aliceToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats models.UserStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(2), stats.PostCount)
	assert.Equal(t, int64(1), stats.FollowerCount)
	assert.Equal(t, int64(0), stats.FollowingCount)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/user/stats/ghost", aliceToken, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteAccount(t *testing.T) {
	app, _ := newTestApp(t)
	aliceToken, _ := signupUser(t, app, "alice")
	bobToken, _ := signupUser(t, app, "bob")
	createPostVia(t, app, aliceToken, "doomed")

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/user/deleteAccount", aliceToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Account deleted", body["message"])

	// The profile and its posts are gone for everyone else.
	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/posts/getAllPosts", bobToken, nil), -1)
	require.NoError(t, err)
	var posts []models.Post
	decodeBody(t, resp, &posts)
	assert.Empty(t, posts)

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/posts/user?username=alice", bobToken, nil), -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The freed username can be registered again.
	signupUser(t, app, "alice")
}
