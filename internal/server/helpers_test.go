package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"vibeshare/internal/config"
	"vibeshare/internal/database"
	"vibeshare/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

const testJWTSecret = "test-secret-which-is-long-enough"

// newTestApp wires a full server against an in-memory SQLite database, with
// no Redis and no media host. Routes come from SetupRoutes, so auth and
// route ordering behave exactly like production.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		Env:       "test",
	}
	srv := NewServerWithDeps(cfg, db, nil, nil)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, srv
}

func jsonRequest(t *testing.T, method, path, token string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// signupUser registers a user through the API and returns their token.
func signupUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/auth/signup", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "SecurePass12!",
		"name":     "Test",
		"surname":  "User",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body.Token)
	return body.Token, body.User.ID
}

// createPostVia posts through the API and returns the created post.
func createPostVia(t *testing.T, app *fiber.App, token, title string) models.Post {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/posts/createPost", token, fiber.Map{
		"title":    title,
		"location": "Testville",
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	return post
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/x", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name   string
		url    string
		limit  int
		offset int
	}{
		{"Defaults", "/x", 20, 0},
		{"Explicit", "/x?limit=5&offset=10", 5, 10},
		{"Negative Limit", "/x?limit=-1", 20, 0},
		{"Negative Offset", "/x?offset=-5", 20, 0},
		{"Capped Limit", "/x?limit=1000", 100, 0},
		{"Garbage", "/x?limit=abc", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.url, nil), -1)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.limit, got.Limit)
			assert.Equal(t, tt.offset, got.Offset)
		})
	}
}

func TestParseFeedPagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/x", func(c *fiber.Ctx) error {
		got = parseFeedPagination(c)
		return c.SendStatus(http.StatusOK)
	})

	tests := []struct {
		name   string
		url    string
		limit  int
		offset int
	}{
		{"Defaults To Everything", "/x", -1, 0},
		{"Explicit", "/x?limit=5&offset=10", 5, 10},
		{"Zero Limit", "/x?limit=0", -1, 0},
		{"Negative Offset", "/x?offset=-5", -1, 0},
		{"Capped Limit", "/x?limit=1000", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.url, nil), -1)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.limit, got.Limit)
			assert.Equal(t, tt.offset, got.Offset)
		})
	}
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Not Found", models.NewNotFoundError("Post", 1), http.StatusNotFound},
		{"Validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"Unauthorized", models.NewUnauthorizedError("no"), http.StatusForbidden},
		{"Upstream", models.NewUpstreamError("ads", errors.New("down")), http.StatusBadGateway},
		{"Internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain Error", errors.New("anything"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, mapServiceError(tt.err))
		})
	}
}
