package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vibeshare/internal/models"
	"vibeshare/internal/service"
)

// API talks to the VibeShare backend. Implemented by Client; declared as an
// interface so the Loader can be tested against a stub.
type API interface {
	FetchPosts(ctx context.Context) ([]models.Post, error)
	FetchFollowingPosts(ctx context.Context) ([]models.Post, error)
	FetchAds(ctx context.Context) ([]models.Ad, error)
	CreatePost(ctx context.Context, in service.CreatePostInput) (*models.Post, error)
	AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error)
	ToggleLike(ctx context.Context, postID uint) (*service.LikeResult, error)
	SavePost(ctx context.Context, postID uint) error
	UnsavePost(ctx context.Context, postID uint) error
}

// Client is the HTTP implementation of API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a Client for the given base URL and bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr models.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) FetchPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts/getAllPosts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) FetchFollowingPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts/following", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) FetchUserPosts(ctx context.Context, username string) ([]models.Post, error) {
	var posts []models.Post
	path := "/posts/user?username=" + url.QueryEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) FetchAds(ctx context.Context) ([]models.Ad, error) {
	var ads []models.Ad
	if err := c.do(ctx, http.MethodGet, "/api/ads", nil, &ads); err != nil {
		return nil, err
	}
	return ads, nil
}

func (c *Client) CreatePost(ctx context.Context, in service.CreatePostInput) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/posts/createPost", in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) AddComment(ctx context.Context, postID uint, text string) (*models.Comment, error) {
	body := map[string]any{"postId": postID, "text": text}
	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/posts/comment", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) ToggleLike(ctx context.Context, postID uint) (*service.LikeResult, error) {
	body := map[string]any{"postId": postID}
	var result service.LikeResult
	if err := c.do(ctx, http.MethodPost, "/posts/like", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) SavePost(ctx context.Context, postID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/user/favorites/%d", postID), nil, nil)
}

func (c *Client) UnsavePost(ctx context.Context, postID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/favorites/%d", postID), nil, nil)
}
