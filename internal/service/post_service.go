package service

import (
	"context"
	"log/slog"
	"strings"

	"vibeshare/internal/middleware"
	"vibeshare/internal/models"
	"vibeshare/internal/repository"
)

// MediaRemover deletes an object from the external media host. Implemented
// by MediaService; declared here so post deletion can remove hosted files
// without depending on the concrete uploader.
type MediaRemover interface {
	Remove(ctx context.Context, publicID string) error
}

// PostService handles post creation, feeds and deletion.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	media    MediaRemover
}

// NewPostService returns a new PostService. media may be nil, in which case
// hosted files are left behind on post deletion.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, media MediaRemover) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo, media: media}
}

// MediaInput is one media entry of a new post, in display order.
type MediaInput struct {
	Kind     models.MediaKind `json:"type"`
	URL      string           `json:"url"`
	PublicID string           `json:"public_id"`
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	Title    string       `json:"title"`
	Location string       `json:"location"`
	Media    []MediaInput `json:"media"`
}

const (
	maxTitleLen    = 300
	maxLocationLen = 120
	maxMediaItems  = 10
)

// CreatePost validates the input and stores the post with its media list.
func (s *PostService) CreatePost(ctx context.Context, userID uint, in CreatePostInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Location == "" {
		return nil, models.NewValidationError("Location is required")
	}
	if len(in.Location) > maxLocationLen {
		return nil, models.NewValidationError("Location too long (max 120 characters)")
	}
	if len(in.Media) > maxMediaItems {
		return nil, models.NewValidationError("Too many media items (max 10)")
	}
	for _, m := range in.Media {
		if !models.ValidMediaKind(m.Kind) {
			return nil, models.NewValidationError("Media type must be image or video")
		}
		if strings.TrimSpace(m.URL) == "" {
			return nil, models.NewValidationError("Media url is required")
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    in.Title,
		Location: in.Location,
		UserID:   userID,
	}
	for i, m := range in.Media {
		post.Media = append(post.Media, models.MediaItem{
			Position: i,
			Kind:     m.Kind,
			URL:      m.URL,
			PublicID: m.PublicID,
		})
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	post.User = *user
	return post, nil
}

// Feed returns the global feed, newest first.
func (s *PostService) Feed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// FollowingFeed returns the newest posts from users the caller follows.
func (s *PostService) FollowingFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListFollowingFeed(ctx, userID, limit, offset)
}

// PostsByUsername returns a user's posts, newest first.
func (s *PostService) PostsByUsername(ctx context.Context, username string, limit, offset int) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.postRepo.ListByUserID(ctx, user.ID, limit, offset)
}

// GetPost returns a single post with its relations.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes the caller's post together with its likes, comments,
// favorites and hosted media. Only the author may delete a post.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	// Hosted files are removed best-effort; a failure must not leave the
	// post half-deleted in the database.
	if s.media != nil {
		for _, m := range post.Media {
			if m.PublicID == "" {
				continue
			}
			if err := s.media.Remove(ctx, m.PublicID); err != nil {
				middleware.Logger.WarnContext(ctx, "failed to remove hosted media",
					slog.String("public_id", m.PublicID),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	return s.postRepo.Delete(ctx, postID)
}
