package service

import (
	"context"
	"strings"

	"vibeshare/internal/cache"
	"vibeshare/internal/models"
	"vibeshare/internal/repository"
	"vibeshare/internal/validation"
)

// UserService handles profiles, favorites and account lifecycle.
type UserService struct {
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	likeRepo     repository.LikeRepository
	commentRepo  repository.CommentRepository
	followRepo   repository.FollowRepository
	favoriteRepo repository.FavoriteRepository
	posts        *PostService
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	favoriteRepo repository.FavoriteRepository,
	posts *PostService,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		postRepo:     postRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
		followRepo:   followRepo,
		favoriteRepo: favoriteRepo,
		posts:        posts,
	}
}

// UpdateProfileInput carries the editable profile fields. Empty fields are
// left untouched.
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Name     string
	Surname  string
	Bio      string
	Gender   models.Gender
}

const (
	maxBioLen  = 500
	maxNameLen = 60
)

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers matches the query against username, name and surname.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.userRepo.Search(ctx, query, limit, offset)
}

// UpdateProfile applies the editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		taken, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, models.NewValidationError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 60 characters)")
		}
		user.Name = in.Name
	}
	if in.Surname != "" {
		if len(in.Surname) > maxNameLen {
			return nil, models.NewValidationError("Surname too long (max 60 characters)")
		}
		user.Surname = in.Surname
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Gender != "" {
		if !models.ValidGender(in.Gender) {
			return nil, models.NewValidationError("Invalid gender value")
		}
		user.Gender = in.Gender
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfilePicture replaces the user's avatar URL.
func (s *UserService) SetProfilePicture(ctx context.Context, userID uint, url string) (*models.User, error) {
	return s.setPicture(ctx, userID, url, false)
}

// SetCoverPicture replaces the user's cover image URL.
func (s *UserService) SetCoverPicture(ctx context.Context, userID uint, url string) (*models.User, error) {
	return s.setPicture(ctx, userID, url, true)
}

func (s *UserService) setPicture(ctx context.Context, userID uint, url string, cover bool) (*models.User, error) {
	if strings.TrimSpace(url) == "" {
		return nil, models.NewValidationError("Image url is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cover {
		user.CoverPicture = url
	} else {
		user.ProfilePicture = url
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Stats returns aggregate profile counters, cached briefly.
func (s *UserService) Stats(ctx context.Context, username string) (*models.UserStats, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	var stats models.UserStats
	err = cache.Aside(ctx, cache.UserStatsKey(username), &stats, cache.UserStatsTTL, func() error {
		loaded, err := s.userRepo.Stats(ctx, user.ID)
		if err != nil {
			return err
		}
		stats = *loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// AddFavorite saves a post for the user. Saving twice is a no-op.
func (s *UserService) AddFavorite(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(ctx, userID, postID)
}

// RemoveFavorite unsaves a post. Removing an absent favorite is a no-op.
func (s *UserService) RemoveFavorite(ctx context.Context, userID, postID uint) error {
	return s.favoriteRepo.Remove(ctx, userID, postID)
}

// FavoritesByUsername lists the posts a user has saved, newest first.
func (s *UserService) FavoritesByUsername(ctx context.Context, username string) ([]*models.Post, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.favoriteRepo.ListPosts(ctx, user.ID)
}

// DeleteAccount removes the user and every trace of them: their posts with
// all dependent rows and hosted media, their likes and comments on other
// posts, both directions of their follow edges and their favorites. The
// order matters: content referencing other users' posts goes first so the
// counters they maintain stay correct.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.likeRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.followRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.favoriteRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}

	// Posts go through the post service so hosted media is removed too.
	posts, err := s.postRepo.ListByUserID(ctx, userID, 10000, 0)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if err := s.posts.DeletePost(ctx, userID, p.ID); err != nil {
			return err
		}
	}

	return s.userRepo.Delete(ctx, userID)
}
