// Package service contains the application's business logic layer.
package service

import (
	"context"

	"vibeshare/internal/models"
	"vibeshare/internal/repository"
)

// SocialService manages the follow graph. Targets are addressed by username,
// matching the public API.
type SocialService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewSocialService returns a new SocialService.
func NewSocialService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *SocialService {
	return &SocialService{userRepo: userRepo, followRepo: followRepo}
}

func (s *SocialService) resolve(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return user, nil
}

// Follow makes followerID follow the user named username. Following a user
// twice is a no-op; following yourself is rejected.
func (s *SocialService) Follow(ctx context.Context, followerID uint, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return models.NewValidationError("You cannot follow yourself")
	}
	return s.followRepo.Follow(ctx, followerID, target.ID)
}

// Unfollow removes the follow edge if it exists.
func (s *SocialService) Unfollow(ctx context.Context, followerID uint, username string) error {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return err
	}
	if target.ID == followerID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	return s.followRepo.Unfollow(ctx, followerID, target.ID)
}

// Followers lists the users following username.
func (s *SocialService) Followers(ctx context.Context, username string) ([]models.UserSummary, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, target.ID)
}

// Following lists the users username follows.
func (s *SocialService) Following(ctx context.Context, username string) ([]models.UserSummary, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, target.ID)
}

// IsFollowing reports whether followerID follows username.
func (s *SocialService) IsFollowing(ctx context.Context, followerID uint, username string) (bool, error) {
	target, err := s.resolve(ctx, username)
	if err != nil {
		return false, err
	}
	return s.followRepo.IsFollowing(ctx, followerID, target.ID)
}
