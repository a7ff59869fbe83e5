package repository

import (
	"context"
	"time"

	"vibeshare/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for the social graph.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) error
	Unfollow(ctx context.Context, followerID, followeeID uint) error
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the directed edge follower -> followee. The insert uses
// ON CONFLICT DO NOTHING against the unique edge index, so repeated and
// concurrent follows collapse into a single row.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID, time.Now(),
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	return nil
}

// Unfollow removes the edge if present. Removing an absent edge is a no-op.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListFollowers returns summaries of the users following userID.
func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	var summaries []models.UserSummary
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.username, users.name, users.surname, users.profile_picture").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("users.username ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return summaries, nil
}

// ListFollowing returns summaries of the users userID follows.
func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	var summaries []models.UserSummary
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id, users.username, users.name, users.surname, users.profile_picture").
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return summaries, nil
}

// DeleteByUserID removes every edge touching the user, both the edges they
// created and the edges pointing at them. Used by the account deletion cascade.
func (r *followRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? OR followee_id = ?", userID, userID).
		Delete(&models.Follow{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
