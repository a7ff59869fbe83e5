package repository

import (
	"context"
	"time"

	"vibeshare/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository defines persistence operations for saved posts.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, postID uint) error
	Remove(ctx context.Context, userID, postID uint) error
	IsFavorite(ctx context.Context, userID, postID uint) (bool, error)
	ListPostIDs(ctx context.Context, userID uint) ([]uint, error)
	ListPosts(ctx context.Context, userID uint) ([]*models.Post, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add marks the post as saved. Saving an already saved post is a no-op.
func (r *favoriteRepository) Add(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO favorites (user_id, post_id, created_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID, time.Now(),
	)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	return nil
}

// Remove unsaves the post. Removing an absent favorite is a no-op.
func (r *favoriteRepository) Remove(ctx context.Context, userID, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Favorite{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *favoriteRepository) IsFavorite(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *favoriteRepository) ListPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("post_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ListPosts returns the user's saved posts, newest post first.
func (r *favoriteRepository) ListPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Select("posts.*, "+
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count").
		Joins("JOIN favorites ON favorites.post_id = posts.id").
		Where("favorites.user_id = ?", userID).
		Preload("User").
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User").
		Preload("Likes").
		Order("posts.created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// DeleteByUserID removes every favorite the user placed. Used by the account
// deletion cascade; favorites pointing at the user's own posts are removed by
// the post cascade.
func (r *favoriteRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Favorite{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
