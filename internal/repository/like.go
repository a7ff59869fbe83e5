package repository

import (
	"context"
	"errors"
	"time"

	"vibeshare/internal/cache"
	"vibeshare/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for post likes.
type LikeRepository interface {
	Toggle(ctx context.Context, userID uint, username string, postID uint) (liked bool, likeCount int, err error)
	ListByPostID(ctx context.Context, postID uint) ([]models.Like, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository returns a new LikeRepository implementation.
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like state for (userID, postID) and keeps posts.like_count
// in step with the likes table inside a single transaction. The insert uses
// ON CONFLICT DO NOTHING so two concurrent toggles cannot produce a duplicate
// row; whichever transaction loses the insert race takes the unlike branch.
func (r *likeRepository) Toggle(ctx context.Context, userID uint, username string, postID uint) (bool, int, error) {
	var liked bool
	var likeCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return models.NewNotFoundError("Post", postID)
		}

		res := tx.Exec(
			`INSERT INTO likes (user_id, post_id, username, created_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID, username, time.Now(),
		)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 1 {
			liked = true
			if err := tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return err
			}
		} else {
			liked = false
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Select("like_count").Scan(&likeCount).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return false, 0, err
		}
		return false, 0, models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, postID)
	return liked, likeCount, nil
}

func (r *likeRepository) ListByPostID(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

// DeleteByUserID removes all likes placed by a user and decrements the
// affected posts' like counters. Used by the account deletion cascade.
func (r *likeRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Like{}).
			Where("user_id = ?", userID).
			Pluck("post_id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) == 0 {
			return nil
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id IN ? AND like_count > 0", postIDs).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
