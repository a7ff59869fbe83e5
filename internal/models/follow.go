package models

import "time"

// Follow is one directed edge of the social graph: FollowerID follows
// FolloweeID. The pair is unique, so follow/unfollow are idempotent
// set operations. Both "sides" of the relation are the same row, so
// there is no two-sided write to get out of sync.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followee_id"`
	CreatedAt  time.Time `json:"-"`
}

// Favorite marks a post saved by a user. The pair is unique; add/remove are
// idempotent set operations.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_post;index" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"-"`
}
