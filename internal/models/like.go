package models

import "time"

// Like represents a user's like on a post. The (UserID, PostID) pair is
// unique, giving the one-like-per-user-per-post set semantics. Username is
// denormalized from the liking user at toggle time.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"-"`
	Username  string    `gorm:"not null" json:"username"`
	CreatedAt time.Time `json:"-"`
}
