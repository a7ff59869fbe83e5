// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a comment on a post. Comments are append-only through
// the API; the only removal path is the account-deletion cascade.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"date"`
}
