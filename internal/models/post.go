// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// MediaKind is the type of a media item attached to a post.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// ValidMediaKind reports whether k is an accepted media kind.
func ValidMediaKind(k MediaKind) bool {
	return k == MediaImage || k == MediaVideo
}

// Post represents a post in the VibeShare application.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title"`
	Location string `gorm:"not null" json:"location"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	// LikeCount is persisted and kept in step with the likes table by the
	// engagement service; it is never recomputed lazily.
	LikeCount int         `gorm:"not null;default:0" json:"likeCount"`
	Media     []MediaItem `gorm:"foreignKey:PostID" json:"media"`
	Comments  []Comment   `gorm:"foreignKey:PostID" json:"comments"`
	Likes     []Like      `gorm:"foreignKey:PostID" json:"likes"`
	// CommentsCount is not persisted; computed at query time.
	CommentsCount int            `gorm:"->" json:"comments_count"`
	CreatedAt     time.Time      `json:"date"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// MediaItem is one entry of a post's ordered media list. PublicID is the
// object name on the external media host, kept so account deletion can
// remove the hosted file.
type MediaItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"not null;index" json:"-"`
	Position int       `gorm:"not null;default:0" json:"-"`
	Kind     MediaKind `gorm:"not null" json:"type"`
	URL      string    `gorm:"not null" json:"url"`
	PublicID string    `json:"public_id,omitempty"`
}
