// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Gender is the set of accepted profile gender values.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnspecified:
		return true
	}
	return false
}

// User represents a user in the VibeShare application.
// Follow and favorite relations live in their own edge tables (Follow,
// Favorite); they are never embedded here.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Name           string         `json:"name"`
	Surname        string         `json:"surname"`
	Gender         Gender         `gorm:"default:unspecified" json:"gender"`
	Bio            string         `json:"bio"`
	ProfilePicture string         `json:"profilePicture"`
	CoverPicture   string         `json:"coverPicture"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// UserSummary is the projection returned by follower/following listings.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	ProfilePicture string `json:"profilePicture"`
}

// Summary returns the listing projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Surname:        u.Surname,
		ProfilePicture: u.ProfilePicture,
	}
}

// UserStats is the aggregate counters returned by GET /user/stats/:username.
type UserStats struct {
	PostCount      int64 `json:"postCount"`
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
	CommentCount   int64 `json:"commentCount"`
}
