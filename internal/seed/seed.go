// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"vibeshare/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with fake users, posts, follows, likes,
// comments and favorites.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("SeedPassword12!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	genders := []models.Gender{models.GenderMale, models.GenderFemale, models.GenderOther, models.GenderUnspecified}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user := &models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:          fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password:       string(hashed),
			Name:           gofakeit.FirstName(),
			Surname:        gofakeit.LastName(),
			Gender:         genders[r.Intn(len(genders))],
			Bio:            gofakeit.Sentence(8),
			ProfilePicture: fmt.Sprintf("https://picsum.photos/seed/avatar-%s/400/400", gofakeit.UUID()),
			CoverPicture:   fmt.Sprintf("https://picsum.photos/seed/cover-%s/1200/400", gofakeit.UUID()),
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Title:    gofakeit.Sentence(6),
			Location: gofakeit.City(),
			UserID:   author.ID,
			// realistic created_at spread over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		mediaCount := 1 + r.Intn(3)
		for m := 0; m < mediaCount; m++ {
			post.Media = append(post.Media, models.MediaItem{
				Position: m,
				Kind:     models.MediaImage,
				URL:      fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			})
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}

	// Social mesh: every user follows a handful of others.
	for _, u := range users {
		for n := 0; n < 3+r.Intn(5); n++ {
			target := users[r.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			db.Exec(`INSERT INTO follows (follower_id, followee_id, created_at)
				 VALUES (?, ?, ?) ON CONFLICT (follower_id, followee_id) DO NOTHING`,
				u.ID, target.ID, time.Now())
		}
	}

	// Engagement: likes, comments and favorites.
	for _, p := range posts {
		for n := 0; n < r.Intn(8); n++ {
			u := users[r.Intn(len(users))]
			res := db.Exec(`INSERT INTO likes (user_id, post_id, username, created_at)
				 VALUES (?, ?, ?, ?) ON CONFLICT (user_id, post_id) DO NOTHING`,
				u.ID, p.ID, u.Username, time.Now())
			if res.Error == nil && res.RowsAffected == 1 {
				db.Model(&models.Post{}).Where("id = ?", p.ID).
					UpdateColumn("like_count", gorm.Expr("like_count + 1"))
			}
		}
		for n := 0; n < r.Intn(4); n++ {
			u := users[r.Intn(len(users))]
			db.Create(&models.Comment{
				PostID: p.ID,
				UserID: u.ID,
				Text:   gofakeit.Sentence(10),
			})
		}
		for n := 0; n < r.Intn(3); n++ {
			u := users[r.Intn(len(users))]
			db.Exec(`INSERT INTO favorites (user_id, post_id, created_at)
				 VALUES (?, ?, ?) ON CONFLICT (user_id, post_id) DO NOTHING`,
				u.ID, p.ID, time.Now())
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{"favorites", "follows", "likes", "comments", "media_items", "posts", "users"}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			return err
		}
	}
	return nil
}
