// Command seed populates the development database with fake data.
package main

import (
	"flag"
	"log"

	"vibeshare/internal/config"
	"vibeshare/internal/database"
	"vibeshare/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "number of users to create")
	numPosts := flag.Int("posts", 100, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing data first")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
