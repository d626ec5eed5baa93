// Command main fills a development database with demo users, posts and relationships.
package main

import (
	"flag"
	"log"

	"github.com/Karan-RajKR/social-lite/internal/config"
	"github.com/Karan-RajKR/social-lite/internal/database"
	"github.com/Karan-RajKR/social-lite/internal/middleware"
	"github.com/Karan-RajKR/social-lite/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numLikes := flag.Int("likes", 800, "Number of likes to create")
	numFollows := flag.Int("follows", 300, "Number of follows to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fast := flag.Bool("fast", false, "Hash passwords with the minimum bcrypt cost")
	preset := flag.String("preset", "", "YAML preset file; its values override the flags")
	flag.Parse()

	opts := seed.Options{
		Users:    *numUsers,
		Posts:    *numPosts,
		Likes:    *numLikes,
		Follows:  *numFollows,
		Comments: *numComments,
		Clean:    *shouldClean,
		FastHash: *fast,
	}
	if *preset != "" {
		var err error
		if opts, err = seed.LoadPreset(*preset, opts); err != nil {
			log.Fatalf("Failed to load preset %s: %v", *preset, err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.SetupLogger(cfg.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sum, err := seed.Seed(db, opts)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, %d likes, %d follows, %d comments",
		sum.Users, sum.Posts, sum.Likes, sum.Follows, sum.Comments)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
