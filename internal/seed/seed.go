package seed

import (
	"errors"
	"fmt"

	"github.com/Karan-RajKR/social-lite/internal/middleware"
	"github.com/Karan-RajKR/social-lite/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run. Field tags match the preset file format.
type Options struct {
	Users    int `yaml:"users"`
	Posts    int `yaml:"posts"`
	Likes    int `yaml:"likes"`
	Follows  int `yaml:"follows"`
	Comments int `yaml:"comments"`
	// MaxDays bounds how far back post timestamps are spread.
	MaxDays int `yaml:"max_days"`
	// FastHash uses the minimum bcrypt cost.
	FastHash   bool  `yaml:"fast_hash"`
	Clean      bool  `yaml:"clean"`
	RandomSeed int64 `yaml:"random_seed"`
}

// Summary reports how many rows a run created.
type Summary struct {
	Users    int
	Posts    int
	Likes    int
	Follows  int
	Comments int
}

// ErrNoUsers is returned when a run asks for content but no users.
var ErrNoUsers = errors.New("seed: at least one user is required")

// Seed populates the database according to opts.
func Seed(db *gorm.DB, opts Options) (Summary, error) {
	var sum Summary
	if opts.Users <= 0 && (opts.Posts > 0 || opts.Likes > 0 || opts.Follows > 0 || opts.Comments > 0) {
		return sum, ErrNoUsers
	}

	log := middleware.Logger.With("component", "seed")
	log.Info("seeding database", "users", opts.Users, "posts", opts.Posts, "likes", opts.Likes, "follows", opts.Follows, "comments", opts.Comments)

	if opts.Clean {
		if err := ClearAll(db); err != nil {
			return sum, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return sum, fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	log.Info("users created", "count", sum.Users)

	posts := make([]*models.Post, 0, opts.Posts)
	for i := 0; i < opts.Posts; i++ {
		p, err := f.CreatePost(users[f.pick(len(users))])
		if err != nil {
			return sum, fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, p)
	}
	sum.Posts = len(posts)
	log.Info("posts created", "count", sum.Posts)

	if len(posts) > 0 {
		n, err := fill(min(opts.Likes, len(users)*len(posts)), func() (bool, error) {
			return f.CreateLike(users[f.pick(len(users))], posts[f.pick(len(posts))])
		})
		if err != nil {
			return sum, fmt.Errorf("failed to create like: %w", err)
		}
		sum.Likes = n

		for i := 0; i < opts.Comments; i++ {
			if _, err := f.CreateComment(users[f.pick(len(users))], posts[f.pick(len(posts))]); err != nil {
				return sum, fmt.Errorf("failed to create comment: %w", err)
			}
			sum.Comments++
		}
	}

	if len(users) > 1 {
		n, err := fill(min(opts.Follows, len(users)*(len(users)-1)), func() (bool, error) {
			return f.CreateFollow(users[f.pick(len(users))], users[f.pick(len(users))])
		})
		if err != nil {
			return sum, fmt.Errorf("failed to create follow: %w", err)
		}
		sum.Follows = n
	}

	log.Info("seeding completed", "likes", sum.Likes, "follows", sum.Follows, "comments", sum.Comments)
	return sum, nil
}

// fill calls create until want rows exist or the attempt budget runs out.
// Random pairs collide, so the budget exceeds want.
func fill(want int, create func() (bool, error)) (int, error) {
	created := 0
	for attempts := 0; created < want && attempts < want*10+100; attempts++ {
		ok, err := create()
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// ClearAll deletes every row, children first.
func ClearAll(db *gorm.DB) error {
	all := db.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, m := range []any{&models.Comment{}, &models.Like{}, &models.Follow{}, &models.Post{}, &models.User{}} {
		if err := all.Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
