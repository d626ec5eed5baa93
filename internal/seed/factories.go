// Package seed creates demo data for development databases.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/Karan-RajKR/social-lite/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the password every seeded account shares.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db    *gorm.DB
	opts  Options
	faker *gofakeit.Faker
	hash  string
	seq   int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
// A zero RandomSeed seeds from the clock.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{db: db, opts: opts, faker: gofakeit.New(seed)}
}

func (f *Factory) passwordHash() (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	cost := bcrypt.DefaultCost
	if f.opts.FastHash {
		cost = bcrypt.MinCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return "", err
	}
	f.hash = string(h)
	return f.hash, nil
}

// username derives a valid, unique handle from a fake name.
func (f *Factory) username() string {
	f.seq++
	var b strings.Builder
	for _, r := range strings.ToLower(f.faker.Username()) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if len(base) < 3 {
		base = "user"
	}
	suffix := fmt.Sprintf("_%d", f.seq)
	if len(base)+len(suffix) > 30 {
		base = base[:30-len(suffix)]
	}
	return base + suffix
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := f.passwordHash()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: f.username(),
		Password: hash,
		Bio:      f.faker.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a post by user with a created_at spread over the last MaxDays.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.faker.Number(0, maxDays*24*60)) * time.Minute
	post := &models.Post{
		UserID:    user.ID,
		Content:   f.faker.Paragraph(1, 3, 12, " "),
		CreatedAt: time.Now().Add(-back),
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by user on post, after the post itself.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: f.faker.Sentence(8),
	}
	if since := time.Since(post.CreatedAt); since > time.Minute {
		comment.CreatedAt = post.CreatedAt.Add(time.Duration(f.faker.Number(1, int(since/time.Minute))) * time.Minute)
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike records that user likes post. It reports false when the like already existed.
func (f *Factory) CreateLike(user *models.User, post *models.Post) (bool, error) {
	res := f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: user.ID, PostID: post.ID})
	return res.RowsAffected == 1, res.Error
}

// CreateFollow records that follower follows followee. Self-follows are skipped.
func (f *Factory) CreateFollow(follower, followee *models.User) (bool, error) {
	if follower.ID == followee.ID {
		return false, nil
	}
	res := f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID})
	return res.RowsAffected == 1, res.Error
}

func (f *Factory) pick(n int) int {
	return f.faker.Number(0, n-1)
}
