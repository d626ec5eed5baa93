package repository

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository builds public profile views.
type ProfileRepository interface {
	GetByUsername(ctx context.Context, username string, viewerID uint) (*models.ProfileView, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileQuery = `SELECT u.id, u.username, u.bio, u.avatar, u.created_at,
	(SELECT COUNT(*) FROM posts WHERE posts.user_id = u.id) AS post_count,
	(SELECT COUNT(*) FROM follows WHERE follows.followee_id = u.id) AS followers_count,
	(SELECT COUNT(*) FROM follows WHERE follows.follower_id = u.id) AS following_count,
	EXISTS (SELECT 1 FROM follows WHERE follows.follower_id = ? AND follows.followee_id = u.id) AS is_following
FROM users u
WHERE u.username = ?`

// GetByUsername returns the profile with live follow counts in a single statement.
func (r *profileRepository) GetByUsername(ctx context.Context, username string, viewerID uint) (*models.ProfileView, error) {
	span, ctx := observability.StartRepositorySpan(ctx, "Profile", "users")
	defer span.End()

	var views []models.ProfileView
	if err := r.db.WithContext(ctx).Raw(profileQuery, viewerID, username).Scan(&views).Error; err != nil {
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	if len(views) == 0 {
		return nil, models.NewNotFoundError("User")
	}
	return &views[0], nil
}
