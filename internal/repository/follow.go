package repository

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository owns the follows table.
type FollowRepository interface {
	Toggle(ctx context.Context, followerID, followeeID uint) (bool, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle flips Follow(followerID, followeeID) and reports whether it now exists.
// Callers reject self-follows before reaching the store.
func (r *followRepository) Toggle(ctx context.Context, followerID, followeeID uint) (bool, error) {
	span, ctx := observability.StartRepositorySpan(ctx, "ToggleFollow", "follows")
	defer span.End()

	following, err := runToggle(ctx, r.db, toggleOps{
		kind:          observability.KindFollow,
		targetMissing: func() error { return models.NewNotFoundError("User") },
		exists: func(tx *gorm.DB) (bool, error) {
			return rowExists(tx, &models.User{}, "id = ?", followeeID)
		},
		remove: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&models.Follow{})
		},
		insert: func(tx *gorm.DB) *gorm.DB {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Follow{FollowerID: followerID, FolloweeID: followeeID})
		},
	})
	span.SetError(err)
	return following, err
}
