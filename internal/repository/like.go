package repository

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository owns the likes table. Rows are only created or removed by Toggle.
type LikeRepository interface {
	Toggle(ctx context.Context, userID, postID uint) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the like for (userID, postID) and reports whether it now exists.
// A missing post yields NOT_FOUND and no row.
func (r *likeRepository) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	span, ctx := observability.StartRepositorySpan(ctx, "ToggleLike", "likes")
	defer span.End()

	liked, err := runToggle(ctx, r.db, toggleOps{
		kind:          observability.KindLike,
		targetMissing: func() error { return models.NewNotFoundError("Post") },
		exists: func(tx *gorm.DB) (bool, error) {
			return rowExists(tx, &models.Post{}, "id = ?", postID)
		},
		remove: func(tx *gorm.DB) *gorm.DB {
			return tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		},
		insert: func(tx *gorm.DB) *gorm.DB {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.Like{UserID: userID, PostID: postID})
		},
	})
	span.SetError(err)
	return liked, err
}
