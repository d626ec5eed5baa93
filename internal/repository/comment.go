package repository

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.CommentView, error)
	ListByPost(ctx context.Context, postID uint) ([]models.CommentView, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func commentViews(db *gorm.DB) *gorm.DB {
	return db.Table("comments AS c").
		Select("c.id, c.post_id, c.user_id, c.content, c.created_at, u.username, u.avatar").
		Joins("JOIN users u ON u.id = c.user_id")
}

// Create inserts the comment after checking its post exists, then returns
// the stored row joined with its author.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (*models.CommentView, error) {
	var view models.CommentView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := rowExists(tx, &models.Post{}, "id = ?", comment.PostID)
		if err != nil {
			return err
		}
		if !ok {
			return models.NewNotFoundError("Post")
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return commentViews(tx).Where("c.id = ?", comment.ID).Take(&view).Error
	})
	if err != nil {
		return nil, storeError(err)
	}
	return &view, nil
}

// ListByPost returns comments oldest first. An unknown post has no comments.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	views := []models.CommentView{}
	err := commentViews(r.db.WithContext(ctx)).
		Where("c.post_id = ?", postID).
		Order("c.created_at ASC, c.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return views, nil
}
