package repository

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/observability"

	"gorm.io/gorm"
)

// PostRepository reads and writes posts. Reads return PostViews annotated
// with live counts for the requesting viewer.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.PostView, error)
	Feed(ctx context.Context, viewerID uint) ([]models.PostView, error)
	ListByAuthor(ctx context.Context, authorID uint, viewerID uint) ([]models.PostView, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// postViewColumns selects a post, its author and the aggregated counts.
// Joined against grouped derived tables so each request makes one pass
// over likes and comments instead of a sub-select per row.
const postViewColumns = "p.id, p.user_id, p.content, p.created_at, " +
	"u.username, u.avatar, " +
	"COALESCE(lc.cnt, 0) AS like_count, " +
	"COALESCE(cc.cnt, 0) AS comment_count, " +
	"(ml.post_id IS NOT NULL) AS is_liked"

// postViews builds the base aggregation query. viewerID 0 never matches a
// like row, so anonymous viewers see is_liked=false.
func postViews(db *gorm.DB, viewerID uint) *gorm.DB {
	return db.Table("posts AS p").
		Select(postViewColumns).
		Joins("JOIN users u ON u.id = p.user_id").
		Joins("LEFT JOIN (SELECT post_id, COUNT(*) AS cnt FROM likes GROUP BY post_id) lc ON lc.post_id = p.id").
		Joins("LEFT JOIN (SELECT post_id, COUNT(*) AS cnt FROM comments GROUP BY post_id) cc ON cc.post_id = p.id").
		Joins("LEFT JOIN likes ml ON ml.post_id = p.id AND ml.user_id = ?", viewerID)
}

// Create inserts the post and returns it as its author sees it.
func (r *postRepository) Create(ctx context.Context, post *models.Post) (*models.PostView, error) {
	var view *models.PostView
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		v, err := getPostView(tx, post.ID, post.UserID)
		if err != nil {
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return view, nil
}

func getPostView(db *gorm.DB, id uint, viewerID uint) (*models.PostView, error) {
	var views []models.PostView
	if err := postViews(db, viewerID).Where("p.id = ?", id).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, models.NewNotFoundError("Post")
	}
	return &views[0], nil
}

// Feed returns every post, newest first, ties broken by ascending id.
func (r *postRepository) Feed(ctx context.Context, viewerID uint) ([]models.PostView, error) {
	span, ctx := observability.StartRepositorySpan(ctx, "Feed", "posts")
	defer span.End()

	views := []models.PostView{}
	err := postViews(r.db.WithContext(ctx), viewerID).
		Order("p.created_at DESC, p.id ASC").
		Scan(&views).Error
	if err != nil {
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	return views, nil
}

// ListByAuthor returns the author's posts in feed order.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, viewerID uint) ([]models.PostView, error) {
	span, ctx := observability.StartRepositorySpan(ctx, "ListByAuthor", "posts")
	defer span.End()

	views := []models.PostView{}
	err := postViews(r.db.WithContext(ctx), viewerID).
		Where("p.user_id = ?", authorID).
		Order("p.created_at DESC, p.id ASC").
		Scan(&views).Error
	if err != nil {
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	return views, nil
}
