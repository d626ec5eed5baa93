package service

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/repository"
	"github.com/Karan-RajKR/social-lite/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
}

type CreateCommentInput struct {
	PostID  uint
	Content string
}

func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// CreateComment appends a comment. An unknown post fails with NOT_FOUND.
func (s *CommentService) CreateComment(ctx context.Context, viewer models.Viewer, in CreateCommentInput) (*models.CommentView, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := validation.ValidateContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.commentRepo.Create(ctx, &models.Comment{
		PostID:  in.PostID,
		UserID:  viewer.ID,
		Content: in.Content,
	})
}

// ListComments returns the post's comments oldest first; unknown posts have none.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.CommentView, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
