package service

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/repository"
	"github.com/Karan-RajKR/social-lite/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) *PostService {
	return &PostService{postRepo: postRepo, likeRepo: likeRepo}
}

// CreatePost stores a post by the viewer and returns it as the author sees it.
func (s *PostService) CreatePost(ctx context.Context, viewer models.Viewer, content string) (*models.PostView, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	if err := validation.ValidateContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.postRepo.Create(ctx, &models.Post{UserID: viewer.ID, Content: content})
}

// ToggleLike flips the viewer's like on postID and returns the final state.
func (s *PostService) ToggleLike(ctx context.Context, viewer models.Viewer, postID uint) (models.LikeState, error) {
	if err := requireViewer(viewer); err != nil {
		return models.LikeState{}, err
	}
	liked, err := s.likeRepo.Toggle(ctx, viewer.ID, postID)
	if err != nil {
		return models.LikeState{}, err
	}
	return models.LikeState{Liked: liked}, nil
}
