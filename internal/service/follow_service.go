package service

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// ToggleFollow flips whether the viewer follows username.
// Following yourself is rejected before any row is touched.
func (s *FollowService) ToggleFollow(ctx context.Context, viewer models.Viewer, username string) (models.FollowState, error) {
	if err := requireViewer(viewer); err != nil {
		return models.FollowState{}, err
	}
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return models.FollowState{}, err
	}
	if target.ID == viewer.ID {
		return models.FollowState{}, models.NewInvalidOperationError("Cannot follow yourself")
	}

	following, err := s.followRepo.Toggle(ctx, viewer.ID, target.ID)
	if err != nil {
		return models.FollowState{}, err
	}
	return models.FollowState{Following: following}, nil
}
