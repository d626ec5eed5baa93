package service

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/repository"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

func (s *ProfileService) Profile(ctx context.Context, username string, viewer models.Viewer) (*models.ProfileView, error) {
	return s.profileRepo.GetByUsername(ctx, username, viewer.ID)
}
