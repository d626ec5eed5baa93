package service

import (
	"context"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/repository"
)

// FeedService produces viewer-relative post listings.
type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{postRepo: postRepo, userRepo: userRepo}
}

// Feed lists every post newest first. Anonymous viewers get is_liked=false everywhere.
func (s *FeedService) Feed(ctx context.Context, viewer models.Viewer) ([]models.PostView, error) {
	return s.postRepo.Feed(ctx, viewer.ID)
}

// UserPosts lists one author's posts in feed order.
func (s *FeedService) UserPosts(ctx context.Context, username string, viewer models.Viewer) ([]models.PostView, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByAuthor(ctx, author.ID, viewer.ID)
}
