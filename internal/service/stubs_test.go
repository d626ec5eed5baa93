package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Karan-RajKR/social-lite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateProfileFn func(context.Context, uint, string, string) (*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, id uint, bio, avatar string) (*models.User, error) {
	return s.updateProfileFn(ctx, id, bio, avatar)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) {
			return nil, models.NewNotFoundError("User")
		},
		createFn: func(_ context.Context, u *models.User) error { u.ID = 1; return nil },
		updateProfileFn: func(_ context.Context, id uint, bio, avatar string) (*models.User, error) {
			return &models.User{ID: id, Bio: bio, Avatar: avatar}, nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) (*models.PostView, error)
	feedFn         func(context.Context, uint) ([]models.PostView, error)
	listByAuthorFn func(context.Context, uint, uint) ([]models.PostView, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) (*models.PostView, error) {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID uint) ([]models.PostView, error) {
	return s.feedFn(ctx, viewerID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID, viewerID uint) ([]models.PostView, error) {
	return s.listByAuthorFn(ctx, authorID, viewerID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) (*models.PostView, error) {
			return &models.PostView{ID: 1, UserID: p.UserID, Content: p.Content}, nil
		},
		feedFn:         func(_ context.Context, _ uint) ([]models.PostView, error) { return []models.PostView{}, nil },
		listByAuthorFn: func(_ context.Context, _, _ uint) ([]models.PostView, error) { return []models.PostView{}, nil },
	}
}

// toggleRepoStub stands in for both LikeRepository and FollowRepository.
type toggleRepoStub struct {
	toggleFn func(context.Context, uint, uint) (bool, error)
	calls    int
}

func (s *toggleRepoStub) Toggle(ctx context.Context, a, b uint) (bool, error) {
	s.calls++
	return s.toggleFn(ctx, a, b)
}

func noopToggleRepo() *toggleRepoStub {
	return &toggleRepoStub{toggleFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil }}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) (*models.CommentView, error)
	listByPostFn func(context.Context, uint) ([]models.CommentView, error)
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) (*models.CommentView, error) {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.CommentView, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) (*models.CommentView, error) {
			return &models.CommentView{ID: 1, PostID: c.PostID, UserID: c.UserID, Content: c.Content}, nil
		},
		listByPostFn: func(_ context.Context, _ uint) ([]models.CommentView, error) { return []models.CommentView{}, nil },
	}
}

var (
	alice = models.Viewer{ID: 1, Username: "alice"}
	bob   = models.Viewer{ID: 2, Username: "bob"}
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeUnauthorized)
}
