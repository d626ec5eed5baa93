package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/repository"
	"github.com/Karan-RajKR/social-lite/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// errInvalidCredentials is shared by unknown usernames and wrong passwords.
var errInvalidCredentials = models.NewValidationError("Invalid credentials")

type UserService struct {
	userRepo repository.UserRepository
	hashCost int
}

type RegisterInput struct {
	Username string
	Password string
}

type UpdateProfileInput struct {
	Bio    string
	Avatar string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo, hashCost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

// Register creates an account. A taken username fails with CONFLICT.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Username: username, Password: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials. Unknown users and bad passwords look the same to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, errInvalidCredentials
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// Me returns the viewer's own account.
func (s *UserService) Me(ctx context.Context, viewer models.Viewer) (*models.User, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, viewer.ID)
}

func (s *UserService) UpdateProfile(ctx context.Context, viewer models.Viewer, in UpdateProfileInput) (*models.User, error) {
	if err := requireViewer(viewer); err != nil {
		return nil, err
	}
	bio := strings.TrimSpace(in.Bio)
	avatar := strings.TrimSpace(in.Avatar)
	if err := validation.ValidateProfile(bio, avatar); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.userRepo.UpdateProfile(ctx, viewer.ID, bio, avatar)
}
