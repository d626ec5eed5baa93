package service

import (
	"context"
	"testing"

	"github.com/Karan-RajKR/social-lite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followUsers() *userRepoStub {
	users := noopUserRepo()
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		switch username {
		case "alice":
			return &models.User{ID: alice.ID, Username: "alice"}, nil
		case "bob":
			return &models.User{ID: bob.ID, Username: "bob"}, nil
		}
		return nil, models.NewNotFoundError("User")
	}
	return users
}

func TestFollowService_ToggleFollow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		follows := noopToggleRepo()
		_, err := NewFollowService(follows, followUsers()).ToggleFollow(ctx, models.Anonymous(), "bob")
		assertUnauthorizedError(t, err)
		assert.Zero(t, follows.calls)
	})

	t.Run("self follow", func(t *testing.T) {
		t.Parallel()
		follows := noopToggleRepo()
		_, err := NewFollowService(follows, followUsers()).ToggleFollow(ctx, alice, "alice")
		assertCode(t, err, models.CodeInvalidOperation)
		assert.Equal(t, "Cannot follow yourself", err.Error())
		assert.Zero(t, follows.calls)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		follows := noopToggleRepo()
		_, err := NewFollowService(follows, followUsers()).ToggleFollow(ctx, alice, "ghost")
		assertCode(t, err, models.CodeNotFound)
		assert.Zero(t, follows.calls)
	})

	t.Run("toggles follower to followee", func(t *testing.T) {
		t.Parallel()
		follows := &toggleRepoStub{toggleFn: func(_ context.Context, followerID, followeeID uint) (bool, error) {
			assert.Equal(t, alice.ID, followerID)
			assert.Equal(t, bob.ID, followeeID)
			return true, nil
		}}
		state, err := NewFollowService(follows, followUsers()).ToggleFollow(ctx, alice, "bob")
		require.NoError(t, err)
		assert.Equal(t, models.FollowState{Following: true}, state)
	})
}

func TestProfileService_Profile(t *testing.T) {
	t.Parallel()
	repo := profileRepoFunc(func(_ context.Context, username string, viewerID uint) (*models.ProfileView, error) {
		if username != "alice" {
			return nil, models.NewNotFoundError("User")
		}
		return &models.ProfileView{Username: username, IsFollowing: viewerID == bob.ID}, nil
	})
	svc := NewProfileService(repo)

	p, err := svc.Profile(context.Background(), "alice", bob)
	require.NoError(t, err)
	assert.True(t, p.IsFollowing)

	p, err = svc.Profile(context.Background(), "alice", models.Anonymous())
	require.NoError(t, err)
	assert.False(t, p.IsFollowing)

	_, err = svc.Profile(context.Background(), "ghost", bob)
	assertCode(t, err, models.CodeNotFound)
}

type profileRepoFunc func(context.Context, string, uint) (*models.ProfileView, error)

func (f profileRepoFunc) GetByUsername(ctx context.Context, username string, viewerID uint) (*models.ProfileView, error) {
	return f(ctx, username, viewerID)
}
