package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Karan-RajKR/social-lite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		_, err := NewCommentService(noopCommentRepo()).CreateComment(ctx, models.Anonymous(), CreateCommentInput{PostID: 1, Content: "x"})
		assertUnauthorizedError(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := NewCommentService(noopCommentRepo()).CreateComment(ctx, alice, CreateCommentInput{PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := NewCommentService(noopCommentRepo()).CreateComment(ctx, alice, CreateCommentInput{
			PostID:  1,
			Content: strings.Repeat("x", 10001),
		})
		assertValidationError(t, err)
	})

	t.Run("post not found propagates repo error", func(t *testing.T) {
		t.Parallel()
		repo := noopCommentRepo()
		repo.createFn = func(_ context.Context, _ *models.Comment) (*models.CommentView, error) {
			return nil, models.NewNotFoundError("Post")
		}
		_, err := NewCommentService(repo).CreateComment(ctx, alice, CreateCommentInput{PostID: 5, Content: "x"})
		assertCode(t, err, models.CodeNotFound)
	})

	t.Run("authored by viewer", func(t *testing.T) {
		t.Parallel()
		view, err := NewCommentService(noopCommentRepo()).CreateComment(ctx, bob, CreateCommentInput{PostID: 5, Content: "nice"})
		require.NoError(t, err)
		assert.Equal(t, bob.ID, view.UserID)
		assert.Equal(t, uint(5), view.PostID)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	t.Parallel()
	list, err := NewCommentService(noopCommentRepo()).ListComments(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
