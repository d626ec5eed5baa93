package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPostAt(t *testing.T, db *gorm.DB, user *models.User, content string, at time.Time) *models.Post {
	t.Helper()
	p := &models.Post{UserID: user.ID, Content: content, CreatedAt: at}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestPostRepository_CreateReturnsAuthorView(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	repo := NewPostRepository(db)

	view, err := repo.Create(context.Background(), &models.Post{UserID: alice.ID, Content: "first"})
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "first", view.Content)
	assert.Zero(t, view.LikeCount)
	assert.Zero(t, view.CommentCount)
	assert.False(t, view.IsLiked)
}

func TestPostRepository_FeedOrderAndCounts(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	bob := testutil.CreateUser(t, db, "bob", "pw")
	carol := testutil.CreateUser(t, db, "carol", "pw")

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	older := createPostAt(t, db, alice, "older", base)
	tieA := createPostAt(t, db, bob, "tie a", base.Add(time.Minute))
	tieB := createPostAt(t, db, alice, "tie b", base.Add(time.Minute))

	likes := NewLikeRepository(db)
	ctx := context.Background()
	for _, u := range []*models.User{alice, bob, carol} {
		_, err := likes.Toggle(ctx, u.ID, older.ID)
		require.NoError(t, err)
	}
	_, err := likes.Toggle(ctx, bob.ID, tieB.ID)
	require.NoError(t, err)

	comments := NewCommentRepository(db)
	_, err = comments.Create(ctx, &models.Comment{PostID: older.ID, UserID: bob.ID, Content: "nice"})
	require.NoError(t, err)

	repo := NewPostRepository(db)

	feed, err := repo.Feed(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	// Newest first, equal timestamps by ascending id.
	assert.Equal(t, []uint{tieA.ID, tieB.ID, older.ID}, []uint{feed[0].ID, feed[1].ID, feed[2].ID})

	assert.Equal(t, int64(0), feed[0].LikeCount)
	assert.False(t, feed[0].IsLiked)
	assert.Equal(t, int64(1), feed[1].LikeCount)
	assert.True(t, feed[1].IsLiked)
	assert.Equal(t, int64(3), feed[2].LikeCount)
	assert.Equal(t, int64(1), feed[2].CommentCount)
	assert.True(t, feed[2].IsLiked)
	assert.Equal(t, "alice", feed[2].Username)

	anon, err := repo.Feed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, anon, 3)
	for _, v := range anon {
		assert.False(t, v.IsLiked)
	}
	assert.Equal(t, int64(3), anon[2].LikeCount)
}

func TestPostRepository_FeedEmpty(t *testing.T) {
	db := testutil.NewDB(t)

	feed, err := NewPostRepository(db).Feed(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestPostRepository_LikeCountTracksToggles(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	post := testutil.CreatePost(t, db, alice, "hi")
	likes := NewLikeRepository(db)
	ctx := context.Background()

	for i, want := range []int64{1, 0, 1} {
		_, err := likes.Toggle(ctx, alice.ID, post.ID)
		require.NoError(t, err)

		view, err := getPostView(db.WithContext(ctx), post.ID, alice.ID)
		require.NoError(t, err)
		live := countRows(t, db, &models.Like{}, "post_id = ?", post.ID)
		assert.Equal(t, want, view.LikeCount, "toggle %d", i)
		assert.Equal(t, live, view.LikeCount)
		assert.Equal(t, want == 1, view.IsLiked)
	}
}

func TestPostRepository_ListByAuthor(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	bob := testutil.CreateUser(t, db, "bob", "pw")

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	first := createPostAt(t, db, alice, "one", base)
	createPostAt(t, db, bob, "bob's", base.Add(time.Hour))
	second := createPostAt(t, db, alice, "two", base.Add(2*time.Hour))

	repo := NewPostRepository(db)
	posts, err := repo.ListByAuthor(context.Background(), alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	none, err := repo.ListByAuthor(context.Background(), 999, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGetPostView_NotFound(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := getPostView(db, 42, 0)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
