package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestLikeRepository_ToggleTwiceRestoresState(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	bob := testutil.CreateUser(t, db, "bob", "pw")
	post := testutil.CreatePost(t, db, bob, "hello")
	repo := NewLikeRepository(db)
	ctx := context.Background()

	liked, err := repo.Toggle(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), countRows(t, db, &models.Like{}, "user_id = ? AND post_id = ?", alice.ID, post.ID))

	liked, err = repo.Toggle(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, countRows(t, db, &models.Like{}, "user_id = ? AND post_id = ?", alice.ID, post.ID))
}

func TestLikeRepository_ToggleMissingPost(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	repo := NewLikeRepository(db)

	_, err := repo.Toggle(context.Background(), alice.ID, 404)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Zero(t, countRows(t, db, &models.Like{}, "1 = 1"))
}

// NewDB uses one pooled connection, so these goroutines queue on the pool.
// They check the reported state against the final row, not the lost-insert
// retry, which the sqlmock tests below drive directly.
func TestLikeRepository_ConcurrentEvenTogglesRestoreState(t *testing.T) {
	for _, startLiked := range []bool{false, true} {
		db := testutil.NewDB(t)
		alice := testutil.CreateUser(t, db, "alice", "pw")
		post := testutil.CreatePost(t, db, alice, "hello")
		repo := NewLikeRepository(db)
		ctx := context.Background()

		if startLiked {
			_, err := repo.Toggle(ctx, alice.ID, post.ID)
			require.NoError(t, err)
		}

		const n = 20
		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				_, err := repo.Toggle(ctx, alice.ID, post.ID)
				return err
			})
		}
		require.NoError(t, g.Wait())

		rows := countRows(t, db, &models.Like{}, "user_id = ? AND post_id = ?", alice.ID, post.ID)
		assert.LessOrEqual(t, rows, int64(1))
		assert.Equal(t, startLiked, rows == 1)
	}
}

// Several connections on one SQLite file. Each toggle runs on its own
// connection, and SQLite serializes the write transactions between them.
func TestLikeRepository_ConcurrentTogglesAcrossConnections(t *testing.T) {
	tests := []struct {
		name    string
		toggles int
		want    int64
	}{
		{"even", 32, 0},
		{"odd", 33, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewFileDB(t, 4)
			alice := testutil.CreateUser(t, db, "alice", "pw")
			post := testutil.CreatePost(t, db, alice, "hello")
			repo := NewLikeRepository(db)

			var likedCount atomic.Int64
			var g errgroup.Group
			for i := 0; i < tt.toggles; i++ {
				g.Go(func() error {
					liked, err := repo.Toggle(context.Background(), alice.ID, post.ID)
					if liked {
						likedCount.Add(1)
					}
					return err
				})
			}
			require.NoError(t, g.Wait())

			assert.Equal(t, tt.want, countRows(t, db, &models.Like{}, "user_id = ? AND post_id = ?", alice.ID, post.ID))
			// Serialized flips alternate on, off, on, ...
			assert.Equal(t, int64(tt.toggles+1)/2, likedCount.Load())
		})
	}
}

func TestFollowRepository_Toggle(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	bob := testutil.CreateUser(t, db, "bob", "pw")
	repo := NewFollowRepository(db)
	ctx := context.Background()

	following, err := repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	assert.Equal(t, int64(1), countRows(t, db, &models.Follow{}, "follower_id = ? AND followee_id = ?", alice.ID, bob.ID))
	assert.Zero(t, countRows(t, db, &models.Follow{}, "follower_id = ? AND followee_id = ?", bob.ID, alice.ID),
		"follows are directional")

	following, err = repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
	assert.Zero(t, countRows(t, db, &models.Follow{}, "1 = 1"))
}

func TestFollowRepository_ToggleMissingUser(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")

	_, err := NewFollowRepository(db).Toggle(context.Background(), alice.ID, 999)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestFollowRepository_ConcurrentEvenToggles(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "pw")
	bob := testutil.CreateUser(t, db, "bob", "pw")
	repo := NewFollowRepository(db)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := repo.Toggle(context.Background(), alice.ID, bob.ID)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Zero(t, countRows(t, db, &models.Follow{}, "follower_id = ? AND followee_id = ?", alice.ID, bob.ID))
}

func TestLikeRepository_ToggleRetriesAfterLostInsert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	// First attempt: nothing to delete, and the insert is beaten by a concurrent toggle.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE id = $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`)).
		WithArgs(1, 10, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Retry: the row inserted by the other toggle is now deleted.
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts" WHERE id = $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1 AND post_id = $2`)).
		WithArgs(1, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	liked, err := repo.Toggle(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleGivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	for i := 0; i < maxToggleAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()
	}

	_, err := repo.Toggle(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_ToggleStoreFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes"`)).
		WillReturnError(driver.ErrBadConn)
	mock.ExpectRollback()

	_, err := repo.Toggle(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeInternal))
	assert.True(t, errors.Is(err, driver.ErrBadConn))
}
