// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Karan-RajKR/social-lite/internal/database"
	"github.com/Karan-RajKR/social-lite/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Uint64

// NewDB returns a migrated, isolated in-memory SQLite database.
// A single pooled connection serializes writers the same way production SQLite does.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(name)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewFileDB returns a migrated SQLite database in a temp file served by
// conns pooled connections. Transactions begin IMMEDIATE so concurrent
// writers wait on the busy timeout.
func NewFileDB(t testing.TB, conns int) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "social.db")
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(path + "?_txlock=immediate")))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	sqlDB.SetMaxIdleConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with a cheap bcrypt hash of password.
func CreateUser(t testing.TB, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Username: username, Password: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreatePost inserts a post authored by user.
func CreatePost(t testing.TB, db *gorm.DB, user *models.User, content string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: user.ID, Content: content}
	require.NoError(t, db.Create(p).Error)
	return p
}
