package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// A single connection keeps ":memory:" from spawning empty sibling databases
// and serializes concurrent statements the way a real server pool would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "irrelevant",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, status string, mutate ...func(*models.Post)) *models.Post {
	t.Helper()
	p := &models.Post{
		Title:    "Test Post",
		Slug:     fmt.Sprintf("test-post-%d", nextSlugID()),
		Content:  "Some content.",
		AuthorID: authorID,
		Status:   status,
	}
	for _, fn := range mutate {
		fn(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

var slugCounter atomic.Int64

func nextSlugID() int64 {
	return slugCounter.Add(1)
}

func testCtx() context.Context {
	return context.Background()
}
