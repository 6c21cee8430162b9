package seed

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeeder_FullRun(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db, Options{MaxDays: 10, PublishedRatio: 0.7})

	admin, err := s.EnsureAdmin("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	// idempotent
	again, err := s.EnsureAdmin("admin")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	users, err := s.SeedUsers(5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	posts, err := s.SeedPosts(users, 30)
	require.NoError(t, err)
	require.Len(t, posts, 30)

	for _, p := range posts {
		assert.NotEmpty(t, p.Slug)
		assert.Contains(t, []string{
			models.StatusPending, models.StatusPublished, models.StatusRejected,
		}, p.Status)
	}

	require.NoError(t, s.SeedEngagement(users, posts))

	// engagement only lands on published posts
	var strayLikes int64
	require.NoError(t, db.Model(&models.Like{}).
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("posts.status <> ?", models.StatusPublished).
		Count(&strayLikes).Error)
	assert.Zero(t, strayLikes)
}

func TestSeeder_ClearAll(t *testing.T) {
	db := newSeedDB(t)
	s := NewSeeder(db, Options{})

	users, err := s.SeedUsers(2)
	require.NoError(t, err)
	_, err = s.SeedPosts(users, 5)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, postCount)
}
