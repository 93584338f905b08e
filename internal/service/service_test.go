package service

import (
	"fmt"
	"testing"
	"time"

	"Yatube/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB gives every test an isolated in-memory database with the
// full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: is per-connection; keep the pool at one
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.FollowOutbox{},
	))
	return db
}

func mkUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Password: "x",
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func mkGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	group := &model.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "test group",
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

// mkPost creates a post published offset minutes in the past, so
// ordering across posts is deterministic.
func mkPost(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, text string, offset int) *model.Post {
	t.Helper()
	post := &model.Post{
		Text:      text,
		AuthorID:  author.ID,
		CreatedAt: time.Now().Add(-time.Duration(offset) * time.Minute),
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func mkPosts(t *testing.T, db *gorm.DB, author *model.User, group *model.Group, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		mkPost(t, db, author, group, fmt.Sprintf("post %d", i), n-i)
	}
}
