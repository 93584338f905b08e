package service

import (
	"testing"
	"time"

	"Yatube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	author := mkUser(t, db, "auth")
	reader := mkUser(t, db, "reader")
	post := mkPost(t, db, author, nil, "a post", 1)

	t.Run("unknown post is not found", func(t *testing.T) {
		_, err := svc.Add(reader.ID, 999, "hello")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty text fails validation", func(t *testing.T) {
		_, err := svc.Add(reader.ID, post.ID, "  ")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "text is required", verr.FieldMap()["text"])
	})

	t.Run("comment is visible immediately", func(t *testing.T) {
		comment, err := svc.Add(reader.ID, post.ID, "first!")
		require.NoError(t, err)
		assert.False(t, comment.CreatedAt.IsZero())

		comments, err := svc.ListByPost(post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "first!", comments[0].Text)
		assert.Equal(t, "reader", comments[0].Author.Username)
	})
}

func TestListByPostOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommentService(db)
	author := mkUser(t, db, "auth")
	post := mkPost(t, db, author, nil, "a post", 1)

	// explicit timestamps, oldest first
	for i, text := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, db.Create(&model.Comment{
			PostID:    post.ID,
			AuthorID:  author.ID,
			Text:      text,
			CreatedAt: time.Now().Add(time.Duration(i-3) * time.Minute),
		}).Error)
	}

	comments, err := svc.ListByPost(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "newest", comments[0].Text)
	assert.Equal(t, "oldest", comments[2].Text)
}
