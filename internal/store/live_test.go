package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"updatesfeed/internal/models"
)

func TestLiveStore_Load(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	store := NewLiveStore(sqlxDB)

	ctx := context.Background()

	t.Run("returns records in backend order", func(t *testing.T) {
		newest := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		oldest := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"post_id", "author", "content", "images", "created_at"}).
			AddRow("p2", "Owner", "newest", []byte(`[{"src":"https://cdn.example/a.jpg","alt":"a"}]`), newest).
			AddRow("p1", "Owner", "oldest", []byte(`[]`), oldest)

		mock.ExpectQuery(`SELECT post_id, author, content, images, created_at FROM posts ORDER BY created_at DESC`).
			WillReturnRows(rows)

		records, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)

		// records come out in the live-store wire shape
		post := models.Normalize(records[0], "Owner")
		require.NotNil(t, post)
		assert.Equal(t, "p2", post.ID)
		assert.Equal(t, "newest", post.Text)
		assert.Equal(t, newest, post.When.UTC())
		require.Len(t, post.Images, 1)
		assert.Equal(t, "a", post.Images[0].Alt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		mock.ExpectQuery(`SELECT post_id, author, content, images, created_at FROM posts ORDER BY created_at DESC`).
			WillReturnError(errors.New("connection refused"))

		records, err := store.Load(ctx)
		assert.Error(t, err)
		assert.Nil(t, records)
		assert.Contains(t, err.Error(), "failed to load posts")
	})
}

func TestLiveStore_Commit(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	store := NewLiveStore(sqlxDB)

	ctx := context.Background()

	draft := &models.Draft{
		ID:        "local-draft-id",
		Author:    "Owner",
		Timestamp: "2024-03-01T00:00:00Z",
		Text:      "fresh",
		Images:    []models.Image{{Src: "https://cdn.example/a.jpg", Alt: "a"}},
	}

	t.Run("successful insert", func(t *testing.T) {
		expectedImages, err := json.Marshal(draft.Images)
		require.NoError(t, err)

		mock.ExpectExec(`
			INSERT INTO posts (post_id, author, content, images, created_at)
			VALUES (?, ?, ?, ?, ?)
		`).
			WithArgs(
				sqlmock.AnyArg(), // the server, not the draft, owns the final id
				draft.Author,
				draft.Text,
				expectedImages,
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		result, err := store.Commit(ctx, draft)
		require.NoError(t, err)
		assert.Nil(t, result.Artifact)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure surfaces the backend error", func(t *testing.T) {
		mock.ExpectExec(`
			INSERT INTO posts (post_id, author, content, images, created_at)
			VALUES (?, ?, ?, ?, ?)
		`).
			WillReturnError(errors.New("permission denied for table posts"))

		result, err := store.Commit(ctx, draft)
		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to insert post")
	})
}
