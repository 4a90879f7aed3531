package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/samber/lo"

	"updatesfeed/internal/models"
)

// LiveStore is the read-write strategy over the posts table. The backend
// enforces the canonical creation-time ordering on read; the renderer's own
// sort stays in place as a defensive invariant for any future unordered
// source.
type LiveStore struct {
	db *sqlx.DB
}

type postRow struct {
	PostID    string         `db:"post_id" json:"id"`
	Author    string         `db:"author" json:"author"`
	Content   string         `db:"content" json:"text"`
	Images    types.JSONText `db:"images" json:"images"`
	CreatedAt time.Time      `db:"created_at" json:"-"`
}

// liveRecord is the wire shape the live backend produces: created_at instead
// of timestamp, images without captions. Only models.Normalize reads it.
type liveRecord struct {
	ID        string          `json:"id"`
	Author    string          `json:"author"`
	Text      string          `json:"text"`
	Images    json.RawMessage `json:"images,omitempty"`
	CreatedAt string          `json:"created_at"`
}

func NewLiveStore(db *sqlx.DB) *LiveStore {
	return &LiveStore{db: db}
}

func (s *LiveStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	query := `
		SELECT post_id, author, content, images, created_at FROM posts
		ORDER BY created_at DESC
	`

	var rows []postRow
	err := s.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	records := lo.Map(rows, func(row postRow, _ int) json.RawMessage {
		record := liveRecord{
			ID:        row.PostID,
			Author:    row.Author,
			Text:      row.Content,
			Images:    json.RawMessage(row.Images),
			CreatedAt: row.CreatedAt.Format(time.RFC3339),
		}
		data, err := json.Marshal(record)
		if err != nil {
			return json.RawMessage("{}")
		}
		return data
	})

	return records, nil
}

// Commit inserts the draft as a single row. The server owns the final id and
// creation time; the draft's locally-generated ones are replaced.
func (s *LiveStore) Commit(ctx context.Context, draft *models.Draft) (*CommitResult, error) {
	images, err := json.Marshal(draft.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize images: %w", err)
	}

	row := postRow{
		PostID:    uuid.New().String(),
		Author:    draft.Author,
		Content:   draft.Text,
		Images:    types.JSONText(images),
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO posts (post_id, author, content, images, created_at)
		VALUES (:post_id, :author, :content, :images, :created_at)
	`

	_, err = s.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return &CommitResult{}, nil
}
