package store

import (
	"context"
	"encoding/json"

	"updatesfeed/internal/models"
)

// Artifact is the downloadable snapshot file produced by the static strategy:
// the full post array with the new draft prepended, named by current date.
type Artifact struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// CommitResult reports what a successful commit produced. The live strategy
// writes to the backend and leaves Artifact nil; the static strategy has no
// network effect and returns the export artifact instead.
type CommitResult struct {
	Artifact *Artifact
}

// Store is the persistence adapter: two interchangeable strategies behind one
// contract. Load returns raw backend records; normalization is the model's
// job, so callers never read backend fields here.
type Store interface {
	Load(ctx context.Context) ([]json.RawMessage, error)
	Commit(ctx context.Context, draft *models.Draft) (*CommitResult, error)
}
