package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"resty.dev/v3"

	"updatesfeed/internal/config"
	"updatesfeed/internal/models"
)

// SnapshotStore is the static read-only strategy: Load is a one-shot fetch of
// a fixed JSON resource; Commit never touches the resource, it builds the
// artifact the owner deploys out-of-band (optionally pushing it to the bucket
// that serves the snapshot, when a publisher is configured).
type SnapshotStore struct {
	client    *resty.Client
	url       string
	publisher Publisher

	mu   sync.Mutex
	last []json.RawMessage
}

// Publisher pushes an export artifact to wherever the snapshot is hosted.
type Publisher interface {
	Publish(ctx context.Context, artifact *Artifact) error
}

func NewSnapshotStore(cfg *config.Config, publisher Publisher) *SnapshotStore {
	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &SnapshotStore{
		client:    client,
		url:       cfg.SnapshotURL,
		publisher: publisher,
	}
}

func (s *SnapshotStore) Load(ctx context.Context) ([]json.RawMessage, error) {
	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch snapshot: %s", resp.Status())
	}

	var records []json.RawMessage
	if err := json.Unmarshal(resp.Bytes(), &records); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	s.mu.Lock()
	s.last = records
	s.mu.Unlock()

	return records, nil
}

// Commit serializes the draft plus all currently-loaded records into the
// downloadable artifact. The snapshot itself stays untouched; replacing it is
// a manual redeploy step.
func (s *SnapshotStore) Commit(ctx context.Context, draft *models.Draft) (*CommitResult, error) {
	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize draft: %w", err)
	}

	s.mu.Lock()
	records := append([]json.RawMessage{draftJSON}, s.last...)
	s.mu.Unlock()

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	artifact := &Artifact{
		Filename: fmt.Sprintf("posts-%s.json", time.Now().Format("2006-01-02")),
		Data:     data,
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, artifact); err != nil {
			// publishing is best effort; the artifact download still works
			log.Printf("snapshot publish failed: %v", err)
		}
	}

	return &CommitResult{Artifact: artifact}, nil
}
