package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"

	"updatesfeed/internal/models"
	"updatesfeed/internal/render"
	"updatesfeed/internal/store"
)

// Status line messages owned by the feed, not the renderer.
const (
	StatusLoading    = "Loading updates…"
	StatusEmpty      = "No updates yet — check back soon."
	StatusLoadFailed = "Unable to load updates right now. Please retry later."
)

// FeedService loads raw records, normalizes them and keeps the rendered feed
// as a single fully-overwritten display state. Reloads are not cancelled:
// when reloads overlap, responses carry a monotonically increasing token and
// a stale completion is discarded, so the last started load wins.
type FeedService interface {
	Reload(ctx context.Context) ([]render.Card, string)
	Current() ([]render.Card, string)
}

type feedService struct {
	store     store.Store
	ownerName string
	timeout   time.Duration

	seq atomic.Uint64

	mu      sync.Mutex
	applied uint64
	cards   []render.Card
	status  string
}

func NewFeedService(st store.Store, ownerName string, timeout time.Duration) FeedService {
	return &feedService{
		store:     st,
		ownerName: ownerName,
		timeout:   timeout,
		status:    StatusLoading,
	}
}

func (s *feedService) Reload(ctx context.Context) ([]render.Card, string) {
	token := s.seq.Add(1)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var cards []render.Card
	var status string

	records, err := s.store.Load(ctx)
	if err != nil {
		// LoadFailure: empty feed plus a retry-later status, never a thrown error
		log.Printf("feed load failed: %v", err)
		cards = []render.Card{}
		status = StatusLoadFailed
	} else {
		posts := lo.FilterMap(records, func(record json.RawMessage, _ int) (models.Post, bool) {
			post := models.Normalize(record, s.ownerName)
			if post == nil {
				return models.Post{}, false
			}
			return *post, true
		})
		cards = render.Render(posts)
		if len(cards) == 0 {
			status = StatusEmpty
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token < s.applied {
		// a newer load already replaced the display state
		return s.cards, s.status
	}
	s.applied = token
	s.cards = cards
	s.status = status
	return s.cards, s.status
}

func (s *feedService) Current() ([]render.Card, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards, s.status
}
