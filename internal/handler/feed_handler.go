package handlers

import (
	"net/http"

	"updatesfeed/internal/render"
	"updatesfeed/internal/session"
)

type FeedResponse struct {
	Cards  []render.Card `json:"cards"`
	Status string        `json:"status"`
}

type UpdatesResponse struct {
	Cards      []render.Card      `json:"cards"`
	Status     string             `json:"status"`
	Visibility session.Visibility `json:"visibility"`
}

// GetFeed loads and renders the feed. Each call is a fresh load; overlapping
// calls resolve last-writer-wins in the feed service.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cards, status := h.Feed.Reload(r.Context())

	WriteSuccess(w, FeedResponse{Cards: cards, Status: status}, http.StatusOK)
}

// GetUpdates is the page-level entry: it consumes the admin unlock parameter
// when the local gate matches it, otherwise it returns the feed together with
// the gate's visibility state.
func (h *Handlers) GetUpdates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if localGate, ok := h.Gate.(*session.LocalGate); ok {
		if localGate.Consume(w, r) {
			return
		}
	}

	cards, status := h.Feed.Reload(r.Context())

	WriteSuccess(w, UpdatesResponse{
		Cards:      cards,
		Status:     status,
		Visibility: h.Gate.Visibility(r),
	}, http.StatusOK)
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	WriteSuccess(w, h.Gate.Visibility(r), http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.HealthCheck(); err != nil {
			WriteError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	WriteSuccess(w, MessageResponse{Message: "ok"}, http.StatusOK)
}
