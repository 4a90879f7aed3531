package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"updatesfeed/internal/form"
	"updatesfeed/internal/models"
	"updatesfeed/internal/render"
)

type ImageRowRequest struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type RowsResponse struct {
	Rows []form.ImageRow `json:"rows"`
}

type DraftRequest struct {
	Text string `json:"text"`
}

type PreviewResponse struct {
	Card render.Card `json:"card"`
	HTML string      `json:"html"`
}

type PublishResponse struct {
	Message  string          `json:"message"`
	Artifact *ArtifactEnvelope `json:"artifact,omitempty"`
}

type ArtifactEnvelope struct {
	Filename string          `json:"filename"`
	Content  json.RawMessage `json:"content"`
}

func (h *Handlers) requireAuthoring(w http.ResponseWriter, r *http.Request) bool {
	if !h.Gate.Authorized(r) {
		WriteError(w, "Access denied", http.StatusForbidden)
		return false
	}
	return true
}

func (h *Handlers) ListImageRows(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuthoring(w, r) {
		return
	}

	WriteSuccess(w, RowsResponse{Rows: h.Form.Rows()}, http.StatusOK)
}

func (h *Handlers) AddImageRow(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuthoring(w, r) {
		return
	}

	var req ImageRowRequest
	if r.Body != nil {
		// an empty body adds a blank row
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	rows := h.Form.AddImageRow(req.URL, req.Alt)
	WriteSuccess(w, RowsResponse{Rows: rows}, http.StatusCreated)
}

func (h *Handlers) UpdateImageRow(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuthoring(w, r) {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "invalid row id", http.StatusBadRequest)
		return
	}

	var req ImageRowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rows, err := h.Form.SetImageRow(id, req.URL, req.Alt)
	if err != nil {
		WriteError(w, err.Error(), http.StatusNotFound)
		return
	}

	WriteSuccess(w, RowsResponse{Rows: rows}, http.StatusOK)
}

func (h *Handlers) RemoveImageRow(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuthoring(w, r) {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, "invalid row id", http.StatusBadRequest)
		return
	}

	rows, err := h.Form.RemoveImageRow(id)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, form.ErrLastRow) {
			status = http.StatusConflict
		}
		WriteError(w, err.Error(), status)
		return
	}

	WriteSuccess(w, RowsResponse{Rows: rows}, http.StatusOK)
}

// Preview builds the draft and renders it as a detached card. It never
// mutates form state and can be repeated freely.
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuthoring(w, r) {
		return
	}

	draft, ok := h.buildDraft(w, r)
	if !ok {
		return
	}

	cards := render.Render([]models.Post{draft.Post()})
	WriteSuccess(w, PreviewResponse{Card: cards[0], HTML: cards[0].HTML()}, http.StatusOK)
}

// Publish commits the draft through the configured store. On failure the form
// keeps its fields so the owner's work is not lost; on success it is cleared
// and the feed reloaded.
func (h *Handlers) Publish(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuthoring(w, r) {
		return
	}

	draft, ok := h.buildDraft(w, r)
	if !ok {
		return
	}

	result, err := h.Store.Commit(r.Context(), draft)
	if err != nil {
		// CommitFailure: surface the backend message, keep the form intact
		WriteError(w, err.Error(), http.StatusBadGateway)
		return
	}

	h.Form.Reset()
	h.Feed.Reload(r.Context())

	response := PublishResponse{Message: "Published successfully."}
	if result.Artifact != nil {
		response.Message = "Download complete. Replace posts.json with the file you just downloaded to publish the update."
		response.Artifact = &ArtifactEnvelope{
			Filename: result.Artifact.Filename,
			Content:  json.RawMessage(result.Artifact.Data),
		}
	}

	WriteSuccess(w, response, http.StatusCreated)
}

// Export builds the snapshot artifact for the current draft and streams it as
// a download. Unlike Publish it leaves the form untouched, mirroring the
// manual replace workflow.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuthoring(w, r) {
		return
	}

	// the live backend's Commit writes a real row, so the refusal must come
	// before it runs
	if h.Cfg.Backend == "live" {
		WriteError(w, "export is only available with the static snapshot backend", http.StatusBadRequest)
		return
	}

	draft, ok := h.buildDraft(w, r)
	if !ok {
		return
	}

	result, err := h.Store.Commit(r.Context(), draft)
	if err != nil {
		WriteError(w, err.Error(), http.StatusBadGateway)
		return
	}
	if result.Artifact == nil {
		WriteError(w, "export is only available with the static snapshot backend", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Artifact.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifact.Data)
}

func (h *Handlers) buildDraft(w http.ResponseWriter, r *http.Request) (*models.Draft, bool) {
	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return nil, false
	}

	h.Form.SetText(req.Text)

	draft, err := h.Form.BuildDraft()
	if err != nil {
		// ValidationFailure: no draft, no partial state
		WriteError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return draft, true
}
