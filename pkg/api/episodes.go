package api

import (
	"context"
	"net/http"
	"strings"

	"podcast-archive/pkg/domain"
	"podcast-archive/pkg/search"
)

// episodeService is the archive surface the episode endpoints need.
type episodeService interface {
	Load(ctx context.Context) []domain.Episode
	Stats(ctx context.Context) domain.DashboardStats
	Get(ctx context.Context, id string) *domain.Episode
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// EpisodesHandler serves episode listing, search and editing endpoints.
type EpisodesHandler struct {
	svc episodeService
}

// NewEpisodesHandler creates an EpisodesHandler.
func NewEpisodesHandler(svc episodeService) *EpisodesHandler {
	return &EpisodesHandler{svc: svc}
}

// List returns episodes with optional filtering and sorting, or search
// results when q is set.
// GET /api/episodes?q=&series=&host=&guest=&startDate=&endDate=&sort=
func (h *EpisodesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	episodes := h.svc.Load(r.Context())

	episodes = search.Filter(episodes, search.FilterOptions{
		Series:    q.Get("series"),
		Host:      q.Get("host"),
		Guest:     q.Get("guest"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})

	if query := strings.TrimSpace(q.Get("q")); query != "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"results": search.Search(episodes, query),
		})
		return
	}

	key := search.SortKey(q.Get("sort"))
	if key == "" {
		key = search.SortDateDesc
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"episodes": search.Sort(episodes, key),
	})
}

// Stats returns the dashboard statistics.
// GET /api/episodes/stats
func (h *EpisodesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Stats(r.Context()))
}

// Item dispatches get, update and delete for a single episode.
// /api/episodes/{id}
func (h *EpisodesHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/episodes/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "episode not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ep := h.svc.Get(r.Context(), id)
		if ep == nil {
			writeError(w, http.StatusNotFound, "episode not found")
			return
		}
		writeJSON(w, http.StatusOK, ep)

	case http.MethodPatch, http.MethodPut:
		var fields map[string]any
		if !decodeBody(w, r, &fields) {
			return
		}
		if len(fields) == 0 {
			writeError(w, http.StatusBadRequest, "no fields to update")
			return
		}
		if err := h.svc.Update(r.Context(), id, fields); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to update episode")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})

	case http.MethodDelete:
		if err := h.svc.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to delete episode")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
