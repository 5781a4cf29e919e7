package api

import (
	"context"
	"errors"
	"net/http"

	"podcast-archive/pkg/merge"
)

// mergeEngine is the merge surface the endpoints need.
type mergeEngine interface {
	MergeMany(ctx context.Context, mode merge.Mode, oldNames []string, newName string) (int, error)
	RenameSingle(ctx context.Context, mode merge.Mode, oldName, newName string) (int, error)
	DeleteSeries(ctx context.Context, series string) (int, error)
}

// MergeHandler serves merge, rename and series deletion endpoints.
type MergeHandler struct {
	engine mergeEngine
}

// NewMergeHandler creates a MergeHandler.
func NewMergeHandler(engine mergeEngine) *MergeHandler {
	return &MergeHandler{engine: engine}
}

type mergeRequest struct {
	Mode     string   `json:"mode"`
	OldNames []string `json:"oldNames"`
	NewName  string   `json:"newName"`
}

type renameRequest struct {
	Mode    string `json:"mode"`
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// Merge folds several name variants into one canonical name.
// POST /api/merge
func (h *MergeHandler) Merge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req mergeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.engine.MergeMany(r.Context(), merge.Mode(req.Mode), req.OldNames, req.NewName)
	if err != nil {
		writeMergeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// Rename changes a single name everywhere it appears.
// POST /api/rename
func (h *MergeHandler) Rename(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req renameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.engine.RenameSingle(r.Context(), merge.Mode(req.Mode), req.OldName, req.NewName)
	if err != nil {
		writeMergeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// DeleteSeries removes every episode in a series.
// POST /api/series/delete
func (h *MergeHandler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Series string `json:"series"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Series == "" {
		writeError(w, http.StatusBadRequest, "series is required")
		return
	}

	deleted, err := h.engine.DeleteSeries(r.Context(), req.Series)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete series")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func writeMergeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, merge.ErrNothingToMerge),
		errors.Is(err, merge.ErrEmptyNewName),
		errors.Is(err, merge.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "merge failed")
	}
}
