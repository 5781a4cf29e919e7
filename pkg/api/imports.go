package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"podcast-archive/pkg/domain"
	"podcast-archive/pkg/importer"
)

// ImportHandler exposes bulk import control and the review queue.
type ImportHandler struct {
	pipeline *importer.Pipeline
}

// NewImportHandler creates an ImportHandler.
func NewImportHandler(pipeline *importer.Pipeline) *ImportHandler {
	return &ImportHandler{pipeline: pipeline}
}

// maxUploadBytes bounds one multipart upload request.
const maxUploadBytes = 256 << 20

// Upload accepts a multipart batch of transcript files and starts the
// import in the background. One batch runs at a time.
// POST /api/import
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.pipeline.Stats().InProgress {
		writeError(w, http.StatusConflict, "an import batch is already running")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	var files []importer.File
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload %s", header.Filename))
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload %s", header.Filename))
				return
			}
			files = append(files, importer.File{Name: header.Filename, Data: data})
		}
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	// The batch outlives the upload request.
	go h.pipeline.Run(context.Background(), files)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"status": "started",
		"total":  len(files),
	})
}

// Status returns batch stats and per-file progress.
// GET /api/import/status
func (h *ImportHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": h.pipeline.Stats(),
		"files": h.pipeline.Queue(),
	})
}

// Control pauses, resumes or aborts the running batch.
// POST /api/import/control
func (h *ImportHandler) Control(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Action string `json:"action"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	switch req.Action {
	case "pause":
		h.pipeline.Pause()
	case "resume":
		h.pipeline.Resume()
	case "abort":
		h.pipeline.Abort()
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action %q", req.Action))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": req.Action})
}

// Single extracts one uploaded file without persisting, so the operator
// can confirm the record before saving.
// POST /api/import/single
func (h *ImportHandler) Single(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("read upload %s", header.Filename))
		return
	}

	episode, err := h.pipeline.ProcessOne(r.Context(), importer.File{Name: header.Filename, Data: data})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"episode": episode})
}

// SingleSave persists a confirmed single-file record.
// POST /api/import/single/save
func (h *ImportHandler) SingleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var episode domain.Episode
	if !decodeBody(w, r, &episode) {
		return
	}

	if err := h.pipeline.SaveOne(r.Context(), &episode); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// Review returns records waiting for operator correction.
// GET /api/import/review
func (h *ImportHandler) Review(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	items := h.pipeline.ReviewItems()
	if items == nil {
		items = []importer.FileStatus{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// ReviewSave re-validates a corrected record and persists it.
// POST /api/import/review/save
func (h *ImportHandler) ReviewSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		FileName string         `json:"fileName"`
		Episode  domain.Episode `json:"episode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.pipeline.SaveReviewed(r.Context(), req.FileName, &req.Episode)
	if err != nil {
		var incomplete *importer.ErrStillIncomplete
		switch {
		case errors.As(err, &incomplete):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "record still incomplete",
				"issues": incomplete.Issues,
			})
		case errors.Is(err, importer.ErrNotInReview):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to save record")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// ForceSaveAll persists the whole review queue without validation. The
// caller must confirm explicitly.
// POST /api/import/review/force-save-all?confirm=true
func (h *ImportHandler) ForceSaveAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		writeError(w, http.StatusBadRequest, "force save requires confirm=true")
		return
	}

	saved, failed := h.pipeline.ForceSaveAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"saved": saved, "failed": failed})
}

// Report downloads the review queue as a plain-text report.
// GET /api/import/review/report
func (h *ImportHandler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	now := time.Now()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", importer.ReportFileName(now)))
	w.Write([]byte(h.pipeline.Report(now))) //nolint:errcheck
}
