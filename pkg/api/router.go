package api

import "net/http"

// Handlers groups the endpoint handlers the router mounts.
type Handlers struct {
	Episodes *EpisodesHandler
	Merge    *MergeHandler
	Import   *ImportHandler
	Health   *HealthHandler
}

// NewRouter mounts all archive endpoints on a ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	if h.Episodes != nil {
		mux.HandleFunc("/api/episodes", h.Episodes.List)
		mux.HandleFunc("/api/episodes/stats", h.Episodes.Stats)
		mux.HandleFunc("/api/episodes/", h.Episodes.Item)
	}
	if h.Merge != nil {
		mux.HandleFunc("/api/merge", h.Merge.Merge)
		mux.HandleFunc("/api/rename", h.Merge.Rename)
		mux.HandleFunc("/api/series/delete", h.Merge.DeleteSeries)
	}
	if h.Import != nil {
		mux.HandleFunc("/api/import", h.Import.Upload)
		mux.HandleFunc("/api/import/single", h.Import.Single)
		mux.HandleFunc("/api/import/single/save", h.Import.SingleSave)
		mux.HandleFunc("/api/import/status", h.Import.Status)
		mux.HandleFunc("/api/import/control", h.Import.Control)
		mux.HandleFunc("/api/import/review", h.Import.Review)
		mux.HandleFunc("/api/import/review/save", h.Import.ReviewSave)
		mux.HandleFunc("/api/import/review/force-save-all", h.Import.ForceSaveAll)
		mux.HandleFunc("/api/import/review/report", h.Import.Report)
	}
	if h.Health != nil {
		mux.HandleFunc("/health", h.Health.Health)
	}

	return mux
}
