package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"podcast-archive/pkg/domain"
)

type fakeEpisodeService struct {
	episodes []domain.Episode
	updated  map[string]any
	deleted  string
}

func (f *fakeEpisodeService) Load(ctx context.Context) []domain.Episode { return f.episodes }

func (f *fakeEpisodeService) Stats(ctx context.Context) domain.DashboardStats {
	return domain.DashboardStats{TotalEpisodes: len(f.episodes)}
}

func (f *fakeEpisodeService) Get(ctx context.Context, id string) *domain.Episode {
	for i := range f.episodes {
		if f.episodes[i].ID == id {
			return &f.episodes[i]
		}
	}
	return nil
}

func (f *fakeEpisodeService) Update(ctx context.Context, id string, fields map[string]any) error {
	f.updated = fields
	return nil
}

func (f *fakeEpisodeService) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return nil
}

func testEpisodes() []domain.Episode {
	return []domain.Episode{
		{ID: "ep1", Date: "2023-06-15", Series: "TECH", EpisodeTitle: "Archive Deep Dive", Guests: []string{"Jane Smith"}},
		{ID: "ep2", Date: "2023-01-01", Series: "BIZ", EpisodeTitle: "Money Talk"},
	}
}

func TestListSortsByDateDesc(t *testing.T) {
	h := NewEpisodesHandler(&fakeEpisodeService{episodes: testEpisodes()})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/episodes", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Episodes []domain.Episode `json:"episodes"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Episodes) != 2 || body.Episodes[0].ID != "ep1" {
		t.Errorf("episodes = %+v", body.Episodes)
	}
}

func TestListFiltersBySeries(t *testing.T) {
	h := NewEpisodesHandler(&fakeEpisodeService{episodes: testEpisodes()})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/episodes?series=BIZ", nil))

	var body struct {
		Episodes []domain.Episode `json:"episodes"`
	}
	json.NewDecoder(rec.Body).Decode(&body)
	if len(body.Episodes) != 1 || body.Episodes[0].Series != "BIZ" {
		t.Errorf("episodes = %+v", body.Episodes)
	}
}

func TestListSearchReturnsResults(t *testing.T) {
	h := NewEpisodesHandler(&fakeEpisodeService{episodes: testEpisodes()})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/episodes?q=jane", nil))

	var body struct {
		Results []domain.SearchResult `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Results) != 1 || body.Results[0].MatchType != domain.MatchGuest {
		t.Errorf("results = %+v", body.Results)
	}
}

func TestItemGetUpdateDelete(t *testing.T) {
	svc := &fakeEpisodeService{episodes: testEpisodes()}
	h := NewEpisodesHandler(svc)

	rec := httptest.NewRecorder()
	h.Item(rec, httptest.NewRequest(http.MethodGet, "/api/episodes/ep1", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Item(rec, httptest.NewRequest(http.MethodGet, "/api/episodes/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/episodes/ep1",
		strings.NewReader(`{"episodeTitle":"New Title"}`))
	h.Item(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("update status = %d", rec.Code)
	}
	if svc.updated["episodeTitle"] != "New Title" {
		t.Errorf("updated = %+v", svc.updated)
	}

	rec = httptest.NewRecorder()
	h.Item(rec, httptest.NewRequest(http.MethodDelete, "/api/episodes/ep2", nil))
	if rec.Code != http.StatusOK || svc.deleted != "ep2" {
		t.Errorf("delete status = %d, deleted = %q", rec.Code, svc.deleted)
	}
}

func TestStats(t *testing.T) {
	h := NewEpisodesHandler(&fakeEpisodeService{episodes: testEpisodes()})
	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/episodes/stats", nil))

	var stats domain.DashboardStats
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalEpisodes != 2 {
		t.Errorf("total = %d", stats.TotalEpisodes)
	}
}
