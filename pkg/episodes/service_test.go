package episodes

import (
	"context"
	"errors"
	"testing"

	"podcast-archive/pkg/cache"
	"podcast-archive/pkg/db"
	"podcast-archive/pkg/domain"
)

type fakeStore struct {
	episodes []domain.Episode
	getErr   error
	calls    int
	updates  map[string]map[string]any
	deleted  []string
}

func (s *fakeStore) GetAll(ctx context.Context, orderBy string) ([]domain.Episode, error) {
	s.calls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	out := make([]domain.Episode, len(s.episodes))
	copy(out, s.episodes)
	return out, nil
}

func (s *fakeStore) GetWhere(ctx context.Context, field string, equals any) ([]domain.Episode, error) {
	return nil, nil
}

func (s *fakeStore) Create(ctx context.Context, episode *domain.Episode) (string, error) {
	return episode.ID, nil
}

func (s *fakeStore) UpdateFields(ctx context.Context, docID string, fields map[string]any) error {
	if s.updates == nil {
		s.updates = make(map[string]map[string]any)
	}
	s.updates[docID] = fields
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, docID string) error {
	s.deleted = append(s.deleted, docID)
	return nil
}

func (s *fakeStore) BatchWrite(ctx context.Context, ops []db.BatchOp) error { return nil }

type staticFallback struct {
	episodes []domain.Episode
	err      error
}

func (f *staticFallback) Load() ([]domain.Episode, error) {
	return f.episodes, f.err
}

func TestLoadCachesStoreReads(t *testing.T) {
	store := &fakeStore{episodes: []domain.Episode{{ID: "ep1"}}}
	svc := New(store, cache.New(), nil)
	ctx := context.Background()

	if got := svc.Load(ctx); len(got) != 1 {
		t.Fatalf("first load = %d episodes", len(got))
	}
	if got := svc.Load(ctx); len(got) != 1 {
		t.Fatalf("second load = %d episodes", len(got))
	}
	if store.calls != 1 {
		t.Errorf("store hit %d times, want 1", store.calls)
	}
}

func TestLoadFallsBackWhenStoreFails(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store down")}
	fallback := &staticFallback{episodes: []domain.Episode{{ID: "ep1"}, {ID: "ep2"}}}
	svc := New(store, cache.New(), fallback)

	if got := svc.Load(context.Background()); len(got) != 2 {
		t.Errorf("fallback load = %d episodes", len(got))
	}
}

func TestLoadDegradesToEmpty(t *testing.T) {
	store := &fakeStore{getErr: errors.New("store down")}
	svc := New(store, cache.New(), nil)

	if got := svc.Load(context.Background()); got != nil {
		t.Errorf("load without fallback = %v, want nil", got)
	}
}

func TestGetByLogicalAndStoreID(t *testing.T) {
	store := &fakeStore{episodes: []domain.Episode{
		{ID: "2023-06-15-TECH-12", StoreID: "abc123"},
	}}
	svc := New(store, cache.New(), nil)
	ctx := context.Background()

	if svc.Get(ctx, "2023-06-15-TECH-12") == nil {
		t.Error("lookup by logical id failed")
	}
	if svc.Get(ctx, "abc123") == nil {
		t.Error("lookup by store id failed")
	}
	if svc.Get(ctx, "missing") != nil {
		t.Error("missing id must return nil")
	}
}

func TestUpdateInvalidatesCache(t *testing.T) {
	store := &fakeStore{episodes: []domain.Episode{{ID: "ep1", StoreID: "abc123"}}}
	svc := New(store, cache.New(), nil)
	ctx := context.Background()

	svc.Load(ctx)
	if err := svc.Update(ctx, "ep1", map[string]any{"series": "TECH"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Update resolves the document id before writing.
	if _, ok := store.updates["abc123"]; !ok {
		t.Errorf("updates = %v, want key abc123", store.updates)
	}

	svc.Load(ctx)
	if store.calls != 2 {
		t.Errorf("store hit %d times, cache was not invalidated", store.calls)
	}
}

func TestDeleteInvalidatesCache(t *testing.T) {
	store := &fakeStore{episodes: []domain.Episode{{ID: "ep1"}}}
	svc := New(store, cache.New(), nil)
	ctx := context.Background()

	svc.Load(ctx)
	if err := svc.Delete(ctx, "ep1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "ep1" {
		t.Errorf("deleted = %v", store.deleted)
	}

	svc.Load(ctx)
	if store.calls != 2 {
		t.Errorf("store hit %d times, cache was not invalidated", store.calls)
	}
}
