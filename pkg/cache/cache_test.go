package cache

import (
	"testing"
	"time"

	"podcast-archive/pkg/domain"
)

func TestGet_EmptyCacheMisses(t *testing.T) {
	c := New()

	if _, ok := c.Get(); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestGet_FreshSnapshotHits(t *testing.T) {
	c := New()
	c.Set([]domain.Episode{{ID: "a"}})

	episodes, ok := c.Get()
	if !ok {
		t.Fatal("expected hit on fresh snapshot")
	}
	if len(episodes) != 1 || episodes[0].ID != "a" {
		t.Fatalf("unexpected snapshot contents: %+v", episodes)
	}
}

func TestGet_ExpiredSnapshotMisses(t *testing.T) {
	c := New()

	current := time.Now()
	c.SetClock(func() time.Time { return current })
	c.Set([]domain.Episode{{ID: "a"}})

	// Just inside the window.
	current = current.Add(DefaultTTL - time.Second)
	if _, ok := c.Get(); !ok {
		t.Fatal("expected hit just inside the freshness window")
	}

	// At the window boundary the snapshot is stale.
	current = current.Add(time.Second)
	if _, ok := c.Get(); ok {
		t.Fatal("expected miss once the freshness window elapsed")
	}
}

func TestInvalidate_DropsSnapshot(t *testing.T) {
	c := New()
	c.Set([]domain.Episode{{ID: "a"}})

	c.Invalidate()

	if _, ok := c.Get(); ok {
		t.Fatal("expected miss after invalidate")
	}
}

func TestSet_ReplacesSnapshot(t *testing.T) {
	c := New()
	c.Set([]domain.Episode{{ID: "a"}})
	c.Set([]domain.Episode{{ID: "b"}, {ID: "c"}})

	episodes, ok := c.Get()
	if !ok {
		t.Fatal("expected hit")
	}
	if len(episodes) != 2 || episodes[0].ID != "b" {
		t.Fatalf("unexpected snapshot contents: %+v", episodes)
	}
}
