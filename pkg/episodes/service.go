// Package episodes ties the store, the cache and the static fallback
// source together behind one service. Every successful mutation
// invalidates the cache before the caller sees the result.
package episodes

import (
	"context"
	"fmt"
	"log"

	"podcast-archive/pkg/cache"
	"podcast-archive/pkg/db"
	"podcast-archive/pkg/domain"
	"podcast-archive/pkg/search"
)

// fallbackSource is the secondary static data source used when the store
// is unreachable. Optional.
type fallbackSource interface {
	Load() ([]domain.Episode, error)
}

// Service exposes episode reads and single-document mutations.
type Service struct {
	store    db.EpisodeStore
	cache    *cache.EpisodeCache
	fallback fallbackSource
}

// New creates an episode service. fallback may be nil when no secondary
// source is configured.
func New(store db.EpisodeStore, c *cache.EpisodeCache, fallback fallbackSource) *Service {
	if c == nil {
		c = cache.New()
	}
	return &Service{store: store, cache: c, fallback: fallback}
}

// Cache exposes the service's cache so other mutating components (merge,
// import) share the same invalidation target.
func (s *Service) Cache() *cache.EpisodeCache {
	return s.cache
}

// Load returns the full episode collection: from the cache while fresh,
// else from the store. A store failure falls back to the static source
// when configured; with no fallback the result degrades to an empty set
// rather than an error - each operation stays independently recoverable.
func (s *Service) Load(ctx context.Context) []domain.Episode {
	if snapshot, ok := s.cache.Get(); ok {
		return snapshot
	}

	episodes, err := s.store.GetAll(ctx, "date")
	if err != nil {
		log.Printf("Store load failed, trying fallback: %v", err)
		if s.fallback != nil {
			fromFile, ferr := s.fallback.Load()
			if ferr == nil {
				log.Printf("Loaded %d episodes from fallback source", len(fromFile))
				s.cache.Set(fromFile)
				return fromFile
			}
			log.Printf("Fallback load failed: %v", ferr)
		}
		return nil
	}

	log.Printf("Loaded %d episodes from store", len(episodes))
	s.cache.Set(episodes)
	return episodes
}

// Stats recomputes dashboard statistics from the current collection.
func (s *Service) Stats(ctx context.Context) domain.DashboardStats {
	return search.Stats(s.Load(ctx))
}

// Get returns one episode by logical id, or nil when absent.
func (s *Service) Get(ctx context.Context, id string) *domain.Episode {
	for _, ep := range s.Load(ctx) {
		if ep.ID == id || ep.StoreID == id {
			return &ep
		}
	}
	return nil
}

// Update applies a partial field update to one episode and invalidates
// the cache.
func (s *Service) Update(ctx context.Context, id string, fields map[string]any) error {
	ep := s.Get(ctx, id)
	docID := id
	if ep != nil {
		docID = ep.DocID()
	}

	if err := s.store.UpdateFields(ctx, docID, fields); err != nil {
		return fmt.Errorf("update episode %s: %w", id, err)
	}
	s.cache.Invalidate()
	return nil
}

// Delete removes one episode and invalidates the cache. Deletion is
// immediate and irreversible.
func (s *Service) Delete(ctx context.Context, id string) error {
	ep := s.Get(ctx, id)
	docID := id
	if ep != nil {
		docID = ep.DocID()
	}

	if err := s.store.Delete(ctx, docID); err != nil {
		return fmt.Errorf("delete episode %s: %w", id, err)
	}
	s.cache.Invalidate()
	return nil
}
