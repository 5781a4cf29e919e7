// Package merge rewrites a field's value across every episode document:
// series values are scalar rewrites, host/guest values are array rewrites
// with set-semantics deduplication. Only documents that actually changed
// are written back.
package merge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"podcast-archive/pkg/db"
	"podcast-archive/pkg/domain"
	"podcast-archive/pkg/extract"
)

// Mode selects which episode field a merge operates on.
type Mode string

const (
	ModeSeries Mode = "series"
	ModeHosts  Mode = "hosts"
	ModeGuests Mode = "guests"
)

var (
	ErrNothingToMerge = errors.New("nothing to merge")
	ErrEmptyNewName   = errors.New("new name is empty")
	ErrUnknownMode    = errors.New("unknown merge mode")
)

// invalidator is the cache surface the engine needs after a write.
type invalidator interface {
	Invalidate()
}

// Engine scans the full episode collection and rewrites matching values.
// It assumes no concurrent mutation of the store during a scan; a racing
// write on the same document is last-writer-wins.
type Engine struct {
	store db.EpisodeStore
	cache invalidator
}

// NewEngine creates a merge engine over the given store. cache may be nil.
func NewEngine(store db.EpisodeStore, cache invalidator) *Engine {
	return &Engine{store: store, cache: cache}
}

// MergeMany rewrites every occurrence of any old name to newName in the
// field selected by mode, deduplicating array fields afterwards. It
// returns the number of documents updated. Callers must refresh derived
// views afterwards; the cache is invalidated here.
func (e *Engine) MergeMany(ctx context.Context, mode Mode, oldNames []string, newName string) (int, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrEmptyNewName
	}
	if len(oldNames) == 0 {
		return 0, ErrNothingToMerge
	}
	if len(oldNames) == 1 && oldNames[0] == newName {
		return 0, ErrNothingToMerge
	}

	episodes, err := e.store.GetAll(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("load episodes for merge: %w", err)
	}

	oldSet := make(map[string]struct{}, len(oldNames))
	for _, n := range oldNames {
		oldSet[n] = struct{}{}
	}

	updated := 0
	for i := range episodes {
		ep := &episodes[i]

		fields, changed, err := rewriteEpisode(ep, mode, oldSet, newName)
		if err != nil {
			return updated, err
		}
		if !changed {
			continue
		}

		if err := e.store.UpdateFields(ctx, ep.DocID(), fields); err != nil {
			return updated, fmt.Errorf("update episode %s: %w", ep.DocID(), err)
		}
		updated++
	}

	e.invalidate()
	log.Printf("Merged %d name(s) into %q (%d episodes updated)", len(oldNames), newName, updated)
	return updated, nil
}

// RenameSingle rewrites exactly one old name to newName, used for
// in-place renames. Same semantics as MergeMany with one old value.
func (e *Engine) RenameSingle(ctx context.Context, mode Mode, oldName, newName string) (int, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrEmptyNewName
	}
	if oldName == newName {
		return 0, ErrNothingToMerge
	}
	return e.MergeMany(ctx, mode, []string{oldName}, newName)
}

// DeleteSeries deletes every episode whose series field exactly equals
// the target. Irreversible. Returns the number of documents deleted.
func (e *Engine) DeleteSeries(ctx context.Context, series string) (int, error) {
	episodes, err := e.store.GetWhere(ctx, "series", series)
	if err != nil {
		return 0, fmt.Errorf("load series %q for delete: %w", series, err)
	}

	deleted := 0
	for i := range episodes {
		if err := e.store.Delete(ctx, episodes[i].DocID()); err != nil {
			return deleted, fmt.Errorf("delete episode %s: %w", episodes[i].DocID(), err)
		}
		deleted++
	}

	e.invalidate()
	log.Printf("Deleted series %q (%d episodes removed)", series, deleted)
	return deleted, nil
}

func (e *Engine) invalidate() {
	if e.cache != nil {
		e.cache.Invalidate()
	}
}

// rewriteEpisode computes the partial update for one episode, reporting
// whether anything changed. Array rewrites compare the serialized
// before/after lists so a rewrite that lands on an identical list is a
// no-op and is not written.
func rewriteEpisode(ep *domain.Episode, mode Mode, oldSet map[string]struct{}, newName string) (map[string]any, bool, error) {
	switch mode {
	case ModeSeries:
		if _, ok := oldSet[ep.Series]; !ok {
			return nil, false, nil
		}
		ep.Series = newName
		return map[string]any{"series": newName}, true, nil

	case ModeHosts:
		rewritten, changed := rewriteNames(ep.Hosts, oldSet, newName)
		if !changed {
			return nil, false, nil
		}
		ep.Hosts = rewritten
		return map[string]any{"hosts": rewritten}, true, nil

	case ModeGuests:
		rewritten, changed := rewriteNames(ep.Guests, oldSet, newName)
		if !changed {
			return nil, false, nil
		}
		ep.Guests = rewritten
		return map[string]any{"guests": rewritten}, true, nil

	default:
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

// rewriteNames maps every entry that (after trimming) equals an old name
// to newName, then deduplicates. Deduplication can shrink the list.
func rewriteNames(names []string, oldSet map[string]struct{}, newName string) ([]string, bool) {
	if len(names) == 0 {
		return names, false
	}
	mapped := make([]string, len(names))
	for i, n := range names {
		if _, ok := oldSet[strings.TrimSpace(n)]; ok {
			mapped[i] = newName
		} else {
			mapped[i] = n
		}
	}

	unique := extract.Dedupe(mapped)
	return unique, !sameNames(names, unique)
}

func sameNames(a, b []string) bool {
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	return string(aj) == string(bj)
}
