package search

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"podcast-archive/pkg/domain"
)

// SortKey selects an episode ordering.
type SortKey string

const (
	SortDateDesc SortKey = "date-desc"
	SortDateAsc  SortKey = "date-asc"
	SortTitle    SortKey = "title"
)

var titleCollator = collate.New(language.English, collate.IgnoreCase)

// Sort returns a new ordered slice; the input is never mutated. Episodes
// with unparseable dates sort after all dated episodes regardless of
// direction, tie-broken by id so the order is deterministic. Title
// ordering is locale-aware.
func Sort(episodes []domain.Episode, key SortKey) []domain.Episode {
	sorted := make([]domain.Episode, len(episodes))
	copy(sorted, episodes)

	switch key {
	case SortDateAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareByDate(&sorted[i], &sorted[j], false)
		})
	case SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return titleCollator.CompareString(sorted[i].EpisodeTitle, sorted[j].EpisodeTitle) < 0
		})
	default:
		// Unknown keys fall back to the newest-first listing order.
		sort.SliceStable(sorted, func(i, j int) bool {
			return compareByDate(&sorted[i], &sorted[j], true)
		})
	}

	return sorted
}

func compareByDate(a, b *domain.Episode, desc bool) bool {
	ta, okA := parseDate(a.Date)
	tb, okB := parseDate(b.Date)

	switch {
	case okA && okB:
		if ta.Equal(tb) {
			return a.ID < b.ID
		}
		if desc {
			return ta.After(tb)
		}
		return ta.Before(tb)
	case okA:
		return true // dated episodes come first
	case okB:
		return false
	default:
		return a.ID < b.ID
	}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
