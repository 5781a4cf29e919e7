package search

import "podcast-archive/pkg/domain"

// UnknownSeries substitutes for an empty series field before comparison.
const UnknownSeries = "Unknown"

// FilterOptions are AND-combined predicates over the episode set. Zero
// values disable a predicate. Date bounds are inclusive ISO strings;
// plain string comparison is safe because ISO-8601 sorts lexicographically.
type FilterOptions struct {
	Series    string `json:"series,omitempty"`
	Host      string `json:"host,omitempty"`
	Guest     string `json:"guest,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Filter returns the episodes surviving every active predicate. Missing
// episode fields default to UnknownSeries or empty lists; absent fields
// never cause a failure. Predicate order does not affect the result.
func Filter(episodes []domain.Episode, opts FilterOptions) []domain.Episode {
	filtered := make([]domain.Episode, 0, len(episodes))

	for _, ep := range episodes {
		series := ep.Series
		if series == "" {
			series = UnknownSeries
		}

		if opts.Series != "" && series != opts.Series {
			continue
		}
		if opts.Host != "" && !containsName(ep.Hosts, opts.Host) {
			continue
		}
		if opts.Guest != "" && !containsName(ep.Guests, opts.Guest) {
			continue
		}
		if opts.StartDate != "" && ep.Date != "" && ep.Date < opts.StartDate {
			continue
		}
		if opts.EndDate != "" && ep.Date != "" && ep.Date > opts.EndDate {
			continue
		}

		filtered = append(filtered, ep)
	}

	return filtered
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
