package search

import (
	"sort"

	"podcast-archive/pkg/domain"
)

// Stats accumulates dashboard statistics in a single pass over the
// episode set. An empty collection yields "N/A" date bounds and zero
// counts. Stats is recomputed on every load; it is never persisted.
func Stats(episodes []domain.Episode) domain.DashboardStats {
	seriesBreakdown := make(map[string]int)
	allHosts := make(map[string]struct{})
	allGuests := make(map[string]struct{})
	var dates []string

	for _, ep := range episodes {
		series := ep.Series
		if series == "" {
			series = UnknownSeries
		}
		seriesBreakdown[series]++

		for _, h := range ep.Hosts {
			allHosts[h] = struct{}{}
		}
		for _, g := range ep.Guests {
			allGuests[g] = struct{}{}
		}

		if ep.Date != "" {
			dates = append(dates, ep.Date)
		}
	}

	sort.Strings(dates)

	dateRange := domain.DateRange{Earliest: "N/A", Latest: "N/A"}
	if len(dates) > 0 {
		dateRange.Earliest = dates[0]
		dateRange.Latest = dates[len(dates)-1]
	}

	return domain.DashboardStats{
		TotalEpisodes:   len(episodes),
		TotalGuests:     len(allGuests),
		TotalHosts:      len(allHosts),
		SeriesBreakdown: seriesBreakdown,
		DateRange:       dateRange,
	}
}

// SeriesCount is one row of the dashboard's series breakdown.
type SeriesCount struct {
	Series string `json:"series"`
	Count  int    `json:"count"`
}

// SeriesByCount flattens a series breakdown into rows sorted by count
// descending, ties broken by name, for dashboard display.
func SeriesByCount(breakdown map[string]int) []SeriesCount {
	rows := make([]SeriesCount, 0, len(breakdown))
	for series, count := range breakdown {
		rows = append(rows, SeriesCount{Series: series, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Series < rows[j].Series
	})
	return rows
}
