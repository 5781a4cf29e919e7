package search

import (
	"reflect"
	"testing"

	"podcast-archive/pkg/domain"
)

func TestStats(t *testing.T) {
	episodes := []domain.Episode{
		{Series: "TECH", Date: "2023-06-15", Hosts: []string{"Alice Smith"}, Guests: []string{"Jane Doe"}},
		{Series: "TECH", Date: "2023-01-01", Hosts: []string{"Alice Smith"}, Guests: []string{"Bob Jones"}},
		{Date: "2024-02-02", Hosts: []string{"Carol West"}},
	}

	stats := Stats(episodes)

	if stats.TotalEpisodes != 3 {
		t.Errorf("totalEpisodes = %d", stats.TotalEpisodes)
	}
	if stats.TotalHosts != 2 {
		t.Errorf("totalHosts = %d", stats.TotalHosts)
	}
	if stats.TotalGuests != 2 {
		t.Errorf("totalGuests = %d", stats.TotalGuests)
	}
	if stats.SeriesBreakdown["TECH"] != 2 || stats.SeriesBreakdown[UnknownSeries] != 1 {
		t.Errorf("seriesBreakdown = %v", stats.SeriesBreakdown)
	}
	if stats.DateRange.Earliest != "2023-01-01" || stats.DateRange.Latest != "2024-02-02" {
		t.Errorf("dateRange = %+v", stats.DateRange)
	}
}

func TestStatsEmpty(t *testing.T) {
	stats := Stats(nil)
	if stats.TotalEpisodes != 0 {
		t.Errorf("totalEpisodes = %d", stats.TotalEpisodes)
	}
	if stats.DateRange.Earliest != "N/A" || stats.DateRange.Latest != "N/A" {
		t.Errorf("dateRange = %+v", stats.DateRange)
	}
}

func TestSeriesByCount(t *testing.T) {
	rows := SeriesByCount(map[string]int{"TECH": 2, "BIZ": 5, "ART": 2})
	want := []SeriesCount{
		{Series: "BIZ", Count: 5},
		{Series: "ART", Count: 2},
		{Series: "TECH", Count: 2},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v", rows)
	}
}
