package aiextract

import (
	"reflect"
	"testing"
)

func TestBuildEpisodeFilenameWins(t *testing.T) {
	ai := &Fields{
		EpisodeTitle:  "Archive Deep Dive",
		Series:        "WRONG",
		EpisodeNumber: "99",
		Date:          "1999-01-01",
		Hosts:         []string{"Alice Smith"},
	}

	ep := BuildEpisode("20230615-TECH-12.docx", "transcript text here", "doc", ai)

	if ep.Date != "2023-06-15" {
		t.Errorf("date = %q, filename must win", ep.Date)
	}
	if ep.Series != "TECH" || ep.EpisodeNumber != "12" {
		t.Errorf("series/number = %q/%q, filename must win", ep.Series, ep.EpisodeNumber)
	}
	if ep.EpisodeTitle != "Archive Deep Dive" {
		t.Errorf("title = %q", ep.EpisodeTitle)
	}
	if ep.ID != "2023-06-15-TECH-12" {
		t.Errorf("id = %q", ep.ID)
	}
	if ep.FileName != "20230615-TECH-12" {
		t.Errorf("fileName = %q", ep.FileName)
	}
	if ep.WordCount != 3 {
		t.Errorf("wordCount = %d", ep.WordCount)
	}
}

func TestBuildEpisodeServiceFillsGaps(t *testing.T) {
	ai := &Fields{Date: "2023-06-15", Series: "TECH", EpisodeNumber: "12"}

	ep := BuildEpisode("interview.txt", "text", "", ai)
	if ep.Date != "2023-06-15" || ep.Series != "TECH" || ep.EpisodeNumber != "12" {
		t.Errorf("episode = %+v", ep)
	}
}

func TestBuildEpisodeNilFieldsUsesHeuristics(t *testing.T) {
	text := "Welcome to The Archive Hour podcast.\nI'm Alice Smith.\nToday we are joined by Bob Jones."

	ep := BuildEpisode("20230615-TECH-12.docx", text, "", nil)

	if ep.EpisodeTitle != "The Archive Hour" {
		t.Errorf("title = %q", ep.EpisodeTitle)
	}
	if !reflect.DeepEqual(ep.Hosts, []string{"Alice Smith"}) {
		t.Errorf("hosts = %v", ep.Hosts)
	}
	if ep.Date != "2023-06-15" {
		t.Errorf("date = %q", ep.Date)
	}
	if ep.ExtractedAt == "" {
		t.Error("extractedAt must be set")
	}
}
