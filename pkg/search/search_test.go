package search

import (
	"strings"
	"testing"

	"podcast-archive/pkg/domain"
)

func TestSearchOneResultPerMatchingField(t *testing.T) {
	episodes := []domain.Episode{
		{
			ID:           "ep1",
			EpisodeTitle: "Interview with Jane",
			Guests:       []string{"Jane Smith"},
		},
	}

	results := Search(episodes, "jane")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].MatchType != domain.MatchTitle || results[1].MatchType != domain.MatchGuest {
		t.Errorf("match types = %v, %v", results[0].MatchType, results[1].MatchType)
	}
	if results[0].Episode.ID != "ep1" || results[1].Episode.ID != "ep1" {
		t.Error("both results must point at the same episode")
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	episodes := []domain.Episode{
		{ID: "ep1", Hosts: []string{"Alice Smith"}},
	}

	results := Search(episodes, "ALICE")
	if len(results) != 1 || results[0].MatchType != domain.MatchHost {
		t.Errorf("results = %+v", results)
	}
}

func TestSearchTranscriptContext(t *testing.T) {
	transcript := strings.Repeat("a", 200) + " archives " + strings.Repeat("b", 200)
	episodes := []domain.Episode{
		{ID: "ep1", Transcript: transcript},
	}

	results := Search(episodes, "archives")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	ctx := results[0].Context
	if !strings.HasPrefix(ctx, "...") || !strings.HasSuffix(ctx, "...") {
		t.Errorf("context not ellipsis-wrapped: %q", ctx)
	}
	if !strings.Contains(ctx, "archives") {
		t.Errorf("context missing match: %q", ctx)
	}
	// 50 before + match + 100 after, plus the ellipses.
	if len(ctx) > 6+50+len("archives")+100 {
		t.Errorf("context too long: %d chars", len(ctx))
	}
}

func TestSearchEarlyMatchClampsWindow(t *testing.T) {
	episodes := []domain.Episode{
		{ID: "ep1", Transcript: "archives at the very start of the text"},
	}

	results := Search(episodes, "archives")
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Context != "...archives at the very start of the text..." {
		t.Errorf("context = %q", results[0].Context)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	episodes := []domain.Episode{{ID: "ep1", EpisodeTitle: "Anything"}}
	if got := Search(episodes, ""); got != nil {
		t.Errorf("empty query must return nil, got %v", got)
	}
}

func TestSearchTranscriptWithLengthChangingRunes(t *testing.T) {
	// Lowercasing U+023A widens it from 2 bytes to 3, so an index taken
	// from the lowered transcript would overshoot the original.
	episodes := []domain.Episode{
		{ID: "ep1", Transcript: strings.Repeat("Ⱥ", 200) + " zebra crossing ahead"},
	}

	results := Search(episodes, "zebra")
	if len(results) != 1 || results[0].MatchType != domain.MatchTranscript {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[0].Context, "zebra") {
		t.Errorf("context %q does not cover the match", results[0].Context)
	}
}
