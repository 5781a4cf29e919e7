// Package search provides pure functions over the in-memory episode set:
// substring search with match-type tagging, multi-predicate filtering,
// sorting and aggregate statistics. Nothing here touches the store.
package search

import (
	"strings"

	"podcast-archive/pkg/domain"
)

// Context window sizes around the first transcript occurrence.
const (
	contextBefore = 50
	contextAfter  = 100
)

// Search runs a case-insensitive substring match against title, guest
// names, host names and transcript body, in that order. Each field
// category that matches for an episode contributes one result tagged with
// that category, so a single episode can yield up to four results.
// Transcript matches carry an ellipsis-wrapped context snippet.
func Search(episodes []domain.Episode, query string) []domain.SearchResult {
	lowerQuery := strings.ToLower(query)
	if lowerQuery == "" {
		return nil
	}

	var results []domain.SearchResult

	for i := range episodes {
		ep := &episodes[i]

		if strings.Contains(strings.ToLower(ep.EpisodeTitle), lowerQuery) {
			results = append(results, domain.SearchResult{Episode: ep, MatchType: domain.MatchTitle})
		}

		if anyNameContains(ep.Guests, lowerQuery) {
			results = append(results, domain.SearchResult{Episode: ep, MatchType: domain.MatchGuest})
		}

		if anyNameContains(ep.Hosts, lowerQuery) {
			results = append(results, domain.SearchResult{Episode: ep, MatchType: domain.MatchHost})
		}

		if idx := indexCaseInsensitive(ep.Transcript, lowerQuery); idx >= 0 {
			results = append(results, domain.SearchResult{
				Episode:   ep,
				MatchType: domain.MatchTranscript,
				Context:   contextSnippet(ep.Transcript, idx),
			})
		}
	}

	return results
}

func anyNameContains(names []string, lowerQuery string) bool {
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), lowerQuery) {
			return true
		}
	}
	return false
}

// indexCaseInsensitive returns the byte offset in s of the first
// case-insensitive occurrence of lowerSubstr, or -1. The offset is valid
// for slicing s itself: lowercasing changes the byte length of some runes,
// so an index into the lowered text cannot be used on the original.
func indexCaseInsensitive(s, lowerSubstr string) int {
	lower := strings.ToLower(s)
	idx := strings.Index(lower, lowerSubstr)
	if idx < 0 {
		return -1
	}
	if len(lower) == len(s) {
		return idx
	}
	for i := range s {
		if strings.HasPrefix(strings.ToLower(s[i:]), lowerSubstr) {
			return i
		}
	}
	return -1
}

// contextSnippet extracts the window around the first occurrence,
// trimmed and ellipsis-wrapped for display.
func contextSnippet(transcript string, idx int) string {
	start := idx - contextBefore
	if start < 0 {
		start = 0
	}
	end := idx + contextAfter
	if end > len(transcript) {
		end = len(transcript)
	}
	if start > end {
		start = end
	}
	return "..." + strings.TrimSpace(transcript[start:end]) + "..."
}
