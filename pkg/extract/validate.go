package extract

import (
	"strings"

	"podcast-archive/pkg/domain"
)

// minTranscriptLen is the minimum trimmed transcript length for a record
// to be considered complete.
const minTranscriptLen = 100

// Validation is the completeness check result for an extracted episode.
// IsComplete is true exactly when Issues is empty.
type Validation struct {
	IsComplete bool     `json:"isComplete"`
	Issues     []string `json:"issues"`
}

// Validate checks an extracted episode for the required fields. Issue
// order is fixed (date, title, series, hosts, transcript) so operator
// reports and assertions are deterministic.
func Validate(e *domain.Episode) Validation {
	var issues []string

	if e.Date == "" {
		issues = append(issues, "Missing date")
	}
	if strings.TrimSpace(e.EpisodeTitle) == "" {
		issues = append(issues, "Missing episode title")
	}
	if strings.TrimSpace(e.Series) == "" {
		issues = append(issues, "Missing series name")
	}
	if len(e.Hosts) == 0 {
		issues = append(issues, "No hosts identified")
	}
	if len(strings.TrimSpace(e.Transcript)) < minTranscriptLen {
		issues = append(issues, "Transcript too short or missing")
	}

	return Validation{
		IsComplete: len(issues) == 0,
		Issues:     issues,
	}
}
