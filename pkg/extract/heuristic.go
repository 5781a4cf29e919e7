package extract

import (
	"regexp"
	"strings"
)

// TextHints is the best-effort metadata pulled out of raw transcript text.
// False positives and negatives are expected; this is the fallback path
// when the AI extraction service is unavailable or vague.
type TextHints struct {
	EpisodeTitle string
	Hosts        []string
	Guests       []string
}

// hintField says which part of TextHints a rule contributes to.
type hintField int

const (
	fieldTitle hintField = iota
	fieldHost
	fieldGuest
)

// hintRule is one entry of the heuristic pattern table. Title rules carry
// a capture group and take the first match; cue rules trigger a harvest of
// person-name-shaped tokens from the matching line.
type hintRule struct {
	pattern *regexp.Regexp
	field   hintField
	capture bool
}

// personNameRe matches "Firstname Lastname"-shaped token pairs.
var personNameRe = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)

var hintRules = []hintRule{
	{pattern: regexp.MustCompile(`(?i)Welcome to (.+?) podcast`), field: fieldTitle, capture: true},
	{pattern: regexp.MustCompile(`(?i)This is (.+?) podcast`), field: fieldTitle, capture: true},
	{pattern: regexp.MustCompile(`(?i)You're listening to (.+?) podcast`), field: fieldTitle, capture: true},
	{pattern: regexp.MustCompile(`(?i)I'm|My name is|This is`), field: fieldHost},
	{pattern: regexp.MustCompile(`(?i)joined by|with us today|welcome|guest`), field: fieldGuest},
}

// FromText scans raw text line by line against the heuristic pattern
// table. Host and guest lists are deduplicated before return.
func FromText(text string) TextHints {
	var hints TextHints
	var hosts, guests []string

	for _, line := range strings.Split(text, "\n") {
		for _, rule := range hintRules {
			switch rule.field {
			case fieldTitle:
				if hints.EpisodeTitle != "" {
					continue
				}
				if m := rule.pattern.FindStringSubmatch(line); m != nil {
					hints.EpisodeTitle = strings.TrimSpace(m[1])
				}
			case fieldHost:
				if rule.pattern.MatchString(line) {
					hosts = append(hosts, personNameRe.FindAllString(line, -1)...)
				}
			case fieldGuest:
				if rule.pattern.MatchString(line) {
					guests = append(guests, personNameRe.FindAllString(line, -1)...)
				}
			}
		}
	}

	hints.Hosts = Dedupe(hosts)
	hints.Guests = Dedupe(guests)
	return hints
}

// Dedupe removes duplicate entries preserving first-seen order.
func Dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
