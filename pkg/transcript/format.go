// Package transcript normalizes raw speaker/timestamp text into the
// canonical "Speaker: [HH:MM:SS] text" paragraph structure used across
// the archive.
package transcript

import (
	"regexp"
	"strings"
)

var (
	// "[HH:MM:SS] Name:" anywhere in the text. The name may contain any
	// character except ':' and newline; this is a pure text rewrite, not
	// tokenized parsing.
	timestampFirstRe = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2})\]\s*([^:\n]+):\s*`)

	// A paragraph that begins with only a bracketed timestamp.
	bareTimestampRe = regexp.MustCompile(`^\[(\d{2}:\d{2}:\d{2})\]`)

	// The speaker label at the start of a paragraph.
	speakerLabelRe = regexp.MustCompile(`^([^:\[]+):`)
)

// Format rewrites "[HH:MM:SS] Name:" occurrences to "Name: [HH:MM:SS]",
// then walks blank-line-separated paragraphs and prepends the most
// recently seen speaker to any paragraph that starts with a bare
// timestamp. A leading bare-timestamp paragraph with no prior speaker is
// left unmodified.
//
// hosts and guests are unused by the formatting itself; they are retained
// for signature compatibility with downstream display.
//
// Note: the timestamp/speaker swap is not idempotent when applied to
// already-swapped text; the speaker backfill step is.
func Format(text string, hosts, guests []string) string {
	formatted := timestampFirstRe.ReplaceAllString(text, "${2}: [${1}] ")

	paragraphs := strings.Split(formatted, "\n\n")
	lastSpeaker := ""

	for i, paragraph := range paragraphs {
		if bareTimestampRe.MatchString(paragraph) && lastSpeaker != "" {
			paragraphs[i] = lastSpeaker + ": " + paragraph
			continue
		}
		if m := speakerLabelRe.FindStringSubmatch(paragraph); m != nil {
			lastSpeaker = strings.TrimSpace(m[1])
		}
	}

	return strings.Join(paragraphs, "\n\n")
}
