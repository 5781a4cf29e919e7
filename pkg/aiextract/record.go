package aiextract

import (
	"fmt"
	"strings"
	"time"

	"podcast-archive/pkg/domain"
	"podcast-archive/pkg/extract"
	"podcast-archive/pkg/transcript"
)

// BuildEpisode assembles an episode record from the raw transcript text,
// the upload name and the service's structured fields. Pass nil ai to
// build entirely from filename and heuristic extraction - that is the
// full fallback path taken when the service fails.
//
// Merge precedence: filename-derived date/series/episodeNumber win when
// present, else the service's values, else empty. Hosts and guests use
// the service result only when non-empty, else the heuristic result.
func BuildEpisode(fileName, text, docTitle string, ai *Fields) domain.Episode {
	info := extract.ParseFilename(fileName)
	hints := extract.FromText(text)
	if ai == nil {
		ai = &Fields{}
	}

	date := firstNonEmpty(info.Date, ai.Date)
	series := firstNonEmpty(info.Series, ai.Series)
	episodeNumber := firstNonEmpty(info.EpisodeNumber, ai.EpisodeNumber)

	hosts := ai.Hosts
	if len(hosts) == 0 {
		hosts = hints.Hosts
	}
	guests := ai.Guests
	if len(guests) == 0 {
		guests = hints.Guests
	}

	return domain.Episode{
		ID:                  fmt.Sprintf("%s-%s-%s", date, series, episodeNumber),
		FileName:            extract.StripExtension(fileName),
		Date:                date,
		Series:              series,
		EpisodeNumber:       episodeNumber,
		EpisodeTitle:        firstNonEmpty(ai.EpisodeTitle, hints.EpisodeTitle),
		Hosts:               hosts,
		Guests:              guests,
		GuestWorkExperience: ai.GuestWorkExperience,
		Transcript:          transcript.Format(text, hosts, guests),
		WordCount:           len(strings.Fields(text)),
		ExtractedAt:         time.Now().UTC().Format(time.RFC3339),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
