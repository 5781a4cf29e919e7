// Package extract derives episode metadata from filenames and raw
// transcript text, and validates extracted records for completeness.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	extensionRe = regexp.MustCompile(`(?i)\.(docx?|txt|pdf)$`)
	dateRunRe   = regexp.MustCompile(`(\d{8})`)
	seriesRe    = regexp.MustCompile(`(?i)-([A-Z]+)-(\d+)`)
	presentRe   = regexp.MustCompile(`(?i)Present_(\d+)`)
)

// FilenameInfo holds the metadata components derivable from an upload name.
// Components that could not be found are empty strings.
type FilenameInfo struct {
	Date          string // ISO YYYY-MM-DD
	Series        string
	EpisodeNumber string
}

// StripExtension removes a known transcript file extension from name.
func StripExtension(name string) string {
	return extensionRe.ReplaceAllString(name, "")
}

// ParseFilename derives date, series and episode number from an upload
// name: an 8-digit run becomes YYYY-MM-DD, a "-LETTERS-digits" run becomes
// (series, episodeNumber) with the series upper-cased, and a
// "Present_<digits>" pattern maps to series "Present". Never fails;
// missing components are returned empty.
func ParseFilename(name string) FilenameInfo {
	base := StripExtension(name)

	var info FilenameInfo

	if m := dateRunRe.FindStringSubmatch(base); m != nil {
		d := m[1]
		info.Date = fmt.Sprintf("%s-%s-%s", d[0:4], d[4:6], d[6:8])
	}

	if m := seriesRe.FindStringSubmatch(base); m != nil {
		info.Series = strings.ToUpper(m[1])
		info.EpisodeNumber = m[2]
	} else if m := presentRe.FindStringSubmatch(base); m != nil {
		info.Series = "Present"
		info.EpisodeNumber = m[1]
	}

	return info
}
