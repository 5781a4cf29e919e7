package domain

// GuestWorkExperience is one entry of a guest's professional background,
// carried independently of the guests list (no referential link enforced).
type GuestWorkExperience struct {
	Name    string `bson:"name" json:"name"`
	Title   string `bson:"title" json:"title"`
	Company string `bson:"company" json:"company"`
}

// Episode is the sole persisted entity: one transcript plus its metadata.
//
// ID is derived at creation as "{date}-{series}-{episodeNumber}" and is not
// guaranteed unique if inputs collide. StoreID is the backing store's own
// document handle; when present, mutations target StoreID, otherwise ID.
type Episode struct {
	ID            string `bson:"id" json:"id"`
	StoreID       string `bson:"-" json:"storeId,omitempty"`
	FileName      string `bson:"fileName" json:"fileName"`
	Date          string `bson:"date" json:"date"`
	Series        string `bson:"series" json:"series"`
	EpisodeNumber string `bson:"episodeNumber" json:"episodeNumber"`
	EpisodeTitle  string `bson:"episodeTitle" json:"episodeTitle"`

	Hosts               []string              `bson:"hosts" json:"hosts"`
	Guests              []string              `bson:"guests" json:"guests"`
	GuestWorkExperience []GuestWorkExperience `bson:"guestWorkExperience" json:"guestWorkExperience"`

	// Transcript is free text, paragraph-separated by a blank line, each
	// paragraph conventionally starting with "SpeakerName: [HH:MM:SS] ".
	Transcript string `bson:"transcript" json:"transcript"`

	AudioLink   string `bson:"audioLink" json:"audioLink"`
	WordCount   int    `bson:"wordCount" json:"wordCount"`
	ExtractedAt string `bson:"extractedAt" json:"extractedAt"`

	// Optional enhanced fields.
	KeyTopics     []string `bson:"keyTopics,omitempty" json:"keyTopics,omitempty"`
	NotableQuotes []string `bson:"notableQuotes,omitempty" json:"notableQuotes,omitempty"`
	Summary       string   `bson:"summary,omitempty" json:"summary,omitempty"`
	UploadedAt    string   `bson:"uploadedAt,omitempty" json:"uploadedAt,omitempty"`
}

// DocID resolves the identifier mutations should target: the store's own
// handle when present, else the derived logical id.
func (e *Episode) DocID() string {
	if e.StoreID != "" {
		return e.StoreID
	}
	return e.ID
}

// DashboardStats is derived from the full episode set on every load.
// It has no independent lifecycle and is never persisted.
type DashboardStats struct {
	TotalEpisodes   int            `json:"totalEpisodes"`
	TotalGuests     int            `json:"totalGuests"`
	TotalHosts      int            `json:"totalHosts"`
	SeriesBreakdown map[string]int `json:"seriesBreakdown"`
	DateRange       DateRange      `json:"dateRange"`
}

// DateRange holds the earliest and latest episode dates, or "N/A" when the
// collection has no dated episodes.
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// MatchType tags which field of an episode matched a search query.
type MatchType string

const (
	MatchTitle      MatchType = "title"
	MatchGuest      MatchType = "guest"
	MatchHost       MatchType = "host"
	MatchTranscript MatchType = "transcript"
)

// SearchResult is one search hit: an episode plus the field category that
// matched. An episode matching several categories yields one result per
// category. Context is only set for transcript matches.
type SearchResult struct {
	Episode   *Episode  `json:"episode"`
	MatchType MatchType `json:"matchType"`
	Context   string    `json:"context,omitempty"`
}
