// Package feed resolves episode audio links from a podcast RSS feed.
package feed

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"podcast-archive/pkg/domain"
)

// AudioItem is one feed entry with a playable enclosure.
type AudioItem struct {
	Title    string
	AudioURL string
}

// Resolver parses a podcast RSS/Atom feed and matches archive episodes
// to their audio enclosures by title.
type Resolver struct {
	feedParser *gofeed.Parser
}

// NewResolver creates a feed resolver.
func NewResolver() *Resolver {
	return &Resolver{
		feedParser: gofeed.NewParser(),
	}
}

// FetchAudioItems fetches and parses the feed, returning every item
// that carries an audio enclosure.
func (r *Resolver) FetchAudioItems(feedURL string) ([]AudioItem, error) {
	feed, err := r.feedParser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSS feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	items := make([]AudioItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		audio := enclosureURL(item)
		if audio == "" {
			continue
		}
		items = append(items, AudioItem{
			Title:    item.Title,
			AudioURL: audio,
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no audio enclosures found in feed items")
	}

	return items, nil
}

// Enrich fills in AudioLink on episodes whose title matches a feed item.
// Episodes that already have a link are left alone. Returns the number
// of episodes enriched.
func (r *Resolver) Enrich(episodes []domain.Episode, items []AudioItem) int {
	index := make(map[string]string, len(items))
	for _, item := range items {
		index[normalizeTitle(item.Title)] = item.AudioURL
	}

	enriched := 0
	for i := range episodes {
		if episodes[i].AudioLink != "" || episodes[i].EpisodeTitle == "" {
			continue
		}
		if audio, ok := index[normalizeTitle(episodes[i].EpisodeTitle)]; ok {
			episodes[i].AudioLink = audio
			enriched++
		}
	}
	return enriched
}

func enclosureURL(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "audio/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
