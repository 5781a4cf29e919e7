package main

import (
	"context"
	"flag"
	"log"
	"os"

	"podcast-archive/pkg/db"
	"podcast-archive/pkg/feed"
)

// Fetches the podcast RSS feed and fills in audio links for archived
// episodes whose titles match a feed item.
func main() {
	var (
		mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
		dbName     = flag.String("db", "podcastarchive", "MongoDB database name")
		collection = flag.String("collection", "episodes", "MongoDB collection for episodes")
		feedURL    = flag.String("feed-url", os.Getenv("FEED_URL"), "podcast RSS feed URL")
		dryRun     = flag.Bool("dry-run", false, "report matches without writing to the database")
	)
	flag.Parse()

	if *feedURL == "" {
		log.Fatalf("A feed URL is required (use -feed-url or set FEED_URL)")
	}

	ctx := context.Background()

	dbClient := db.NewClient(*mongoURI, *dbName, *collection)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close(ctx)

	episodes, err := dbClient.GetAll(ctx, "date")
	if err != nil {
		log.Fatalf("Failed to load episodes: %v", err)
	}
	log.Printf("Loaded %d episodes", len(episodes))

	resolver := feed.NewResolver()
	items, err := resolver.FetchAudioItems(*feedURL)
	if err != nil {
		log.Fatalf("Failed to fetch feed: %v", err)
	}
	log.Printf("Feed has %d items with audio enclosures", len(items))

	hadLink := make(map[string]bool, len(episodes))
	for _, ep := range episodes {
		if ep.AudioLink != "" {
			hadLink[ep.ID] = true
		}
	}

	enriched := resolver.Enrich(episodes, items)
	if enriched == 0 {
		log.Printf("No episodes matched a feed item, nothing to do")
		return
	}
	log.Printf("Matched %d episodes to audio links", enriched)

	if *dryRun {
		for _, ep := range episodes {
			if ep.AudioLink != "" && !hadLink[ep.ID] {
				log.Printf("  %s -> %s", ep.EpisodeTitle, ep.AudioLink)
			}
		}
		log.Printf("Dry run, no changes written")
		return
	}

	updated := 0
	for _, ep := range episodes {
		if ep.AudioLink == "" || hadLink[ep.ID] || ep.StoreID == "" {
			continue
		}
		err := dbClient.UpdateFields(ctx, ep.StoreID, map[string]any{"audioLink": ep.AudioLink})
		if err != nil {
			log.Printf("Failed to update %q: %v", ep.EpisodeTitle, err)
			continue
		}
		updated++
	}
	log.Printf("Wrote audio links for %d episodes", updated)
}
