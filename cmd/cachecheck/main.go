package main

import (
	"context"
	"flag"
	"log"
	"time"

	"podcast-archive/pkg/cache"
	"podcast-archive/pkg/db"
	"podcast-archive/pkg/episodes"
)

// Loads the archive twice and reports timings, so a deployment can
// confirm the second load is served from cache.
func main() {
	var (
		mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
		dbName     = flag.String("db", "podcastarchive", "MongoDB database name")
		collection = flag.String("collection", "episodes", "MongoDB collection for episodes")
	)
	flag.Parse()

	ctx := context.Background()

	dbClient := db.NewClient(*mongoURI, *dbName, *collection)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close(ctx)

	svc := episodes.New(dbClient, cache.New(), nil)

	start := time.Now()
	first := svc.Load(ctx)
	coldDuration := time.Since(start)

	start = time.Now()
	second := svc.Load(ctx)
	warmDuration := time.Since(start)

	log.Printf("Cold load: %d episodes in %s", len(first), coldDuration)
	log.Printf("Warm load: %d episodes in %s", len(second), warmDuration)

	if warmDuration < coldDuration {
		log.Printf("Cache OK (warm load %.1fx faster)", float64(coldDuration)/float64(warmDuration))
	} else {
		log.Printf("Warning: warm load was not faster, cache may not be serving reads")
	}
}
