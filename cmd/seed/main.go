package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"podcast-archive/pkg/db"
	"podcast-archive/pkg/domain"
)

func main() {
	var (
		input      = flag.String("input", "episodes.json", "JSON file with an array of episodes")
		mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
		dbName     = flag.String("db", "podcastarchive", "MongoDB database name")
		collection = flag.String("collection", "episodes", "MongoDB collection for episodes")
	)
	flag.Parse()

	ctx := context.Background()

	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *input, err)
	}

	var episodes []domain.Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		log.Fatalf("Failed to parse %s: %v", *input, err)
	}
	if len(episodes) == 0 {
		log.Fatalf("No episodes found in %s", *input)
	}

	dbClient := db.NewClient(*mongoURI, *dbName, *collection)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close(ctx)

	ops := make([]db.BatchOp, len(episodes))
	for i := range episodes {
		ops[i] = db.BatchOp{Kind: db.BatchCreate, Episode: &episodes[i]}
	}

	start := time.Now()
	if err := dbClient.BatchWrite(ctx, ops); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Printf("Seeded %d episodes in %s", len(episodes), time.Since(start))
}
