package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"podcast-archive/pkg/aiextract"
	"podcast-archive/pkg/content"
	"podcast-archive/pkg/db"
	"podcast-archive/pkg/importer"
)

func main() {
	var (
		dir        = flag.String("dir", ".", "Directory of transcript files to import")
		delay      = flag.Duration("delay", 500*time.Millisecond, "Delay between files")
		reportPath = flag.String("report-dir", ".", "Directory the review report is written to")

		mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection string")
		dbName     = flag.String("db", "podcastarchive", "MongoDB database name")
		collection = flag.String("collection", "episodes", "MongoDB collection for episodes")

		endpoint = flag.String("extraction-endpoint", os.Getenv("EXTRACTION_ENDPOINT"), "AI extraction service endpoint (empty runs heuristics only)")
		apiKey   = flag.String("extraction-key", os.Getenv("EXTRACTION_API_KEY"), "AI extraction service API key")
		model    = flag.String("extraction-model", "gpt-4o-mini", "AI extraction model")
	)
	flag.Parse()

	ctx := context.Background()

	dbClient := db.NewClient(*mongoURI, *dbName, *collection)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbClient.Close(ctx)

	files, err := loadFiles(*dir)
	if err != nil {
		log.Fatalf("Failed to read transcript files: %v", err)
	}
	if len(files) == 0 {
		log.Fatalf("No transcript files found in %s", *dir)
	}

	var ai importer.MetadataClient
	if *endpoint != "" {
		ai = aiextract.NewClient(*endpoint, *apiKey, *model)
	}

	pipeline := importer.New(dbClient, content.NewFileExtractor(nil), ai, nil)
	pipeline.SetDelay(*delay)

	start := time.Now()
	log.Printf("Importing %d transcript files from %s", len(files), *dir)
	pipeline.Run(ctx, files)
	log.Printf("Done. Duration: %s", time.Since(start))

	if items := pipeline.ReviewItems(); len(items) > 0 {
		now := time.Now()
		name := filepath.Join(*reportPath, importer.ReportFileName(now))
		if err := os.WriteFile(name, []byte(pipeline.Report(now)), 0o644); err != nil {
			log.Fatalf("Failed to write review report: %v", err)
		}
		log.Printf("%d files need review, report written to %s", len(items), name)
	}
}

// loadFiles reads every supported transcript file in dir.
func loadFiles(dir string) ([]importer.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []importer.File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := content.KindForName(entry.Name()); err != nil {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, importer.File{Name: entry.Name(), Data: data})
	}
	return files, nil
}
