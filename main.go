package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"podcast-archive/pkg/aiextract"
	"podcast-archive/pkg/content"
	"podcast-archive/pkg/extract"
)

// Quick inspection tool: extract a local transcript file and print the
// derived record without touching the store. Useful for checking what
// the heuristics pull out of a file before importing it.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transcript-file>\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	extracted, err := content.NewFileExtractor(nil).Extract(filepath.Base(path), data)
	if err != nil {
		log.Fatalf("Failed to extract text: %v", err)
	}

	episode := aiextract.BuildEpisode(filepath.Base(path), extracted.Text, extracted.DocTitle, nil)
	validation := extract.Validate(&episode)

	fmt.Printf("File: %s\n", episode.FileName)
	fmt.Printf("  Date: %s\n", episode.Date)
	fmt.Printf("  Series: %s\n", episode.Series)
	fmt.Printf("  Episode Number: %s\n", episode.EpisodeNumber)
	fmt.Printf("  Title: %s\n", episode.EpisodeTitle)
	fmt.Printf("  Hosts: %v\n", episode.Hosts)
	fmt.Printf("  Guests: %v\n", episode.Guests)
	fmt.Printf("  Word Count: %d\n", episode.WordCount)
	fmt.Println()

	if validation.IsComplete {
		fmt.Println("Record is complete.")
		return
	}
	fmt.Println("Record needs review:")
	for _, issue := range validation.Issues {
		fmt.Printf("  - %s\n", issue)
	}
}
