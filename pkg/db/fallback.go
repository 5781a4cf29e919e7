package db

import (
	"encoding/json"
	"fmt"
	"os"

	"podcast-archive/pkg/domain"
)

// FallbackSource loads episodes from a static JSON export. It is the
// secondary data source used when the document store is unreachable;
// it is read-only.
type FallbackSource struct {
	path string
}

// NewFallbackSource creates a fallback source backed by a JSON file
// containing an array of episodes.
func NewFallbackSource(path string) *FallbackSource {
	return &FallbackSource{path: path}
}

// Load reads and decodes the full episode set from the JSON file.
func (f *FallbackSource) Load() ([]domain.Episode, error) {
	if f == nil || f.path == "" {
		return nil, fmt.Errorf("no fallback source configured")
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback file: %w", err)
	}

	var episodes []domain.Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("failed to decode fallback file: %w", err)
	}

	return episodes, nil
}
