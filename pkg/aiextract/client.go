// Package aiextract calls an external text-completion service to pull
// structured episode metadata out of raw transcript text, falling back to
// filename and heuristic extraction when the service fails.
package aiextract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"podcast-archive/pkg/domain"
)

var (
	// ErrServiceFailed marks transport-level failures: the service was
	// unreachable or answered with a non-OK status.
	ErrServiceFailed = errors.New("extraction service request failed")

	// ErrNoJSON marks a reachable service whose response contained no
	// parseable JSON object. Callers log this separately from outages.
	ErrNoJSON = errors.New("no JSON object in service response")
)

// maxInputLen bounds the transcript prefix sent to the service, per its
// input limits.
const maxInputLen = 4000

const systemPrompt = "Extract podcast data as JSON. Return only valid JSON with: " +
	"episodeTitle, series, episodeNumber, hosts (array), guests (array), " +
	"guestWorkExperience (array of {name, title, company}), date (YYYY-MM-DD format if found). " +
	"Look at document title and content for all fields."

// Fields is the structured record the service is asked to produce.
// Any field may be empty.
type Fields struct {
	EpisodeTitle        string                       `json:"episodeTitle"`
	Series              string                       `json:"series"`
	EpisodeNumber       string                       `json:"episodeNumber"`
	Hosts               []string                     `json:"hosts"`
	Guests              []string                     `json:"guests"`
	GuestWorkExperience []domain.GuestWorkExperience `json:"guestWorkExperience"`
	Date                string                       `json:"date"`
}

// Client talks to a chat-style completion endpoint.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewClient creates an extraction client for the given completion endpoint.
func NewClient(endpoint, apiKey, model string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends a bounded transcript prefix plus the optional document
// title to the completion service and parses the structured record out of
// its free-form reply. Transport failures wrap ErrServiceFailed; a reply
// without a JSON object returns empty Fields and ErrNoJSON.
func (c *Client) Extract(ctx context.Context, text, docTitle string) (Fields, error) {
	if docTitle == "" {
		docTitle = "N/A"
	}
	if len(text) > maxInputLen {
		cut := maxInputLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Document title: %s\n\nExtract from this transcript:\n\n%s", docTitle, text)},
		},
		Temperature: 0.1,
		MaxTokens:   1000,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Fields{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Fields{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: %v", ErrServiceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Fields{}, fmt.Errorf("%w: unexpected status %d", ErrServiceFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: read response: %v", ErrServiceFailed, err)
	}

	var completion chatResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return Fields{}, fmt.Errorf("decode completion payload: %w", err)
	}
	if len(completion.Choices) == 0 {
		return Fields{}, fmt.Errorf("%w: completion has no choices", ErrServiceFailed)
	}

	return ParseFields(completion.Choices[0].Message.Content)
}

// ParseFields extracts the first brace-delimited JSON object found
// anywhere in content and decodes it. The scan is defensive against
// leading or trailing commentary the service might emit. A missing or
// undecodable object yields empty Fields and ErrNoJSON.
func ParseFields(content string) (Fields, error) {
	jsonStr, ok := extractJSONObject(content)
	if !ok {
		return Fields{}, ErrNoJSON
	}

	var fields Fields
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return Fields{}, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	return fields, nil
}

// extractJSONObject returns the substring between the first '{' and the
// last '}' in s, when both exist in order.
func extractJSONObject(s string) (string, bool) {
	start := -1
	end := -1
	for i, r := range s {
		if r == '{' && start == -1 {
			start = i
		}
		if r == '}' {
			end = i
		}
	}
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
