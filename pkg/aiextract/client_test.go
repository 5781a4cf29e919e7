package aiextract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}

		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}))
}

func TestExtract(t *testing.T) {
	srv := completionServer(t, `Here is the data: {"episodeTitle":"Archive Deep Dive","series":"TECH","hosts":["Alice Smith"],"date":"2023-06-15"} hope that helps`)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model")
	fields, err := client.Extract(context.Background(), "some transcript text", "")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fields.EpisodeTitle != "Archive Deep Dive" || fields.Series != "TECH" || fields.Date != "2023-06-15" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestExtractTruncatesInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages[1].Content) > maxInputLen+100 {
			t.Errorf("user message not truncated: %d chars", len(req.Messages[1].Content))
		}
		if !strings.Contains(req.Messages[1].Content, "Document title: N/A") {
			t.Error("empty doc title must default to N/A")
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"{}"}}]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "test-model")
	if _, err := client.Extract(context.Background(), strings.Repeat("x", 10000), ""); err != nil {
		t.Fatalf("Extract: %v", err)
	}
}

func TestExtractTruncatesOnRuneBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		// A split rune survives JSON transport as U+FFFD.
		if strings.ContainsRune(req.Messages[1].Content, utf8.RuneError) {
			t.Error("truncation split a multi-byte rune")
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"{}"}}]}`)
	}))
	defer srv.Close()

	// One ASCII byte shifts every two-byte rune off an even offset, so a
	// cut at the raw byte limit would land inside a rune.
	text := "a" + strings.Repeat("é", 3000)

	client := NewClient(srv.URL, "", "test-model")
	if _, err := client.Extract(context.Background(), text, ""); err != nil {
		t.Fatalf("Extract: %v", err)
	}
}

func TestExtractServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key", "model")
	if _, err := client.Extract(context.Background(), "text", "title"); !errors.Is(err, ErrServiceFailed) {
		t.Errorf("expected ErrServiceFailed, got %v", err)
	}

	srv.Close()
	if _, err := client.Extract(context.Background(), "text", "title"); !errors.Is(err, ErrServiceFailed) {
		t.Errorf("unreachable service: expected ErrServiceFailed, got %v", err)
	}
}

func TestParseFields(t *testing.T) {
	fields, err := ParseFields(`Sure! {"episodeTitle":"T","hosts":["A B"]} done`)
	if err != nil {
		t.Fatalf("ParseFields: %v", err)
	}
	if fields.EpisodeTitle != "T" || len(fields.Hosts) != 1 {
		t.Errorf("fields = %+v", fields)
	}

	if _, err := ParseFields("no json here at all"); !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON, got %v", err)
	}

	if _, err := ParseFields(`{"episodeTitle": }`); !errors.Is(err, ErrNoJSON) {
		t.Errorf("malformed object: expected ErrNoJSON, got %v", err)
	}
}
