package content

import (
	"errors"
	"strings"
	"testing"
)

func TestKindForName(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"episode.txt", KindPlain},
		{"episode.TXT", KindPlain},
		{"page.html", KindHTML},
		{"page.htm", KindHTML},
		{"episode.doc", KindWord},
		{"episode.docx", KindWord},
	}
	for _, tt := range tests {
		got, err := KindForName(tt.name)
		if err != nil || got != tt.want {
			t.Errorf("KindForName(%q) = %v, %v", tt.name, got, err)
		}
	}

	if _, err := KindForName("audio.mp3"); !errors.Is(err, ErrUnsupportedKind) {
		t.Errorf("mp3: got %v", err)
	}
	if _, err := KindForName(""); err == nil {
		t.Error("empty name must fail")
	}
}

func TestExtractPlain(t *testing.T) {
	out, err := NewFileExtractor(nil).Extract("notes.txt", []byte("raw transcript"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if out.Text != "raw transcript" || out.DocTitle != "" {
		t.Errorf("out = %+v", out)
	}
}

func TestExtractHTML(t *testing.T) {
	html := `<html><head><title>Episode 12 Transcript</title></head>` +
		`<body><article><p>Alice: welcome to the show.</p><p>Bob: thanks for having me.</p></article></body></html>`

	out, err := NewFileExtractor(nil).Extract("page.html", []byte(html))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(out.Text, "welcome to the show") {
		t.Errorf("text = %q", out.Text)
	}
	if out.DocTitle != "Episode 12 Transcript" {
		t.Errorf("docTitle = %q", out.DocTitle)
	}
}

type fakeWord struct{ text string }

func (f fakeWord) ExtractRawText(fileBytes []byte) (string, error) { return f.text, nil }

func TestExtractWord(t *testing.T) {
	out, err := NewFileExtractor(fakeWord{text: "word body"}).Extract("20230615-TECH-12.docx", []byte("binary"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if out.Text != "word body" {
		t.Errorf("text = %q", out.Text)
	}
	if out.DocTitle != "20230615-TECH-12" {
		t.Errorf("docTitle = %q", out.DocTitle)
	}

	if _, err := NewFileExtractor(nil).Extract("file.docx", nil); !errors.Is(err, ErrNoWordExtractor) {
		t.Errorf("no word extractor: got %v", err)
	}
}

func TestExtractHTMLTitleFallbacks(t *testing.T) {
	title, err := ExtractHTMLTitle(`<html><body><h1>Heading Title</h1><p>body</p></body></html>`)
	if err != nil {
		t.Fatalf("ExtractHTMLTitle: %v", err)
	}
	if title != "Heading Title" {
		t.Errorf("title = %q", title)
	}

	title, err = ExtractHTMLTitle(`<html><head><meta property="og:title" content="OG Title"></head><body><p>x</p></body></html>`)
	if err != nil {
		t.Fatalf("ExtractHTMLTitle: %v", err)
	}
	if title != "OG Title" {
		t.Errorf("title = %q", title)
	}
}
