package content

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	errEmptyFileName = errors.New("file name is empty")

	// ErrUnsupportedKind means the file's extension maps to no known
	// transcript format.
	ErrUnsupportedKind = errors.New("unsupported file kind")

	// ErrNoWordExtractor means a word-processor file arrived but no
	// collaborator was configured to read it.
	ErrNoWordExtractor = errors.New("no word-processor extractor configured")
)

// Kind classifies an uploaded transcript file.
type Kind string

const (
	KindPlain Kind = "plain"
	KindHTML  Kind = "html"
	KindWord  Kind = "word"
)

// KindForName maps a file name to its transcript kind.
func KindForName(name string) (Kind, error) {
	if name == "" {
		return "", errEmptyFileName
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return KindPlain, nil
	case ".html", ".htm":
		return KindHTML, nil
	case ".doc", ".docx":
		return KindWord, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKind, name)
	}
}

// WordExtractor is the external collaborator that pulls raw text out of
// legacy/modern word-processor files.
type WordExtractor interface {
	ExtractRawText(fileBytes []byte) (string, error)
}

// ExtractedFile is the raw text pulled from one upload, plus the document
// title when the format carries one.
type ExtractedFile struct {
	Text     string
	DocTitle string
}

// FileExtractor turns uploaded transcript files into raw text.
type FileExtractor struct {
	word WordExtractor
}

// NewFileExtractor creates a file extractor. word may be nil when
// word-processor uploads are not expected.
func NewFileExtractor(word WordExtractor) *FileExtractor {
	return &FileExtractor{word: word}
}

// Extract pulls raw text out of one uploaded file, dispatching on the
// file's kind. Word-processor files also yield the upload name (sans
// extension) as the document title.
func (f *FileExtractor) Extract(name string, fileBytes []byte) (ExtractedFile, error) {
	kind, err := KindForName(name)
	if err != nil {
		return ExtractedFile{}, err
	}

	switch kind {
	case KindPlain:
		return ExtractedFile{Text: string(fileBytes)}, nil

	case KindHTML:
		text, err := ExtractHTMLText(string(fileBytes))
		if err != nil {
			return ExtractedFile{}, fmt.Errorf("extract html text: %w", err)
		}
		title, err := ExtractHTMLTitle(string(fileBytes))
		if err != nil {
			title = "" // body text is enough; title is best-effort
		}
		return ExtractedFile{Text: text, DocTitle: title}, nil

	case KindWord:
		if f.word == nil {
			return ExtractedFile{}, ErrNoWordExtractor
		}
		text, err := f.word.ExtractRawText(fileBytes)
		if err != nil {
			return ExtractedFile{}, fmt.Errorf("extract word document: %w", err)
		}
		title := strings.TrimSuffix(name, filepath.Ext(name))
		return ExtractedFile{Text: text, DocTitle: title}, nil

	default:
		return ExtractedFile{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, name)
	}
}
