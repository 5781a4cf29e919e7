package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"podcast-archive/pkg/domain"
	"podcast-archive/pkg/extract"
)

// ErrNotInReview is returned for review operations targeting a file that
// is not queued for review.
var ErrNotInReview = errors.New("file is not in review queue")

// ErrStillIncomplete carries the validation issues of a reviewed record
// that still fails the completeness check.
type ErrStillIncomplete struct {
	Issues []string
}

func (e *ErrStillIncomplete) Error() string {
	return "record still incomplete: " + strings.Join(e.Issues, ", ")
}

// ReviewItems returns the records waiting for operator review.
func (p *Pipeline) ReviewItems() []FileStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	var items []FileStatus
	for _, fs := range p.queue {
		if fs.Status == StatusNeedsReview {
			items = append(items, fs)
		}
	}
	return items
}

// SaveReviewed re-validates an operator-corrected record and persists it
// if complete. Incomplete records stay in review with refreshed issues.
func (p *Pipeline) SaveReviewed(ctx context.Context, fileName string, corrected *domain.Episode) error {
	i := p.reviewIndex(fileName)
	if i < 0 {
		return fmt.Errorf("%s: %w", fileName, ErrNotInReview)
	}

	validation := extract.Validate(corrected)
	if !validation.IsComplete {
		p.mu.Lock()
		p.queue[i].Data = corrected
		p.queue[i].Issues = validation.Issues
		p.mu.Unlock()
		return &ErrStillIncomplete{Issues: validation.Issues}
	}

	duplicate, err := p.episodeExists(ctx, corrected.FileName)
	if err != nil {
		duplicate = false
	}
	if duplicate {
		p.resolveReview(i, StatusSkipped, duplicateMessage)
		return nil
	}

	if err := p.persist(ctx, corrected); err != nil {
		return fmt.Errorf("save reviewed %s: %w", fileName, err)
	}

	p.resolveReview(i, StatusCompleted, "")
	return nil
}

// ForceSaveAll persists every record in the review queue as-is, skipping
// the completeness check. Callers confirm the operation explicitly;
// incomplete records land in the archive with whatever fields they have.
func (p *Pipeline) ForceSaveAll(ctx context.Context) (saved, failed int) {
	items := p.ReviewItems()

	for _, item := range items {
		if item.Data == nil {
			failed++
			continue
		}
		i := p.reviewIndex(item.FileName)
		if i < 0 {
			continue
		}
		if err := p.persist(ctx, item.Data); err != nil {
			failed++
			continue
		}
		p.resolveReview(i, StatusCompleted, "")
		saved++
	}

	return saved, failed
}

func (p *Pipeline) reviewIndex(fileName string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, fs := range p.queue {
		if fs.FileName == fileName && fs.Status == StatusNeedsReview {
			return i
		}
	}
	return -1
}

func (p *Pipeline) resolveReview(i int, status Status, errMsg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue[i].Status = status
	p.queue[i].Error = errMsg
	p.queue[i].Issues = nil
	p.stats.NeedsReview--
	switch status {
	case StatusCompleted:
		p.stats.Completed++
	case StatusSkipped:
		p.stats.Skipped++
	}
}

// ReportFileName names a review report for the given generation time.
func ReportFileName(at time.Time) string {
	return fmt.Sprintf("review-report-%d.txt", at.UnixMilli())
}

// Report renders the review queue as a plain-text report for offline
// correction.
func (p *Pipeline) Report(at time.Time) string {
	items := p.ReviewItems()

	var b strings.Builder
	b.WriteString("PODCAST EXTRACTION REVIEW REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", at.Format("1/2/2006, 3:04:05 PM"))
	fmt.Fprintf(&b, "Total files needing review: %d\n\n", len(items))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for n, item := range items {
		fmt.Fprintf(&b, "FILE %d: %s\n", n+1, item.FileName)
		b.WriteString("Issues:\n")
		for _, issue := range item.Issues {
			fmt.Fprintf(&b, "  - %s\n", issue)
		}
		b.WriteString("\nExtracted Data:\n")
		writeReportData(&b, item.Data)
		b.WriteString("\n" + strings.Repeat("-", 60) + "\n\n")
	}

	b.WriteString("END OF REPORT\n")
	return b.String()
}

func writeReportData(b *strings.Builder, ep *domain.Episode) {
	if ep == nil {
		b.WriteString("  (no data extracted)\n")
		return
	}
	fmt.Fprintf(b, "  Date: %s\n", orDefault(ep.Date, "MISSING"))
	fmt.Fprintf(b, "  Series: %s\n", orDefault(ep.Series, "MISSING"))
	fmt.Fprintf(b, "  Episode Number: %s\n", orDefault(ep.EpisodeNumber, "MISSING"))
	fmt.Fprintf(b, "  Title: %s\n", orDefault(ep.EpisodeTitle, "MISSING"))
	fmt.Fprintf(b, "  Hosts: %s\n", orDefault(strings.Join(ep.Hosts, ", "), "NONE"))
	fmt.Fprintf(b, "  Guests: %s\n", orDefault(strings.Join(ep.Guests, ", "), "NONE"))
	fmt.Fprintf(b, "  Transcript Length: %d characters\n", len(ep.Transcript))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
