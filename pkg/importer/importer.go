// Package importer runs the bulk transcript import pipeline: a strictly
// sequential per-file state machine (extract, AI-extract, validate,
// duplicate-check, persist) with cooperative pause/abort, progress and
// ETA reporting, and an operator review queue for incomplete records.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"podcast-archive/pkg/aiextract"
	"podcast-archive/pkg/content"
	"podcast-archive/pkg/db"
	"podcast-archive/pkg/domain"
	"podcast-archive/pkg/extract"
)

// Status is the per-file state machine position.
type Status string

const (
	StatusPending     Status = "pending"
	StatusProcessing  Status = "processing"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusNeedsReview Status = "needs_review"
	StatusSkipped     Status = "skipped"
)

// duplicateMessage is the error text attached to skipped duplicates.
const duplicateMessage = "Already exists in database"

// defaultInterFileDelay spaces file processing to avoid overwhelming the
// external extraction service.
const defaultInterFileDelay = 500 * time.Millisecond

// File is one upload queued for import.
type File struct {
	Name string
	Data []byte
}

// FileStatus tracks one file through the pipeline. Failed files retain
// the error message; needs_review files retain the extracted record and
// the validation issue list for operator correction.
type FileStatus struct {
	FileName string          `json:"fileName"`
	Status   Status          `json:"status"`
	Progress int             `json:"progress"`
	Error    string          `json:"error,omitempty"`
	Data     *domain.Episode `json:"data,omitempty"`
	Issues   []string        `json:"issues,omitempty"`
}

// BatchStats is the batch-level progress snapshot.
type BatchStats struct {
	Total                  int    `json:"total"`
	Completed              int    `json:"completed"`
	Failed                 int    `json:"failed"`
	NeedsReview            int    `json:"needsReview"`
	Skipped                int    `json:"skipped"`
	InProgress             bool   `json:"inProgress"`
	CurrentFile            string `json:"currentFile"`
	EstimatedTimeRemaining string `json:"estimatedTimeRemaining,omitempty"`
}

// FileExtractor pulls raw text out of an uploaded file.
type FileExtractor interface {
	Extract(name string, fileBytes []byte) (content.ExtractedFile, error)
}

// MetadataClient is the external AI extraction service surface.
type MetadataClient interface {
	Extract(ctx context.Context, text, docTitle string) (aiextract.Fields, error)
}

// invalidator is the cache surface touched after successful writes.
type invalidator interface {
	Invalidate()
}

// Pipeline processes files one at a time, by design: intentional
// backpressure against the extraction service and the store's write
// volume. Pause and abort are cooperative and honored only at file
// boundaries - an in-flight file always runs to completion.
type Pipeline struct {
	store db.EpisodeStore
	files FileExtractor
	ai    MetadataClient
	cache invalidator

	delay time.Duration
	now   func() time.Time

	mu      sync.Mutex
	cond    *sync.Cond
	paused  bool
	aborted bool

	queue     []FileStatus
	stats     BatchStats
	startTime time.Time
}

// New creates an import pipeline. ai may be nil to run heuristics-only;
// cache may be nil.
func New(store db.EpisodeStore, files FileExtractor, ai MetadataClient, cache invalidator) *Pipeline {
	p := &Pipeline{
		store: store,
		files: files,
		ai:    ai,
		cache: cache,
		delay: defaultInterFileDelay,
		now:   time.Now,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// SetDelay overrides the inter-file delay. Tests set it to zero.
func (p *Pipeline) SetDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
}

// SetClock replaces the pipeline clock used for ETA estimates.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

// Run processes the batch sequentially and returns when every file has a
// terminal status or an abort was honored at a file boundary.
func (p *Pipeline) Run(ctx context.Context, batch []File) {
	p.mu.Lock()
	p.aborted = false
	p.queue = make([]FileStatus, len(batch))
	for i, f := range batch {
		p.queue[i] = FileStatus{FileName: f.Name, Status: StatusPending}
	}
	p.startTime = p.now()
	p.stats = BatchStats{Total: len(batch), InProgress: true}
	delay := p.delay
	p.mu.Unlock()

	for i, f := range batch {
		if !p.waitAtBoundary() {
			break
		}

		p.markProcessing(i, f.Name)

		result := p.processFile(ctx, f)

		p.recordResult(i, result)

		if i < len(batch)-1 && delay > 0 {
			time.Sleep(delay)
		}
	}

	p.mu.Lock()
	p.stats.InProgress = false
	p.stats.CurrentFile = ""
	p.mu.Unlock()

	s := p.Stats()
	log.Printf("Bulk import complete: %d saved, %d skipped (duplicates), %d need review, %d failed",
		s.Completed, s.Skipped, s.NeedsReview, s.Failed)
}

// waitAtBoundary blocks while paused and reports whether the next file
// may start. No file starts while paused; abort is only honored here.
func (p *Pipeline) waitAtBoundary() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.paused && !p.aborted {
		p.cond.Wait()
	}
	return !p.aborted
}

// Pause stops new files from starting. The in-flight file finishes.
func (p *Pipeline) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
}

// Resume clears the pause flag and wakes the driver.
func (p *Pipeline) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = false
	p.cond.Broadcast()
}

// Abort stops the batch at the next file boundary. Never interrupts an
// in-flight file.
func (p *Pipeline) Abort() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.aborted = true
	p.cond.Broadcast()
}

// Queue returns a copy of the per-file statuses.
func (p *Pipeline) Queue() []FileStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]FileStatus, len(p.queue))
	copy(out, p.queue)
	return out
}

// Stats returns the batch snapshot with a freshly computed ETA.
func (p *Pipeline) Stats() BatchStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.stats
	if s.InProgress {
		finished := s.Completed + s.Failed + s.NeedsReview + s.Skipped
		s.EstimatedTimeRemaining = estimateRemaining(finished, s.Total, p.startTime, p.now())
	}
	return s
}

func (p *Pipeline) markProcessing(i int, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue[i].Status = StatusProcessing
	p.stats.CurrentFile = name
}

func (p *Pipeline) recordResult(i int, result FileStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queue[i] = result

	switch result.Status {
	case StatusCompleted:
		p.stats.Completed++
	case StatusFailed:
		p.stats.Failed++
	case StatusNeedsReview:
		p.stats.NeedsReview++
	case StatusSkipped:
		p.stats.Skipped++
	}
}

// processFile runs one file through extract, AI extraction, validation,
// duplicate check and persistence. Every failure is captured on the
// returned status; nothing here aborts the remaining queue.
func (p *Pipeline) processFile(ctx context.Context, f File) FileStatus {
	status := FileStatus{FileName: f.Name, Status: StatusProcessing}

	status.Progress = 10
	extracted, err := p.files.Extract(f.Name, f.Data)
	if err != nil {
		status.Status = StatusFailed
		status.Error = err.Error()
		status.Progress = 100
		return status
	}
	status.Progress = 20

	episode := p.extractRecord(ctx, f.Name, extracted)
	status.Progress = 60
	status.Data = &episode

	validation := extract.Validate(&episode)
	status.Progress = 70

	if !validation.IsComplete {
		status.Status = StatusNeedsReview
		status.Issues = validation.Issues
		status.Progress = 100
		return status
	}

	duplicate, err := p.episodeExists(ctx, episode.FileName)
	if err != nil {
		// If the check fails, assume the episode does not exist.
		log.Printf("Duplicate check failed for %s: %v", f.Name, err)
		duplicate = false
	}
	status.Progress = 100

	if duplicate {
		status.Status = StatusSkipped
		status.Error = duplicateMessage
		return status
	}

	if err := p.persist(ctx, &episode); err != nil {
		status.Status = StatusFailed
		status.Error = "Failed to save to database"
		return status
	}

	status.Status = StatusCompleted
	return status
}

// extractRecord asks the AI service for structured fields and assembles
// the episode. Any service failure falls back entirely to heuristic
// extraction plus filename-derived fields - never a partial blend.
func (p *Pipeline) extractRecord(ctx context.Context, name string, extracted content.ExtractedFile) domain.Episode {
	if p.ai == nil {
		return aiextract.BuildEpisode(name, extracted.Text, extracted.DocTitle, nil)
	}

	fields, err := p.ai.Extract(ctx, extracted.Text, extracted.DocTitle)
	if err != nil {
		if errors.Is(err, aiextract.ErrNoJSON) {
			log.Printf("Extraction service returned no JSON for %s, using heuristics: %v", name, err)
		} else {
			log.Printf("Extraction service unavailable for %s, using heuristics: %v", name, err)
		}
		return aiextract.BuildEpisode(name, extracted.Text, extracted.DocTitle, nil)
	}

	return aiextract.BuildEpisode(name, extracted.Text, extracted.DocTitle, &fields)
}

func (p *Pipeline) episodeExists(ctx context.Context, fileName string) (bool, error) {
	existing, err := p.store.GetWhere(ctx, "fileName", fileName)
	if err != nil {
		return false, err
	}
	return len(existing) > 0, nil
}

func (p *Pipeline) persist(ctx context.Context, episode *domain.Episode) error {
	storeID, err := p.store.Create(ctx, episode)
	if err != nil {
		return err
	}
	episode.StoreID = storeID
	if p.cache != nil {
		p.cache.Invalidate()
	}
	return nil
}

// ProcessOne runs the single-file extract flow without persisting,
// returning the extracted record for operator confirmation.
func (p *Pipeline) ProcessOne(ctx context.Context, f File) (domain.Episode, error) {
	extracted, err := p.files.Extract(f.Name, f.Data)
	if err != nil {
		return domain.Episode{}, fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return p.extractRecord(ctx, f.Name, extracted), nil
}

// SaveOne persists a confirmed single-file record. Date and title are
// required; the full completeness check is not.
func (p *Pipeline) SaveOne(ctx context.Context, episode *domain.Episode) error {
	if episode.Date == "" {
		return errors.New("date is required")
	}
	if episode.EpisodeTitle == "" {
		return errors.New("episode title is required")
	}
	return p.persist(ctx, episode)
}

// estimateRemaining projects the remaining batch time from the average
// per-file duration so far. Reported as "Calculating..." until at least
// one file has finished.
func estimateRemaining(finished, total int, start, now time.Time) string {
	if finished == 0 {
		return "Calculating..."
	}

	elapsed := now.Sub(start)
	avgPerFile := elapsed / time.Duration(finished)
	remaining := avgPerFile * time.Duration(total-finished)

	minutes := int(remaining.Minutes())
	seconds := int(remaining.Seconds()) % 60

	if minutes > 60 {
		return fmt.Sprintf("~%dh %dm remaining", minutes/60, minutes%60)
	}
	return fmt.Sprintf("~%dm %ds remaining", minutes, seconds)
}
