package replication

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"podcast-archive/pkg/db"
	"podcast-archive/pkg/domain"
)

// Config wires the replication dependencies.
type Config struct {
	Store    db.EpisodeStore
	Postgres db.DBProvider
}

// Replicator copies archive episodes from the document store into a
// relational replica for SQL reporting.
//
// This is intentionally a one-shot, "copy everything" flow for now.
type Replicator struct {
	store db.EpisodeStore
	pg    db.DBProvider
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("episode store is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	return &Replicator{
		store: cfg.Store,
		pg:    cfg.Postgres,
	}, nil
}

// ReplicateEpisodesToPostgres reads every episode from the document
// store and inserts the ones missing from the Postgres `episode` table.
//
// Episodes are keyed by file name; ones already present are skipped.
// Processing runs in parallel batches to keep memory bounded.
func (r *Replicator) ReplicateEpisodesToPostgres(ctx context.Context) error {
	if err := r.ensureEpisodeSchema(ctx); err != nil {
		return err
	}

	episodes, err := r.store.GetAll(ctx, "date")
	if err != nil {
		return fmt.Errorf("read episodes from store: %w", err)
	}

	log.Printf("Loaded %d episodes from the archive, processing in batches...", len(episodes))

	totalProcessed, totalInserted, err := r.processBatches(ctx, episodes)
	if err != nil {
		return err
	}

	log.Printf("Replication complete: processed %d episodes, inserted %d new episodes", totalProcessed, totalInserted)
	return nil
}

// processBatches replicates all episodes in parallel batches and returns
// total processed and inserted counts.
func (r *Replicator) processBatches(ctx context.Context, episodes []domain.Episode) (int, int, error) {
	const processBatchSize = 100
	const numWorkers = 5

	type batchJob struct {
		batch []domain.Episode
		start int
		end   int
	}

	type batchResult struct {
		processed int
		inserted  int
		err       error
	}

	numBatches := (len(episodes) + processBatchSize - 1) / processBatchSize
	jobs := make(chan batchJob, numBatches)
	results := make(chan batchResult, numBatches)

	for start := 0; start < len(episodes); start += processBatchSize {
		end := start + processBatchSize
		if end > len(episodes) {
			end = len(episodes)
		}
		jobs <- batchJob{batch: episodes[start:end], start: start, end: end}
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				inserted, err := r.processBatch(ctx, job.batch, job.start, job.end)
				results <- batchResult{
					processed: len(job.batch),
					inserted:  inserted,
					err:       err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	totalProcessed := 0
	totalInserted := 0

	for result := range results {
		if result.err != nil {
			return totalProcessed, totalInserted, result.err
		}
		totalProcessed += result.processed
		totalInserted += result.inserted

		if totalProcessed%1000 == 0 {
			log.Printf("Progress: processed %d/%d episodes, inserted %d new episodes",
				totalProcessed, len(episodes), totalInserted)
		}
	}

	log.Printf("Progress: processed %d/%d episodes, inserted %d new episodes",
		totalProcessed, len(episodes), totalInserted)

	return totalProcessed, totalInserted, nil
}

// processBatch checks which file names already exist in Postgres and
// inserts the rest inside one transaction.
func (r *Replicator) processBatch(ctx context.Context, batch []domain.Episode, start, end int) (int, error) {
	log.Printf("Processing batch [%d:%d] (%d episodes)...", start, end, len(batch))

	existing, err := r.existingFileNames(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("check existing file names for batch [%d:%d]: %w", start, end, err)
	}

	toInsert := filterNewEpisodes(batch, existing)
	if len(toInsert) == 0 {
		return 0, nil
	}

	if err := r.insertEpisodesTx(ctx, toInsert); err != nil {
		return 0, fmt.Errorf("insert batch [%d:%d]: %w", start, end, err)
	}

	return len(toInsert), nil
}

func (r *Replicator) ensureEpisodeSchema(ctx context.Context) error {
	if r.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	// file_name doubles as the uniqueness key; name arrays are JSONB so
	// SQL reports can unnest hosts and guests.
	const ddl = `
CREATE TABLE IF NOT EXISTS episode (
  file_name TEXT PRIMARY KEY,
  date TEXT NOT NULL DEFAULT '',
  series TEXT NOT NULL DEFAULT '',
  episode_number TEXT NOT NULL DEFAULT '',
  episode_title TEXT NOT NULL DEFAULT '',
  hosts JSONB NOT NULL DEFAULT '[]',
  guests JSONB NOT NULL DEFAULT '[]',
  transcript TEXT NOT NULL DEFAULT '',
  audio_link TEXT NOT NULL DEFAULT '',
  word_count INTEGER NOT NULL DEFAULT 0,
  extracted_at TEXT NOT NULL DEFAULT ''
);`

	if _, err := r.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create episode table: %w", err)
	}
	return nil
}

// existingFileNames returns the batch's file names already present in
// Postgres, so only the batch keys are ever held in memory.
func (r *Replicator) existingFileNames(ctx context.Context, batch []domain.Episode) (map[string]bool, error) {
	if r.pg.DB() == nil {
		return nil, fmt.Errorf("postgres DB not connected")
	}

	names := make([]any, 0, len(batch))
	for _, ep := range batch {
		if ep.FileName != "" {
			names = append(names, ep.FileName)
		}
	}
	if len(names) == 0 {
		return map[string]bool{}, nil
	}

	query := `SELECT file_name FROM episode WHERE file_name IN (`
	for i := range names {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("$%d", i+1)
	}
	query += ")"

	rows, err := r.pg.DB().QueryContext(ctx, query, names...)
	if err != nil {
		return nil, fmt.Errorf("query existing file names: %w", err)
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan file name: %w", err)
		}
		if name != "" {
			set[name] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return set, nil
}

func filterNewEpisodes(all []domain.Episode, existing map[string]bool) []domain.Episode {
	out := make([]domain.Episode, 0, len(all))
	for _, ep := range all {
		if ep.FileName == "" {
			continue
		}
		if existing[ep.FileName] {
			continue
		}
		out = append(out, ep)
	}
	return out
}

// insertEpisodesTx inserts a batch of episodes within a transaction.
func (r *Replicator) insertEpisodesTx(ctx context.Context, batch []domain.Episode) error {
	tx, err := r.pg.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertQuery = `
INSERT INTO episode (file_name, date, series, episode_number, episode_title,
  hosts, guests, transcript, audio_link, word_count, extracted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (file_name) DO NOTHING`

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ep := range batch {
		if ep.FileName == "" {
			continue
		}
		hosts, err := nameArray(ep.Hosts)
		if err != nil {
			return fmt.Errorf("encode hosts for %q: %w", ep.FileName, err)
		}
		guests, err := nameArray(ep.Guests)
		if err != nil {
			return fmt.Errorf("encode guests for %q: %w", ep.FileName, err)
		}
		_, err = stmt.ExecContext(ctx, ep.FileName, ep.Date, ep.Series, ep.EpisodeNumber,
			ep.EpisodeTitle, hosts, guests, ep.Transcript, ep.AudioLink, ep.WordCount, ep.ExtractedAt)
		if err != nil {
			return fmt.Errorf("insert episode fileName=%q: %w", ep.FileName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func nameArray(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
