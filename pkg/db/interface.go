package db

import (
	"context"
	"database/sql"

	"podcast-archive/pkg/domain"
)

// DBProvider is an interface for database clients that provide access to a sql.DB handle.
// This allows both PostgresClient and SupabaseClient to be used interchangeably.
type DBProvider interface {
	DB() *sql.DB
}

// EpisodeStore is the document-store surface the rest of the system depends
// on. *Client implements it against MongoDB; tests use in-memory fakes.
type EpisodeStore interface {
	GetAll(ctx context.Context, orderBy string) ([]domain.Episode, error)
	GetWhere(ctx context.Context, field string, equals any) ([]domain.Episode, error)
	Create(ctx context.Context, episode *domain.Episode) (string, error)
	UpdateFields(ctx context.Context, docID string, fields map[string]any) error
	Delete(ctx context.Context, docID string) error
	BatchWrite(ctx context.Context, ops []BatchOp) error
}

var _ EpisodeStore = (*Client)(nil)
