// Package cache is the SQLite-backed offline store: the latest snapshot of
// every document seen online, and the queue of lookups that could not reach
// the registry.
package cache

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
)

type Repository interface {
	// CacheDocument upserts the snapshot of doc; the last write wins.
	CacheDocument(ctx context.Context, doc *models.Document, at time.Time) error
	// GetCachedDocument returns common.ErrorNotFound on a miss.
	GetCachedDocument(ctx context.Context, documentID string) (*models.CachedDocument, error)
	AddPending(ctx context.Context, documentID, pin string, at time.Time) (int64, error)
	// ListPending returns unsynced entries, newest first.
	ListPending(ctx context.Context) ([]*models.PendingVerification, error)
	// MarkSynced flags every unsynced entry of documentID and returns how
	// many were changed.
	MarkSynced(ctx context.Context, documentID string) (int64, error)
	// DeleteOlderThan drops snapshots and synced pending entries created
	// before cutoff. Unsynced entries are kept regardless of age.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (snapshots, pending int64, err error)
	Stats(ctx context.Context) (models.CacheStats, error)
}
