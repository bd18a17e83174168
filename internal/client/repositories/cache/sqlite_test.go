package cache

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE cached_documents (
  document_id   TEXT PRIMARY KEY,
  document_data TEXT NOT NULL,
  cached_at     TEXT NOT NULL,
  synced        INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE pending_verifications (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  document_id TEXT NOT NULL,
  pin_code    TEXT,
  created_at  TEXT NOT NULL,
  synced      INTEGER NOT NULL DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestCacheDocument_UpsertLastWriteWins(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	expiry := timex.MustParseDate("2025-03-11")

	require.NoError(t, r.CacheDocument(ctx, &models.Document{DocumentID: "DOC002", Status: models.StatusValid}, t0))
	require.NoError(t, r.CacheDocument(ctx, &models.Document{
		DocumentID: "DOC002", Status: models.StatusWarning, ExpiryDate: &expiry,
	}, t0.Add(time.Minute)))

	got, err := r.GetCachedDocument(ctx, "DOC002")
	require.NoError(t, err)
	assert.Equal(t, models.StatusWarning, got.Document.Status)
	require.NotNil(t, got.Document.ExpiryDate)
	assert.Equal(t, expiry, *got.Document.ExpiryDate)
	assert.True(t, got.CachedAt.Equal(t0.Add(time.Minute)))
	assert.True(t, got.Synced)

	stats, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CachedDocuments)
}

func TestGetCachedDocument_Miss(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetCachedDocument(context.Background(), "NOPE")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPending_NewestFirstAndCoarseMarkSynced(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.AddPending(ctx, "A", "", t0)
	require.NoError(t, err)
	_, err = r.AddPending(ctx, "B", "1234", t0.Add(time.Minute))
	require.NoError(t, err)
	_, err = r.AddPending(ctx, "A", "", t0.Add(2*time.Minute))
	require.NoError(t, err)

	list, err := r.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "A", list[0].DocumentID)
	assert.Equal(t, "B", list[1].DocumentID)
	assert.Equal(t, "1234", list[1].Pin)
	assert.True(t, list[2].CreatedAt.Equal(t0))

	n, err := r.MarkSynced(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = r.MarkSynced(ctx, "A")
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err = r.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].DocumentID)

	stats, err := r.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingVerifications)
}

func TestDeleteOlderThan_KeepsUnsynced(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	old := t0.AddDate(0, 0, -40)

	require.NoError(t, r.CacheDocument(ctx, &models.Document{DocumentID: "OLD"}, old))
	require.NoError(t, r.CacheDocument(ctx, &models.Document{DocumentID: "NEW"}, t0))
	_, err := r.AddPending(ctx, "SYNCED", "", old)
	require.NoError(t, err)
	_, err = r.AddPending(ctx, "UNSYNCED", "", old)
	require.NoError(t, err)
	_, err = r.MarkSynced(ctx, "SYNCED")
	require.NoError(t, err)

	snaps, pending, err := r.DeleteOlderThan(ctx, t0.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), snaps)
	assert.Equal(t, int64(1), pending)

	_, err = r.GetCachedDocument(ctx, "OLD")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetCachedDocument(ctx, "NEW")
	require.NoError(t, err)

	list, err := r.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "UNSYNCED", list[0].DocumentID)
}
