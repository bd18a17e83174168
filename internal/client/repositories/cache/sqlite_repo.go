package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) CacheDocument(ctx context.Context, doc *models.Document, at time.Time) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO cached_documents (document_id, document_data, cached_at, synced)
		VALUES (?, ?, ?, 1)
		ON CONFLICT(document_id) DO UPDATE SET
			document_data = excluded.document_data,
			cached_at     = excluded.cached_at,
			synced        = 1
	`, doc.DocumentID, string(data), timex.FormatSortable(at))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetCachedDocument(ctx context.Context, documentID string) (*models.CachedDocument, error) {
	var (
		data, cachedAt string
		synced         bool
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT document_data, cached_at, synced FROM cached_documents WHERE document_id = ?
	`, documentID).Scan(&data, &cachedAt, &synced)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", documentID, err)
	}
	at, err := timex.ParseSortable(cachedAt)
	if err != nil {
		return nil, fmt.Errorf("parse cached_at %q: %w", cachedAt, err)
	}

	return &models.CachedDocument{Document: &doc, CachedAt: at, Synced: synced}, nil
}

func (r *SQLiteRepository) AddPending(ctx context.Context, documentID, pin string, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pending_verifications (document_id, pin_code, created_at, synced)
		VALUES (?, ?, ?, 0)
	`, documentID, sql.NullString{String: pin, Valid: pin != ""}, timex.FormatSortable(at))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListPending(ctx context.Context) ([]*models.PendingVerification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, document_id, pin_code, created_at
		FROM pending_verifications
		WHERE synced = 0
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var res []*models.PendingVerification
	for rows.Next() {
		var (
			p         models.PendingVerification
			pin       sql.NullString
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.DocumentID, &pin, &createdAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if p.CreatedAt, err = timex.ParseSortable(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		p.Pin = pin.String
		res = append(res, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, documentID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pending_verifications SET synced = 1 WHERE document_id = ? AND synced = 0
	`, documentID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, int64, error) {
	c := timex.FormatSortable(cutoff)

	res, err := r.db.ExecContext(ctx, `DELETE FROM cached_documents WHERE cached_at < ?`, c)
	if err != nil {
		return 0, 0, fmt.Errorf("db error: %w", err)
	}
	snapshots, _ := res.RowsAffected()

	res, err = r.db.ExecContext(ctx, `DELETE FROM pending_verifications WHERE synced = 1 AND created_at < ?`, c)
	if err != nil {
		return snapshots, 0, fmt.Errorf("db error: %w", err)
	}
	pending, _ := res.RowsAffected()

	return snapshots, pending, nil
}

func (r *SQLiteRepository) Stats(ctx context.Context) (models.CacheStats, error) {
	var s models.CacheStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM cached_documents),
			(SELECT COUNT(*) FROM pending_verifications WHERE synced = 0)
	`).Scan(&s.CachedDocuments, &s.PendingVerifications)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
