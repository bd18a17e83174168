package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

const recordColumns = `id, document_id, status, timestamp, document_type, issuer, metadata`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, rec *models.VerificationRecord) (int64, error) {
	if !rec.Status.Valid() {
		return 0, fmt.Errorf("%w: %q", common.ErrorInvalidStatus, rec.Status)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO verifications (document_id, status, timestamp, document_type, issuer, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.DocumentID, string(rec.Status), timex.FormatSortable(rec.Timestamp),
		nullable(rec.DocumentType), nullable(rec.Issuer), nullable(rec.Metadata))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	rec.ID = id
	return id, nil
}

func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]*models.VerificationRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM verifications
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var res []*models.VerificationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*models.VerificationRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM verifications WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	return rec, err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM verifications WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM verifications`); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CountByStatus(ctx context.Context) (map[models.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM verifications GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	res := make(map[models.Status]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		res[models.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *SQLiteRepository) DailyCounts(ctx context.Context, since timex.Date) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT substr(timestamp, 1, 10) AS day, COUNT(*)
		FROM verifications
		WHERE timestamp >= ?
		GROUP BY day
	`, since.String())
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	res := make(map[string]int)
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		res[day] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.VerificationRecord, error) {
	var (
		rec                       models.VerificationRecord
		status, ts                string
		docType, issuer, metadata sql.NullString
	)
	if err := s.Scan(&rec.ID, &rec.DocumentID, &status, &ts, &docType, &issuer, &metadata); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	t, err := timex.ParseSortable(ts)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
	}

	rec.Status = models.Status(status)
	rec.Timestamp = t
	rec.DocumentType = docType.String
	rec.Issuer = issuer.String
	rec.Metadata = metadata.String
	return &rec, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
