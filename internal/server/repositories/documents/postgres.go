package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/timex"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByDocumentID(ctx context.Context, documentID string) (*models.Document, error) {
	query :=
		`SELECT id, document_id, document_type, issuer, issue_date, expiry_date, status, metadata, pin_hash, attachment_key, created_at, updated_at
		 FROM documents
		 WHERE document_id = $1
		 `

	var (
		doc                              models.Document
		docType, issuer, pinHash, attKey sql.NullString
		issueDate, expiryDate            sql.NullTime
		metadata                         []byte
		status                           string
	)

	err := r.db.QueryRowContext(ctx, query, documentID).Scan(
		&doc.ID, &doc.DocumentID, &docType, &issuer, &issueDate, &expiryDate,
		&status, &metadata, &pinHash, &attKey, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	doc.DocumentType = docType.String
	doc.Issuer = issuer.String
	doc.PinHash = pinHash.String
	doc.AttachmentKey = attKey.String
	doc.Status = models.StoredStatus(status)
	doc.IssueDate = fromNullTime(issueDate)
	doc.ExpiryDate = fromNullTime(expiryDate)

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}

	return &doc, nil
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	metadata, err := encodeMetadata(doc.Metadata)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO documents (document_id, document_type, issuer, issue_date, expiry_date, status, metadata, pin_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		doc.DocumentID, nullString(doc.DocumentType), nullString(doc.Issuer),
		dateArg(doc.IssueDate), dateArg(doc.ExpiryDate), string(doc.Status), metadata, nullString(doc.PinHash),
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, documentID string, status models.StoredStatus) error {
	query := `UPDATE documents SET status = $2, updated_at = now() WHERE document_id = $1`
	return r.execOne(ctx, query, documentID, string(status))
}

func (r *PostgresRepository) UpdateDocumentID(ctx context.Context, documentID, newDocumentID string) error {
	query := `UPDATE documents SET document_id = $2, updated_at = now() WHERE document_id = $1`
	err := r.execOne(ctx, query, documentID, newDocumentID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return common.ErrorAlreadyExists
	}
	return err
}

func (r *PostgresRepository) SetAttachmentKey(ctx context.Context, documentID, key string) error {
	query := `UPDATE documents SET attachment_key = $2, updated_at = now() WHERE document_id = $1`
	return r.execOne(ctx, query, documentID, nullString(key))
}

func (r *PostgresRepository) Delete(ctx context.Context, documentID string) error {
	return r.execOne(ctx, `DELETE FROM documents WHERE document_id = $1`, documentID)
}

// execOne runs a statement that must touch exactly one row.
func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func encodeMetadata(m map[string]any) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(b), nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func dateArg(d *timex.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

func fromNullTime(t sql.NullTime) *timex.Date {
	if !t.Valid {
		return nil
	}
	d := timex.DateOf(t.Time.UTC())
	return &d
}

var _ Repository = (*PostgresRepository)(nil)
