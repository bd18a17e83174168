package verifications

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, v *models.Verification) (*models.Verification, error) {
	query :=
		`INSERT INTO verifications (document_id, status, ip_address, user_agent, device)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, verified_at
		 `

	err := r.db.QueryRowContext(ctx, query, v.DocumentID, string(v.Status), v.IPAddress, v.UserAgent, v.Device).
		Scan(&v.ID, &v.VerifiedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return v, nil
}

func (r *PostgresRepository) ListByDocumentID(ctx context.Context, documentID string, limit int) ([]*models.Verification, error) {
	query :=
		`SELECT id, document_id, status, ip_address, user_agent, device, verified_at
		 FROM verifications
		 WHERE document_id = $1
		 ORDER BY verified_at DESC, id DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var res []*models.Verification
	for rows.Next() {
		var (
			v              models.Verification
			status         string
			ip, ua, device sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.DocumentID, &status, &ip, &ua, &device, &v.VerifiedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		v.Status = models.Status(status)
		v.IPAddress = ip.String
		v.UserAgent = ua.String
		v.Device = device.String
		res = append(res, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) RenameDocument(ctx context.Context, documentID, newDocumentID string) error {
	query := `UPDATE verifications SET document_id = $2 WHERE document_id = $1`
	if _, err := r.db.ExecContext(ctx, query, documentID, newDocumentID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

var _ Repository = (*PostgresRepository)(nil)
