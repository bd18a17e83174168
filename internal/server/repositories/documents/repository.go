// Package documents provides storage for registry documents: a PostgreSQL
// implementation over dbx.DBTX and an in-memory one for the mock registry.
package documents

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/dmitrijs2005/docverifier/internal/server/models"
)

// Repository persists registry documents. Lookups of a missing document
// return common.ErrorNotFound; creating a duplicate document_id returns
// common.ErrorAlreadyExists.
type Repository interface {
	GetByDocumentID(ctx context.Context, documentID string) (*models.Document, error)
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	UpdateStatus(ctx context.Context, documentID string, status models.StoredStatus) error
	UpdateDocumentID(ctx context.Context, documentID, newDocumentID string) error
	SetAttachmentKey(ctx context.Context, documentID, key string) error
	Delete(ctx context.Context, documentID string) error
}
