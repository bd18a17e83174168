// Package verifications stores the server-side log of document lookups.
package verifications

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/dmitrijs2005/docverifier/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, v *models.Verification) (*models.Verification, error)
	// ListByDocumentID returns the newest entries first, at most limit of them.
	ListByDocumentID(ctx context.Context, documentID string, limit int) ([]*models.Verification, error)
	// RenameDocument rewrites the document_id of existing entries, keeping
	// history attached to a document whose public code was rotated.
	RenameDocument(ctx context.Context, documentID, newDocumentID string) error
}
