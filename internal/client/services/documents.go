// Package services contains application services for the verifier client:
// translating registry answers into documents, the local history, the
// offline cache, the history lock, search/statistics and export.
package services

import (
	"context"
	"maps"

	"github.com/dmitrijs2005/docverifier/internal/client/client"
	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// VerifyOption tunes a single VerifyDocument call.
type VerifyOption = client.CallOption

// WithMaxRetries overrides the total attempt count for one call.
func WithMaxRetries(n int) VerifyOption { return client.WithMaxAttempts(n) }

// DocumentRepository turns API outcomes into documents.
//
// Contract:
//   - VerifyDocument and FetchDocument always return a non-nil document.
//     Failures produce an invalid document whose metadata["error"] holds
//     the user-facing message.
//   - The error is a *client.TransportError when no round trip completed,
//     nil for success, not-found and unauthorized answers.
//   - DocumentTypes and Templates return an empty list on any error.
type DocumentRepository interface {
	VerifyDocument(ctx context.Context, documentID, pin string, opts ...VerifyOption) (*models.Document, error)
	FetchDocument(ctx context.Context, documentID string) (*models.Document, error)
	DocumentTypes(ctx context.Context) []string
	Templates(ctx context.Context) []models.Template
}

type documentRepository struct {
	client client.Client
	logger logging.Logger
}

func NewDocumentRepository(c client.Client, logger logging.Logger) DocumentRepository {
	return &documentRepository{client: c, logger: logger.With("module", "document_repository")}
}

func (r *documentRepository) VerifyDocument(ctx context.Context, documentID, pin string, opts ...VerifyOption) (*models.Document, error) {
	out := r.client.Verify(ctx, documentID, pin, opts...)
	return r.translate(ctx, documentID, out), out.Err()
}

func (r *documentRepository) FetchDocument(ctx context.Context, documentID string) (*models.Document, error) {
	out := r.client.Fetch(ctx, documentID)
	return r.translate(ctx, documentID, out), out.Err()
}

func (r *documentRepository) DocumentTypes(ctx context.Context) []string {
	types, err := r.client.DocumentTypes(ctx)
	if err != nil {
		r.logger.Warn(ctx, "document types unavailable", "error", err)
		return []string{}
	}
	if types == nil {
		return []string{}
	}
	return types
}

func (r *documentRepository) Templates(ctx context.Context) []models.Template {
	tpls, err := r.client.Templates(ctx)
	if err != nil {
		r.logger.Warn(ctx, "verification templates unavailable", "error", err)
		return []models.Template{}
	}
	if tpls == nil {
		return []models.Template{}
	}
	return tpls
}

func (r *documentRepository) translate(ctx context.Context, documentID string, out client.Outcome) *models.Document {
	if out.Category != client.Success {
		r.logger.Info(ctx, "document lookup failed",
			"document_id", documentID,
			"category", out.Category.String(),
			"status_code", out.StatusCode,
			"attempts", out.Attempts,
			"message", out.Message,
		)
		return models.FailedDocument(documentID, out.Message)
	}
	if out.Payload == nil {
		return models.FailedDocument(documentID, common.MsgMalformed)
	}
	return toDocument(documentID, out.Payload)
}

// toDocument normalizes a wire document. Unparsable dates are dropped.
func toDocument(documentID string, w *client.WireDocument) *models.Document {
	doc := &models.Document{
		DocumentID:   w.DocumentID,
		Status:       models.NormalizeStatus(w.Status),
		DocumentType: w.DocumentType,
		Issuer:       w.Issuer,
		IssueDate:    parseDate(w.IssueDate),
		ExpiryDate:   parseDate(w.ExpiryDate),
	}
	if doc.DocumentID == "" {
		doc.DocumentID = documentID
	}
	if len(w.Metadata) > 0 {
		doc.Metadata = maps.Clone(w.Metadata)
	}
	return doc
}

func parseDate(s string) *timex.Date {
	if s == "" {
		return nil
	}
	d, err := timex.ParseDate(s)
	if err != nil {
		return nil
	}
	return &d
}
