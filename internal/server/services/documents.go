// Package services contains the registry business logic: status resolution,
// verification with PIN checks, document administration and attachments.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/cryptox"
	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/server/config"
	"github.com/dmitrijs2005/docverifier/internal/server/metrics"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/docverifier/internal/server/tracer"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

const (
	DefaultVerificationsLimit = 50
	MaxVerificationsLimit     = 500
)

// VerifyRequest is one public lookup. ClientIP and UserAgent only feed the
// verification log.
type VerifyRequest struct {
	DocumentID string
	Pin        string
	ClientIP   string
	UserAgent  string
}

// CreateDocumentRequest describes a document to register. An empty
// DocumentID gets a generated public code; an empty Status means valid.
type CreateDocumentRequest struct {
	DocumentID   string
	DocumentType string
	Issuer       string
	IssueDate    *timex.Date
	ExpiryDate   *timex.Date
	Status       models.StoredStatus
	Metadata     map[string]any
	Pin          string
}

// PinPolicy decides whether a supplied PIN grants access to a document.
type PinPolicy struct {
	MinLength int
}

// Check returns common.ErrorUnauthorized when the PIN is rejected. A document
// with a PIN hash requires a matching PIN; for other documents a supplied
// PIN is only rejected when it is too short.
func (p PinPolicy) Check(doc *models.Document, pin string) error {
	if doc.PinHash != "" {
		if pin == "" || !cryptox.CheckPIN(doc.PinHash, pin) {
			return common.ErrorUnauthorized
		}
		return nil
	}
	if pin != "" && len([]rune(pin)) < p.MinLength {
		return common.ErrorUnauthorized
	}
	return nil
}

type DocumentService struct {
	repomanager repomanager.RepositoryManager
	resolver    *StatusResolver
	pins        PinPolicy
	logger      logging.Logger
	tracer      tracer.Tracer
	metrics     *metrics.Metrics
	today       func() timex.Date
}

type Option func(*DocumentService)

func WithTracer(t tracer.Tracer) Option { return func(s *DocumentService) { s.tracer = t } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *DocumentService) { s.metrics = m } }

// WithClock overrides how the service learns the current day.
func WithClock(today func() timex.Date) Option { return func(s *DocumentService) { s.today = today } }

func NewDocumentService(rm repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, opts ...Option) *DocumentService {
	s := &DocumentService{
		repomanager: rm,
		resolver:    NewStatusResolver(cfg.ExpiryWarningDays),
		pins:        PinPolicy{MinLength: cfg.MinPinLength},
		logger:      logger,
		tracer:      tracer.NewNoop(),
		today:       func() timex.Date { return timex.DateOf(time.Now()) },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *DocumentService) Resolver() *StatusResolver { return s.resolver }

func (s *DocumentService) Pins() PinPolicy { return s.pins }

// Verify looks up a document for a verifier and logs the attempt. It returns
// common.ErrorNotFound for an unknown id and common.ErrorUnauthorized for a
// rejected PIN.
func (s *DocumentService) Verify(ctx context.Context, req VerifyRequest) (_ *models.DocumentView, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerify, tracer.String("document_id", req.DocumentID))
	defer func() { span.End(ignoreExpected(err)) }()

	req.DocumentID = strings.TrimSpace(req.DocumentID)
	if req.DocumentID == "" {
		return nil, fmt.Errorf("%w: document_id is required", common.ErrorValidation)
	}

	doc, err := s.repomanager.Documents(s.repomanager.Conn()).GetByDocumentID(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.metrics.RecordVerification("not_found")
			s.logVerification(ctx, req, models.StatusInvalid)
		}
		return nil, err
	}

	if err := s.pins.Check(doc, req.Pin); err != nil {
		s.metrics.RecordVerification("unauthorized")
		s.logger.Info(ctx, "pin rejected", "document_id", req.DocumentID, "ip", req.ClientIP)
		return nil, err
	}

	view := s.view(doc)
	span.SetAttributes(tracer.String("status", string(view.Status)))
	s.metrics.RecordVerification(string(view.Status))
	s.logVerification(ctx, req, view.Status)

	return view, nil
}

// logVerification stores the attempt. Failures are logged and never fail the
// lookup itself.
func (s *DocumentService) logVerification(ctx context.Context, req VerifyRequest, status models.Status) {
	v := &models.Verification{
		DocumentID: req.DocumentID,
		Status:     status,
		IPAddress:  req.ClientIP,
		UserAgent:  req.UserAgent,
		Device:     DeviceLabel(req.UserAgent),
	}
	if _, err := s.repomanager.Verifications(s.repomanager.Conn()).Create(ctx, v); err != nil {
		s.logger.Error(ctx, "failed to log verification", "document_id", req.DocumentID, "error", err)
		return
	}
	s.logger.Info(ctx, "document verified", "document_id", req.DocumentID, "status", status, "device", v.Device)
}

// Get is the admin read. It returns both the stored and the resolved status.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*models.DocumentView, error) {
	doc, err := s.repomanager.Documents(s.repomanager.Conn()).GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.view(doc), nil
}

// Document returns the raw stored record, PIN hash included.
func (s *DocumentService) Document(ctx context.Context, documentID string) (*models.Document, error) {
	return s.repomanager.Documents(s.repomanager.Conn()).GetByDocumentID(ctx, documentID)
}

func (s *DocumentService) Create(ctx context.Context, req CreateDocumentRequest) (_ *models.DocumentView, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanCreate)
	defer func() { span.End(ignoreExpected(err)) }()

	if req.Status == "" {
		req.Status = models.StoredValid
	}
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", common.ErrorInvalidStatus, req.Status)
	}
	if req.IssueDate != nil && req.ExpiryDate != nil && req.ExpiryDate.Before(*req.IssueDate) {
		return nil, fmt.Errorf("%w: expiry_date precedes issue_date", common.ErrorValidation)
	}

	doc := &models.Document{
		DocumentID:   strings.TrimSpace(req.DocumentID),
		DocumentType: req.DocumentType,
		Issuer:       req.Issuer,
		IssueDate:    req.IssueDate,
		ExpiryDate:   req.ExpiryDate,
		Status:       req.Status,
		Metadata:     req.Metadata,
	}

	if doc.DocumentID == "" {
		if doc.DocumentID, err = common.MakePublicCode(); err != nil {
			return nil, fmt.Errorf("generate public code: %w", err)
		}
	}

	if req.Pin != "" {
		if len([]rune(req.Pin)) < s.pins.MinLength {
			return nil, fmt.Errorf("%w: pin must be at least %d characters", common.ErrorValidation, s.pins.MinLength)
		}
		if doc.PinHash, err = cryptox.HashPIN(req.Pin); err != nil {
			return nil, fmt.Errorf("hash pin: %w", err)
		}
	}

	created, err := s.repomanager.Documents(s.repomanager.Conn()).Create(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordDocumentCreated()
	s.logger.Info(ctx, "document created", "document_id", created.DocumentID, "status", created.Status)
	return s.view(created), nil
}

func (s *DocumentService) UpdateStatus(ctx context.Context, documentID string, status models.StoredStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", common.ErrorInvalidStatus, status)
	}
	if err := s.repomanager.Documents(s.repomanager.Conn()).UpdateStatus(ctx, documentID, status); err != nil {
		return err
	}
	s.logger.Info(ctx, "document status changed", "document_id", documentID, "status", status)
	return nil
}

// Rotate replaces the public code of a document and moves its verification
// log to the new code, atomically.
func (s *DocumentService) Rotate(ctx context.Context, documentID string) (_ string, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRotate, tracer.String("document_id", documentID))
	defer func() { span.End(ignoreExpected(err)) }()

	newID, err := common.MakePublicCode()
	if err != nil {
		return "", fmt.Errorf("generate public code: %w", err)
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Documents(tx).UpdateDocumentID(ctx, documentID, newID); err != nil {
			return err
		}
		return s.repomanager.Verifications(tx).RenameDocument(ctx, documentID, newID)
	})
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "document code rotated", "document_id", documentID, "new_document_id", newID)
	return newID, nil
}

func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if err := s.repomanager.Documents(s.repomanager.Conn()).Delete(ctx, documentID); err != nil {
		return err
	}
	s.logger.Info(ctx, "document deleted", "document_id", documentID)
	return nil
}

// Verifications returns the newest log entries of a document. limit is
// clamped to [1, MaxVerificationsLimit]; zero means DefaultVerificationsLimit.
func (s *DocumentService) Verifications(ctx context.Context, documentID string, limit int) ([]*models.Verification, error) {
	switch {
	case limit <= 0:
		limit = DefaultVerificationsLimit
	case limit > MaxVerificationsLimit:
		limit = MaxVerificationsLimit
	}

	if _, err := s.repomanager.Documents(s.repomanager.Conn()).GetByDocumentID(ctx, documentID); err != nil {
		return nil, err
	}
	return s.repomanager.Verifications(s.repomanager.Conn()).ListByDocumentID(ctx, documentID, limit)
}

func (s *DocumentService) view(doc *models.Document) *models.DocumentView {
	return &models.DocumentView{
		DocumentID:    doc.DocumentID,
		Status:        s.resolver.Resolve(doc, s.today()),
		StoredStatus:  doc.Status,
		DocumentType:  doc.DocumentType,
		Issuer:        doc.Issuer,
		IssueDate:     doc.IssueDate,
		ExpiryDate:    doc.ExpiryDate,
		Metadata:      doc.Metadata,
		HasAttachment: doc.AttachmentKey != "",
	}
}

// ignoreExpected keeps client mistakes from marking spans as failed.
func ignoreExpected(err error) error {
	switch {
	case err == nil,
		errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorInvalidStatus),
		errors.Is(err, common.ErrorAlreadyExists):
		return nil
	}
	return err
}
