package services

import (
	"context"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/repositories/journal"
	"github.com/dmitrijs2005/docverifier/internal/logging"
)

// HistoryService is the local verification journal. Storage failures are
// logged and answered with safe defaults: an empty list, false, -1 or nil.
type HistoryService interface {
	Save(ctx context.Context, rec *models.VerificationRecord) (int64, bool)
	List(ctx context.Context, limit int) []*models.VerificationRecord
	Get(ctx context.Context, id int64) *models.VerificationRecord
	Delete(ctx context.Context, id int64) bool
	Clear(ctx context.Context) bool
}

type historyService struct {
	repo   journal.Repository
	logger logging.Logger
}

func NewHistoryService(repo journal.Repository, logger logging.Logger) HistoryService {
	return &historyService{repo: repo, logger: logger.With("module", "history")}
}

func (s *historyService) Save(ctx context.Context, rec *models.VerificationRecord) (int64, bool) {
	id, err := s.repo.Save(ctx, rec)
	if err != nil {
		s.logger.Error(ctx, "failed to save verification", "document_id", rec.DocumentID, "error", err)
		return -1, false
	}
	return id, true
}

func (s *historyService) List(ctx context.Context, limit int) []*models.VerificationRecord {
	list, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Error(ctx, "failed to list verifications", "error", err)
		return []*models.VerificationRecord{}
	}
	if list == nil {
		return []*models.VerificationRecord{}
	}
	return list
}

func (s *historyService) Get(ctx context.Context, id int64) *models.VerificationRecord {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.Debug(ctx, "verification not available", "id", id, "error", err)
		return nil
	}
	return rec
}

func (s *historyService) Delete(ctx context.Context, id int64) bool {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error(ctx, "failed to delete verification", "id", id, "error", err)
		return false
	}
	return ok
}

func (s *historyService) Clear(ctx context.Context) bool {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear history", "error", err)
		return false
	}
	s.logger.Info(ctx, "history cleared")
	return true
}
