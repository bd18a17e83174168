package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/repositories/cache"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
)

// Clock returns the current instant.
type Clock func() time.Time

// OfflineService keeps the latest snapshot per document and the queue of
// lookups that did not reach the registry. Like HistoryService it never
// surfaces storage errors.
type OfflineService interface {
	CacheDocument(ctx context.Context, doc *models.Document) bool
	// GetCachedDocument returns nil on a miss or a storage error.
	GetCachedDocument(ctx context.Context, documentID string) *models.CachedDocument
	AddPendingVerification(ctx context.Context, documentID, pin string) bool
	GetPendingVerifications(ctx context.Context) []*models.PendingVerification
	// MarkSynced flags every unsynced entry for documentID.
	MarkSynced(ctx context.Context, documentID string) int64
	// ClearOldCache drops snapshots and synced entries older than days.
	ClearOldCache(ctx context.Context, days int)
	CacheStats(ctx context.Context) models.CacheStats
}

type offlineService struct {
	repo   cache.Repository
	now    Clock
	logger logging.Logger
}

// NewOfflineService returns an OfflineService stamping rows with now. A nil
// now means time.Now.
func NewOfflineService(repo cache.Repository, now Clock, logger logging.Logger) OfflineService {
	if now == nil {
		now = time.Now
	}
	return &offlineService{repo: repo, now: now, logger: logger.With("module", "offline_cache")}
}

func (s *offlineService) CacheDocument(ctx context.Context, doc *models.Document) bool {
	if err := s.repo.CacheDocument(ctx, doc, s.now()); err != nil {
		s.logger.Error(ctx, "failed to cache document", "document_id", doc.DocumentID, "error", err)
		return false
	}
	return true
}

func (s *offlineService) GetCachedDocument(ctx context.Context, documentID string) *models.CachedDocument {
	cd, err := s.repo.GetCachedDocument(ctx, documentID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "failed to read cached document", "document_id", documentID, "error", err)
		}
		return nil
	}
	return cd
}

func (s *offlineService) AddPendingVerification(ctx context.Context, documentID, pin string) bool {
	if _, err := s.repo.AddPending(ctx, documentID, pin, s.now()); err != nil {
		s.logger.Error(ctx, "failed to queue verification", "document_id", documentID, "error", err)
		return false
	}
	s.logger.Info(ctx, "verification queued", "document_id", documentID)
	return true
}

func (s *offlineService) GetPendingVerifications(ctx context.Context) []*models.PendingVerification {
	list, err := s.repo.ListPending(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list pending verifications", "error", err)
		return []*models.PendingVerification{}
	}
	if list == nil {
		return []*models.PendingVerification{}
	}
	return list
}

func (s *offlineService) MarkSynced(ctx context.Context, documentID string) int64 {
	n, err := s.repo.MarkSynced(ctx, documentID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark synced", "document_id", documentID, "error", err)
		return 0
	}
	return n
}

func (s *offlineService) ClearOldCache(ctx context.Context, days int) {
	cutoff := s.now().AddDate(0, 0, -days)
	snaps, pending, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error(ctx, "failed to clear old cache", "days", days, "error", err)
		return
	}
	s.logger.Info(ctx, "old cache cleared", "days", days, "snapshots", snaps, "pending", pending)
}

func (s *offlineService) CacheStats(ctx context.Context) models.CacheStats {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to read cache stats", "error", err)
		return models.CacheStats{}
	}
	return st
}
