package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/client"
	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/services"
	"github.com/dmitrijs2005/docverifier/internal/logging"
)

// ErrSyncRunning is returned when a pass is already in progress.
var ErrSyncRunning = errors.New("sync already running")

// Report summarizes one sync pass.
type Report struct {
	Pending int
	Synced  int
	// Dropped counts documents the registry answered with a terminal error.
	Dropped int
	// Remaining counts distinct documents left queued after a transport failure.
	Remaining int
}

// Syncer re-verifies queued lookups once the registry is reachable again.
type Syncer struct {
	repo    services.DocumentRepository
	history services.HistoryService
	offline services.OfflineService
	now     services.Clock
	logger  logging.Logger

	mu sync.Mutex
}

func New(repo services.DocumentRepository, history services.HistoryService, offline services.OfflineService, now services.Clock, logger logging.Logger) *Syncer {
	if now == nil {
		now = time.Now
	}
	return &Syncer{
		repo:    repo,
		history: history,
		offline: offline,
		now:     now,
		logger:  logger.With("module", "syncer"),
	}
}

// Sync replays every queued document once, newest entry first. A
// completed round trip is journaled, cached and marked synced. A terminal
// failure drops the entry. The first retryable or canceled failure ends
// the pass and leaves the rest queued.
func (s *Syncer) Sync(ctx context.Context) (Report, error) {
	if !s.mu.TryLock() {
		return Report{}, ErrSyncRunning
	}
	defer s.mu.Unlock()

	pending := s.offline.GetPendingVerifications(ctx)
	queue := dedupe(pending)
	rep := Report{Pending: len(pending)}

	for i, p := range queue {
		doc, err := s.repo.VerifyDocument(ctx, p.DocumentID, p.Pin)
		store := context.WithoutCancel(ctx)
		if err != nil {
			if client.IsRetryable(err) || client.CategoryOf(err) == client.Canceled {
				rep.Remaining = len(queue) - i
				s.logger.Warn(ctx, "sync interrupted", "document_id", p.DocumentID, "remaining", rep.Remaining, "error", err)
				return rep, err
			}
			s.offline.MarkSynced(store, p.DocumentID)
			rep.Dropped++
			s.logger.Warn(ctx, "queued verification dropped", "document_id", p.DocumentID, "error", err)
			continue
		}

		s.history.Save(store, models.NewRecord(doc, s.now()))
		s.offline.CacheDocument(store, doc)
		s.offline.MarkSynced(store, p.DocumentID)
		rep.Synced++
	}

	if rep.Pending > 0 {
		s.logger.Info(ctx, "sync finished", "pending", rep.Pending, "synced", rep.Synced, "dropped", rep.Dropped)
	}
	return rep, nil
}

// ClearOld drops snapshots and synced entries older than days.
func (s *Syncer) ClearOld(ctx context.Context, days int) {
	if days <= 0 {
		return
	}
	s.offline.ClearOldCache(ctx, days)
}

// dedupe keeps the first entry per document. list is newest first, so the
// most recent PIN wins.
func dedupe(list []*models.PendingVerification) []*models.PendingVerification {
	seen := make(map[string]struct{}, len(list))
	res := make([]*models.PendingVerification, 0, len(list))
	for _, p := range list {
		if p.Synced {
			continue
		}
		if _, ok := seen[p.DocumentID]; ok {
			continue
		}
		seen[p.DocumentID] = struct{}{}
		res = append(res, p)
	}
	return res
}
