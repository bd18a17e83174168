package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/repositories/journal"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

const (
	MinSearchQueryLength = 2
	searchScanLimit      = 1000
	MaxSearchResults     = 50
	StatisticsDays       = 7
)

type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Statistics summarizes the journal. Daily holds StatisticsDays entries,
// oldest first, with zero counts for quiet days.
type Statistics struct {
	Total            int                   `json:"total"`
	ByStatus         map[models.Status]int `json:"by_status"`
	Daily            []DailyCount          `json:"daily"`
	LastVerification *time.Time            `json:"last_verification,omitempty"`
}

type StatsService interface {
	// Search matches query against id, type and issuer, ignoring case.
	// Queries shorter than MinSearchQueryLength return nothing.
	Search(ctx context.Context, query string) []*models.VerificationRecord
	Statistics(ctx context.Context) Statistics
}

type statsService struct {
	repo   journal.Repository
	now    Clock
	logger logging.Logger
}

func NewStatsService(repo journal.Repository, now Clock, logger logging.Logger) StatsService {
	if now == nil {
		now = time.Now
	}
	return &statsService{repo: repo, now: now, logger: logger.With("module", "stats")}
}

func (s *statsService) Search(ctx context.Context, query string) []*models.VerificationRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < MinSearchQueryLength {
		return []*models.VerificationRecord{}
	}

	list, err := s.repo.List(ctx, searchScanLimit)
	if err != nil {
		s.logger.Error(ctx, "search failed", "error", err)
		return []*models.VerificationRecord{}
	}

	res := make([]*models.VerificationRecord, 0)
	for _, rec := range list {
		if matches(rec, q) {
			res = append(res, rec)
			if len(res) == MaxSearchResults {
				break
			}
		}
	}
	return res
}

func matches(rec *models.VerificationRecord, q string) bool {
	for _, field := range []string{rec.DocumentID, rec.DocumentType, rec.Issuer} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (s *statsService) Statistics(ctx context.Context) Statistics {
	st := Statistics{ByStatus: map[models.Status]int{
		models.StatusValid:   0,
		models.StatusWarning: 0,
		models.StatusInvalid: 0,
	}}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to count verifications", "error", err)
	}
	for status, n := range counts {
		st.ByStatus[status] += n
		st.Total += n
	}

	today := timex.DateOf(s.now().UTC())
	first := today.AddDays(-(StatisticsDays - 1))
	daily, err := s.repo.DailyCounts(ctx, first)
	if err != nil {
		s.logger.Error(ctx, "failed to count daily verifications", "error", err)
	}
	st.Daily = make([]DailyCount, 0, StatisticsDays)
	for i := range StatisticsDays {
		day := first.AddDays(i).String()
		st.Daily = append(st.Daily, DailyCount{Day: day, Count: daily[day]})
	}

	if last, err := s.repo.List(ctx, 1); err != nil {
		s.logger.Error(ctx, "failed to read last verification", "error", err)
	} else if len(last) == 1 {
		ts := last[0].Timestamp
		st.LastVerification = &ts
	}

	return st
}
