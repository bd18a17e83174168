package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/client/repositories/journal"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedJournal(t *testing.T, repo journal.Repository, recs ...*models.VerificationRecord) {
	t.Helper()
	for _, r := range recs {
		_, err := repo.Save(context.Background(), r)
		require.NoError(t, err)
	}
}

func TestSearch(t *testing.T) {
	repo := journal.NewSQLiteRepository(setupDB(t))
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	seedJournal(t, repo,
		&models.VerificationRecord{DocumentID: "DOC001", Status: models.StatusValid, Timestamp: now, DocumentType: "Справка", Issuer: "Министерство образования"},
		&models.VerificationRecord{DocumentID: "DOC002", Status: models.StatusWarning, Timestamp: now.Add(time.Minute), DocumentType: "Сертификат", Issuer: "Банк"},
	)
	s := NewStatsService(repo, fixedClock(now), logging.NewNop())
	ctx := context.Background()

	assert.Empty(t, s.Search(ctx, " б "), "single rune after trim")

	res := s.Search(ctx, "БАНК")
	require.Len(t, res, 1)
	assert.Equal(t, "DOC002", res[0].DocumentID)

	assert.Len(t, s.Search(ctx, "doc"), 2)
	assert.Len(t, s.Search(ctx, "справ"), 1)
	assert.Empty(t, s.Search(ctx, "zzz"))
}

func TestSearch_CapsResults(t *testing.T) {
	repo := journal.NewSQLiteRepository(setupDB(t))
	now := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	for i := range 60 {
		seedJournal(t, repo, &models.VerificationRecord{
			DocumentID: fmt.Sprintf("DOC%03d", i), Status: models.StatusValid, Timestamp: now.Add(time.Duration(i) * time.Second),
		})
	}

	res := NewStatsService(repo, nil, logging.NewNop()).Search(context.Background(), "doc")
	require.Len(t, res, MaxSearchResults)
	assert.Equal(t, "DOC059", res[0].DocumentID)
}

func TestStatistics(t *testing.T) {
	repo := journal.NewSQLiteRepository(setupDB(t))
	now := time.Date(2025, 3, 7, 18, 0, 0, 0, time.UTC)
	seedJournal(t, repo,
		&models.VerificationRecord{DocumentID: "A", Status: models.StatusValid, Timestamp: now},
		&models.VerificationRecord{DocumentID: "B", Status: models.StatusInvalid, Timestamp: now.Add(-time.Hour)},
		&models.VerificationRecord{DocumentID: "C", Status: models.StatusValid, Timestamp: now.AddDate(0, 0, -6)},
		&models.VerificationRecord{DocumentID: "D", Status: models.StatusWarning, Timestamp: now.AddDate(0, 0, -7)},
	)

	st := NewStatsService(repo, fixedClock(now), logging.NewNop()).Statistics(context.Background())

	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 2, st.ByStatus[models.StatusValid])
	assert.Equal(t, 1, st.ByStatus[models.StatusWarning])
	assert.Equal(t, 1, st.ByStatus[models.StatusInvalid])

	require.Len(t, st.Daily, StatisticsDays)
	assert.Equal(t, DailyCount{Day: "2025-03-01", Count: 1}, st.Daily[0])
	assert.Equal(t, DailyCount{Day: "2025-03-07", Count: 2}, st.Daily[6])
	assert.Zero(t, st.Daily[3].Count)

	require.NotNil(t, st.LastVerification)
	assert.True(t, now.Equal(*st.LastVerification))
}

func TestStatistics_Empty(t *testing.T) {
	st := NewStatsService(journal.NewSQLiteRepository(setupDB(t)), nil, logging.NewNop()).Statistics(context.Background())

	assert.Zero(t, st.Total)
	assert.Len(t, st.Daily, StatisticsDays)
	assert.Nil(t, st.LastVerification)
}
