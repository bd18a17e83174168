package documents

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	doc, err := r.Create(ctx, &models.Document{DocumentID: "A", Status: models.StoredValid, Metadata: map[string]any{"k": "v"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.ID)

	_, err = r.Create(ctx, &models.Document{DocumentID: "A"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := r.GetByDocumentID(ctx, "A")
	require.NoError(t, err)
	got.Metadata["k"] = "changed"

	again, _ := r.GetByDocumentID(ctx, "A")
	assert.Equal(t, "v", again.Metadata["k"], "stored copy must not be shared")

	require.NoError(t, r.UpdateStatus(ctx, "A", models.StoredRevoked))
	got, _ = r.GetByDocumentID(ctx, "A")
	assert.Equal(t, models.StoredRevoked, got.Status)

	require.NoError(t, r.UpdateDocumentID(ctx, "A", "B"))
	_, err = r.GetByDocumentID(ctx, "A")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetByDocumentID(ctx, "B")
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, "B"))
	require.ErrorIs(t, r.Delete(ctx, "B"), common.ErrorNotFound)
	require.ErrorIs(t, r.SetAttachmentKey(ctx, "B", "x"), common.ErrorNotFound)
}

func TestMemoryRepository_UpdateDocumentIDTaken(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository(&models.Document{DocumentID: "A"}, &models.Document{DocumentID: "B"})

	require.ErrorIs(t, r.UpdateDocumentID(ctx, "A", "B"), common.ErrorAlreadyExists)
}

func TestSampleDocuments(t *testing.T) {
	today := timex.DateOf(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	docs := SampleDocuments(today)
	require.Len(t, docs, 3)

	assert.Equal(t, "DOC001", docs[0].DocumentID)
	assert.Equal(t, 10, today.DaysUntil(*docs[1].ExpiryDate))
	assert.True(t, docs[2].ExpiryDate.Before(today))

	r := NewMemoryRepository(docs...)
	_, err := r.GetByDocumentID(context.Background(), "DOC002")
	require.NoError(t, err)
}
