package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]Status{
		"valid":         StatusValid,
		"warning":       StatusWarning,
		"expiring_soon": StatusWarning,
		"invalid":       StatusInvalid,
		"revoked":       StatusInvalid,
		"bogus":         StatusInvalid,
		"":              StatusInvalid,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeStatus(in), in)
	}
}

func TestStatusPresentation(t *testing.T) {
	assert.Equal(t, ColorGreen, StatusValid.Color())
	assert.Equal(t, ColorYellow, StatusWarning.Color())
	assert.Equal(t, ColorRed, StatusInvalid.Color())
	assert.Equal(t, ColorGray, Status("revoked").Color())

	assert.Equal(t, "Документ подлинный", StatusValid.Label())
	assert.Equal(t, "Предупреждение", StatusWarning.Label())
	assert.Equal(t, "Документ недействителен", StatusInvalid.Label())

	assert.True(t, StatusWarning.Valid())
	assert.False(t, Status("revoked").Valid())
}

func TestFailedDocument(t *testing.T) {
	d := FailedDocument("DOC9", "Таймаут соединения")
	assert.Equal(t, StatusInvalid, d.Status)
	assert.Equal(t, "Таймаут соединения", d.ErrorMessage())

	var nilDoc *Document
	assert.Equal(t, "", nilDoc.ErrorMessage())
}

func TestDocumentClone(t *testing.T) {
	exp := timex.MustParseDate("2030-01-01")
	d := &Document{DocumentID: "A", ExpiryDate: &exp, Metadata: map[string]any{"k": "v"}}

	c := d.Clone()
	c.Metadata["k"] = "x"
	*c.ExpiryDate = timex.MustParseDate("2031-01-01")

	assert.Equal(t, "v", d.Metadata["k"])
	assert.Equal(t, "2030-01-01", d.ExpiryDate.String())
}

func TestNewRecordSnapshot(t *testing.T) {
	exp := timex.MustParseDate("2030-01-01")
	doc := &Document{DocumentID: "DOC002", Status: StatusWarning, DocumentType: "Сертификат", Issuer: "Банк", ExpiryDate: &exp}
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	rec := NewRecord(doc, at)
	assert.Equal(t, "DOC002", rec.DocumentID)
	assert.Equal(t, StatusWarning, rec.Status)
	assert.Equal(t, at, rec.Timestamp)
	assert.Equal(t, "Банк", rec.Issuer)

	snap := rec.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, doc, snap)

	assert.Nil(t, (&VerificationRecord{}).Snapshot())
	assert.Nil(t, (&VerificationRecord{Metadata: "{bad"}).Snapshot())
}
