package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/client/client"
	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// closedDB returns a database whose every query fails.
func closedDB(t *testing.T) *sql.DB {
	t.Helper()
	db := setupDB(t)
	require.NoError(t, db.Close())
	return db
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// fakeClient implements client.Client with canned outcomes.
type fakeClient struct {
	VerifyOut client.Outcome
	FetchOut  client.Outcome
	Types     []string
	TypesErr  error
	Tpls      []models.Template
	TplsErr   error
	PingErr   error

	LastDocumentID string
	LastPin        string
	LastPolicy     client.RetryPolicy
}

func (f *fakeClient) Verify(ctx context.Context, documentID, pin string, opts ...client.CallOption) client.Outcome {
	f.LastDocumentID, f.LastPin = documentID, pin
	f.LastPolicy = client.RetryPolicy{MaxAttempts: 3}
	for _, o := range opts {
		o(&f.LastPolicy)
	}
	return f.VerifyOut
}

func (f *fakeClient) Fetch(ctx context.Context, documentID string, opts ...client.CallOption) client.Outcome {
	f.LastDocumentID = documentID
	return f.FetchOut
}

func (f *fakeClient) DocumentTypes(context.Context) ([]string, error) { return f.Types, f.TypesErr }

func (f *fakeClient) Templates(context.Context) ([]models.Template, error) { return f.Tpls, f.TplsErr }

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }
