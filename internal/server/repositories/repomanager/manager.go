// Package repomanager vends the server repositories for a storage backend
// together with the transaction runner, migrations and liveness check that
// go with it.
package repomanager

//go:generate mockgen -source=manager.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/documents"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/verifications"
)

type RepositoryManager interface {
	dbx.TxRunner
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	// Conn is the non-transactional handle to pass to the repository
	// factories. It is nil for the in-memory backend.
	Conn() dbx.DBTX
	Documents(db dbx.DBTX) documents.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	Close() error
}
