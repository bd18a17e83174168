package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/documents"
	"github.com/dmitrijs2005/docverifier/internal/server/repositories/verifications"
)

// MemoryRepositoryManager serves shared in-memory repositories. WithTx only
// serializes units of work; a failed one is not rolled back.
type MemoryRepositoryManager struct {
	mu   sync.Mutex
	docs *documents.MemoryRepository
	vers *verifications.MemoryRepository
}

func NewMemoryRepositoryManager(seed ...*models.Document) *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		docs: documents.NewMemoryRepository(seed...),
		vers: verifications.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Documents(dbx.DBTX) documents.Repository { return m.docs }

func (m *MemoryRepositoryManager) Verifications(dbx.DBTX) verifications.Repository { return m.vers }

func (m *MemoryRepositoryManager) Conn() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }

var _ RepositoryManager = (*MemoryRepositoryManager)(nil)
