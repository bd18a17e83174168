// Package journal persists the local verification history in SQLite.
//
// Records are append-mostly: Save inserts, List returns the newest first,
// and Delete/Clear remove entries. Timestamps are stored with
// timex.SortableLayout, so ordering and day grouping work on the text column.
package journal

import (
	"context"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// DefaultListLimit applies when List is called with a non-positive limit.
const DefaultListLimit = 100

type Repository interface {
	// Save stores rec and returns its id. It fails with
	// common.ErrorInvalidStatus for a status outside valid/warning/invalid.
	Save(ctx context.Context, rec *models.VerificationRecord) (int64, error)
	List(ctx context.Context, limit int) ([]*models.VerificationRecord, error)
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id int64) (*models.VerificationRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Clear(ctx context.Context) error
	CountByStatus(ctx context.Context) (map[models.Status]int, error)
	// DailyCounts groups records from since onwards by UTC day.
	DailyCounts(ctx context.Context, since timex.Date) (map[string]int, error)
}
