package verifications

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	items  []models.Verification
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, v *models.Verification) (*models.Verification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	v.ID = r.nextID
	v.VerifiedAt = r.now()
	r.items = append(r.items, *v)
	return v, nil
}

func (r *MemoryRepository) ListByDocumentID(_ context.Context, documentID string, limit int) ([]*models.Verification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []*models.Verification
	for i := range r.items {
		if r.items[i].DocumentID == documentID {
			v := r.items[i]
			res = append(res, &v)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].VerifiedAt.Equal(res[j].VerifiedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].VerifiedAt.After(res[j].VerifiedAt)
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (r *MemoryRepository) RenameDocument(_ context.Context, documentID, newDocumentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].DocumentID == documentID {
			r.items[i].DocumentID = newDocumentID
		}
	}
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
