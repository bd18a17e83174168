package documents

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// MemoryRepository keeps documents in a map. It backs the mock registry and
// service tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[string]*models.Document
	now    func() time.Time
}

func NewMemoryRepository(seed ...*models.Document) *MemoryRepository {
	r := &MemoryRepository{docs: make(map[string]*models.Document), now: time.Now}
	for _, d := range seed {
		_, _ = r.Create(context.Background(), d)
	}
	return r
}

func (r *MemoryRepository) GetByDocumentID(_ context.Context, documentID string) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.docs[documentID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return d.Clone(), nil
}

func (r *MemoryRepository) Create(_ context.Context, doc *models.Document) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.DocumentID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	r.nextID++
	doc.ID = r.nextID
	doc.CreatedAt = r.now()
	doc.UpdatedAt = doc.CreatedAt
	r.docs[doc.DocumentID] = doc.Clone()
	return doc, nil
}

func (r *MemoryRepository) UpdateStatus(_ context.Context, documentID string, status models.StoredStatus) error {
	return r.update(documentID, func(d *models.Document) { d.Status = status })
}

func (r *MemoryRepository) UpdateDocumentID(_ context.Context, documentID, newDocumentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.docs[documentID]
	if !ok {
		return common.ErrorNotFound
	}
	if _, taken := r.docs[newDocumentID]; taken {
		return common.ErrorAlreadyExists
	}
	delete(r.docs, documentID)
	d.DocumentID = newDocumentID
	d.UpdatedAt = r.now()
	r.docs[newDocumentID] = d
	return nil
}

func (r *MemoryRepository) SetAttachmentKey(_ context.Context, documentID, key string) error {
	return r.update(documentID, func(d *models.Document) { d.AttachmentKey = key })
}

func (r *MemoryRepository) Delete(_ context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[documentID]; !ok {
		return common.ErrorNotFound
	}
	delete(r.docs, documentID)
	return nil
}

func (r *MemoryRepository) update(documentID string, fn func(d *models.Document)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.docs[documentID]
	if !ok {
		return common.ErrorNotFound
	}
	fn(d)
	d.UpdatedAt = r.now()
	return nil
}

// SampleDocuments returns the fixture registry served by the mock server,
// with expiry dates relative to today so their resolved statuses stay stable.
func SampleDocuments(today timex.Date) []*models.Document {
	issue1 := today.AddDays(-365)
	exp1 := today.AddDays(365)
	issue2 := today.AddDays(-355)
	exp2 := today.AddDays(10)
	issue3 := today.AddDays(-700)
	exp3 := today.AddDays(-335)

	return []*models.Document{
		{
			DocumentID:   "DOC001",
			DocumentType: "Справка",
			Issuer:       "Министерство образования",
			IssueDate:    &issue1,
			ExpiryDate:   &exp1,
			Status:       models.StoredValid,
			Metadata:     map[string]any{"series": "AB", "number": "123456"},
		},
		{
			DocumentID:   "DOC002",
			DocumentType: "Сертификат",
			Issuer:       "Банк",
			IssueDate:    &issue2,
			ExpiryDate:   &exp2,
			Status:       models.StoredWarning,
			Metadata:     map[string]any{"warning": "Срок действия скоро истекает"},
		},
		{
			DocumentID:   "DOC003",
			DocumentType: "Удостоверение",
			Issuer:       "МВД",
			IssueDate:    &issue3,
			ExpiryDate:   &exp3,
			Status:       models.StoredInvalid,
			Metadata:     map[string]any{"reason": "Документ отозван"},
		},
	}
}

var _ Repository = (*MemoryRepository)(nil)
