package models

import (
	"encoding/json"
	"time"
)

// VerificationRecord is one journal entry. Type, issuer and metadata are
// copies taken at verification time and are never refreshed.
type VerificationRecord struct {
	ID           int64     `json:"id"`
	DocumentID   string    `json:"document_id"`
	Status       Status    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	DocumentType string    `json:"document_type,omitempty"`
	Issuer       string    `json:"issuer,omitempty"`
	// Metadata is the serialized document as it was verified.
	Metadata string `json:"metadata,omitempty"`
}

// NewRecord snapshots doc into a record stamped with at.
func NewRecord(doc *Document, at time.Time) *VerificationRecord {
	rec := &VerificationRecord{
		DocumentID:   doc.DocumentID,
		Status:       doc.Status,
		Timestamp:    at,
		DocumentType: doc.DocumentType,
		Issuer:       doc.Issuer,
	}
	if b, err := json.Marshal(doc); err == nil {
		rec.Metadata = string(b)
	}
	return rec
}

// Snapshot decodes the document stored in Metadata. It returns nil when the
// record carries no snapshot.
func (r *VerificationRecord) Snapshot() *Document {
	if r.Metadata == "" {
		return nil
	}
	var d Document
	if err := json.Unmarshal([]byte(r.Metadata), &d); err != nil {
		return nil
	}
	return &d
}
