package models

import (
	"maps"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// MetadataErrorKey holds the human-readable failure message of a document
// produced from a failed lookup.
const MetadataErrorKey = "error"

// Document is the client's read-only projection of a registry document.
type Document struct {
	DocumentID   string         `json:"document_id"`
	Status       Status         `json:"status"`
	DocumentType string         `json:"document_type,omitempty"`
	Issuer       string         `json:"issuer,omitempty"`
	IssueDate    *timex.Date    `json:"issue_date,omitempty"`
	ExpiryDate   *timex.Date    `json:"expiry_date,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// FailedDocument is an invalid document carrying message under MetadataErrorKey.
func FailedDocument(documentID, message string) *Document {
	return &Document{
		DocumentID: documentID,
		Status:     StatusInvalid,
		Metadata:   map[string]any{MetadataErrorKey: message},
	}
}

// ErrorMessage returns the failure message, if any.
func (d *Document) ErrorMessage() string {
	if d == nil || d.Metadata == nil {
		return ""
	}
	s, _ := d.Metadata[MetadataErrorKey].(string)
	return s
}

func (d *Document) Clone() *Document {
	c := *d
	if d.IssueDate != nil {
		v := *d.IssueDate
		c.IssueDate = &v
	}
	if d.ExpiryDate != nil {
		v := *d.ExpiryDate
		c.ExpiryDate = &v
	}
	if d.Metadata != nil {
		c.Metadata = maps.Clone(d.Metadata)
	}
	return &c
}

// Template is a named set of checks offered by the registry.
type Template struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Checks []string `json:"checks"`
}

// CachedDocument is the latest known snapshot of a document.
type CachedDocument struct {
	Document *Document
	CachedAt time.Time
	Synced   bool
}

// PendingVerification is a lookup that did not complete a round trip and
// waits for the next sync pass.
type PendingVerification struct {
	ID         int64
	DocumentID string
	Pin        string
	CreatedAt  time.Time
	Synced     bool
}

type CacheStats struct {
	CachedDocuments      int
	PendingVerifications int
}
