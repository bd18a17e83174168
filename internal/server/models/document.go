// Package models defines server-side data models persisted in the database.
package models

import (
	"maps"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// StoredStatus is the status persisted in the registry. It is richer than
// what clients see: revoked collapses to invalid on the way out.
type StoredStatus string

const (
	StoredValid   StoredStatus = "valid"
	StoredWarning StoredStatus = "warning"
	StoredInvalid StoredStatus = "invalid"
	StoredRevoked StoredStatus = "revoked"
)

// Valid reports whether s is one of the statuses the registry accepts.
func (s StoredStatus) Valid() bool {
	switch s {
	case StoredValid, StoredWarning, StoredInvalid, StoredRevoked:
		return true
	}
	return false
}

// Status is the externally visible verification status.
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusInvalid Status = "invalid"
)

// Document is a registry record of an issued credential.
type Document struct {
	ID           int64
	DocumentID   string
	DocumentType string
	Issuer       string
	IssueDate    *timex.Date
	ExpiryDate   *timex.Date
	Status       StoredStatus
	Metadata     map[string]any
	// PinHash is a bcrypt hash; empty means the document is not PIN-protected.
	PinHash       string
	AttachmentKey string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Clone copies d so in-memory stores never share mutable state with callers.
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

// DocumentView is a document as returned to verifiers, with the status
// already resolved for the current day.
type DocumentView struct {
	DocumentID    string
	Status        Status
	StoredStatus  StoredStatus
	DocumentType  string
	Issuer        string
	IssueDate     *timex.Date
	ExpiryDate    *timex.Date
	Metadata      map[string]any
	HasAttachment bool
}
