package models

import "time"

// Verification is one logged lookup of a document.
type Verification struct {
	ID         int64
	DocumentID string
	Status     Status
	IPAddress  string
	UserAgent  string
	// Device is a short label parsed from UserAgent, e.g. "Chrome on Windows".
	Device     string
	VerifiedAt time.Time
}

// Template is a named set of checks a verifier may run.
type Template struct {
	ID     string
	Name   string
	Checks []string
}
