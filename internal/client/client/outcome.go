package client

// WireDocument is a registry answer as it travels on the wire. Dates are
// kept as strings so that the caller decides how to treat bad values.
type WireDocument struct {
	DocumentID   string         `json:"document_id"`
	Status       string         `json:"status"`
	DocumentType string         `json:"document_type,omitempty"`
	Issuer       string         `json:"issuer,omitempty"`
	IssueDate    string         `json:"issue_date,omitempty"`
	ExpiryDate   string         `json:"expiry_date,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// Outcome is the result of Verify or Fetch. Payload is set whenever the
// server sent a document body, including some 404 answers.
type Outcome struct {
	Category   Category
	Payload    *WireDocument
	Message    string
	StatusCode int
	Attempts   int
	Cause      error
}

// Completed reports whether the server gave a definitive answer.
func (o Outcome) Completed() bool {
	switch o.Category {
	case Success, NotFound, Unauthorized:
		return true
	}
	return false
}

// Err returns a *TransportError when no round trip completed, nil otherwise.
func (o Outcome) Err() error {
	if o.Completed() {
		return nil
	}
	return o.transportError()
}

func (o Outcome) transportError() *TransportError {
	return &TransportError{
		Category:   o.Category,
		Message:    o.Message,
		StatusCode: o.StatusCode,
		Err:        o.Cause,
	}
}
