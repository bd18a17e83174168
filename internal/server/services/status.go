package services

import (
	"github.com/dmitrijs2005/docverifier/internal/server/config"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// StatusResolver derives the status a verifier sees from the stored status
// and the expiry date. It has no state beyond the warning window.
type StatusResolver struct {
	warningDays int
}

// NewStatusResolver returns a resolver that reports a valid document as
// warning once it is at most days away from expiry. Non-positive values fall
// back to config.DefaultWarningWindowDays.
func NewStatusResolver(days int) *StatusResolver {
	if days <= 0 {
		days = config.DefaultWarningWindowDays
	}
	return &StatusResolver{warningDays: days}
}

func (r *StatusResolver) WarningDays() int { return r.warningDays }

// Resolve computes the externally visible status of doc on the given day.
func (r *StatusResolver) Resolve(doc *models.Document, today timex.Date) models.Status {
	switch doc.Status {
	case models.StoredRevoked, models.StoredInvalid:
		return models.StatusInvalid
	case models.StoredWarning:
		return models.StatusWarning
	case models.StoredValid:
		if doc.ExpiryDate == nil {
			return models.StatusValid
		}
		left := today.DaysUntil(*doc.ExpiryDate)
		switch {
		case left < 0:
			return models.StatusInvalid
		case left <= r.warningDays:
			return models.StatusWarning
		default:
			return models.StatusValid
		}
	default:
		return models.StatusInvalid
	}
}
