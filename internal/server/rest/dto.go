package rest

import (
	"time"

	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

type verifyRequest struct {
	DocumentID string `json:"document_id"`
}

// DocumentResponse is the public verification answer.
type DocumentResponse struct {
	DocumentID    string         `json:"document_id"`
	Status        models.Status  `json:"status"`
	DocumentType  string         `json:"document_type,omitempty"`
	Issuer        string         `json:"issuer,omitempty"`
	IssueDate     *timex.Date    `json:"issue_date,omitempty"`
	ExpiryDate    *timex.Date    `json:"expiry_date,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	HasAttachment bool           `json:"has_attachment,omitempty"`
}

// AdminDocumentResponse adds the stored status for registry operators.
type AdminDocumentResponse struct {
	DocumentResponse
	StoredStatus models.StoredStatus `json:"stored_status"`
}

type notFoundResponse struct {
	DocumentID string        `json:"document_id"`
	Status     models.Status `json:"status"`
	Error      string        `json:"error"`
}

type typesResponse struct {
	Types []string `json:"types"`
}

type templateDTO struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Checks []string `json:"checks"`
}

type templatesResponse struct {
	Templates []templateDTO `json:"templates"`
}

type createDocumentRequest struct {
	DocumentID   string         `json:"document_id"`
	DocumentType string         `json:"document_type"`
	Issuer       string         `json:"issuer"`
	IssueDate    *timex.Date    `json:"issue_date"`
	ExpiryDate   *timex.Date    `json:"expiry_date"`
	Status       string         `json:"status"`
	Metadata     map[string]any `json:"metadata"`
	Pin          string         `json:"pin"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type rotateResponse struct {
	DocumentID         string `json:"document_id"`
	PreviousDocumentID string `json:"previous_document_id"`
}

type verificationDTO struct {
	ID         int64         `json:"id"`
	DocumentID string        `json:"document_id"`
	Status     models.Status `json:"status"`
	IPAddress  string        `json:"ip_address,omitempty"`
	UserAgent  string        `json:"user_agent,omitempty"`
	Device     string        `json:"device,omitempty"`
	VerifiedAt time.Time     `json:"verified_at"`
}

type verificationsResponse struct {
	Verifications []verificationDTO `json:"verifications"`
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type downloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

func toDocumentResponse(v *models.DocumentView) DocumentResponse {
	return DocumentResponse{
		DocumentID:    v.DocumentID,
		Status:        v.Status,
		DocumentType:  v.DocumentType,
		Issuer:        v.Issuer,
		IssueDate:     v.IssueDate,
		ExpiryDate:    v.ExpiryDate,
		Metadata:      v.Metadata,
		HasAttachment: v.HasAttachment,
	}
}

func toAdminResponse(v *models.DocumentView) AdminDocumentResponse {
	return AdminDocumentResponse{DocumentResponse: toDocumentResponse(v), StoredStatus: v.StoredStatus}
}

func toVerificationDTOs(list []*models.Verification) []verificationDTO {
	res := make([]verificationDTO, 0, len(list))
	for _, v := range list {
		res = append(res, verificationDTO{
			ID:         v.ID,
			DocumentID: v.DocumentID,
			Status:     v.Status,
			IPAddress:  v.IPAddress,
			UserAgent:  v.UserAgent,
			Device:     v.Device,
			VerifiedAt: v.VerifiedAt.UTC(),
		})
	}
	return res
}
