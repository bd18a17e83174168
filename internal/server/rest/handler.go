// Package rest exposes the registry over HTTP with chi.
package rest

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/server/httpx"
	"github.com/dmitrijs2005/docverifier/internal/server/models"
	"github.com/dmitrijs2005/docverifier/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

type DocumentService interface {
	Verify(ctx context.Context, req services.VerifyRequest) (*models.DocumentView, error)
	Get(ctx context.Context, documentID string) (*models.DocumentView, error)
	Create(ctx context.Context, req services.CreateDocumentRequest) (*models.DocumentView, error)
	UpdateStatus(ctx context.Context, documentID string, status models.StoredStatus) error
	Rotate(ctx context.Context, documentID string) (string, error)
	Delete(ctx context.Context, documentID string) error
	Verifications(ctx context.Context, documentID string, limit int) ([]*models.Verification, error)
}

type AttachmentService interface {
	CreateUploadURL(ctx context.Context, documentID string) (string, string, error)
	DownloadURL(ctx context.Context, documentID, pin string) (string, time.Duration, error)
}

type Handler struct {
	documents   DocumentService
	attachments AttachmentService
	logger      logging.Logger
}

func NewHandler(documents DocumentService, attachments AttachmentService, logger logging.Logger) *Handler {
	return &Handler{documents: documents, attachments: attachments, logger: logger}
}

// Verify serves POST with a JSON body and GET with a query parameter.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var documentID string
	if r.Method == http.MethodGet {
		documentID = r.URL.Query().Get("document_id")
	} else {
		var req verifyRequest
		if !h.decode(w, r, &req) {
			return
		}
		documentID = req.DocumentID
	}

	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "document_id is required")
		return
	}

	view, err := h.documents.Verify(r.Context(), services.VerifyRequest{
		DocumentID: documentID,
		Pin:        r.Header.Get(common.PinHeaderName),
		ClientIP:   clientIP(r),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, notFoundResponse{
				DocumentID: documentID,
				Status:     models.StatusInvalid,
				Error:      common.MsgDocumentNotFound,
			})
			return
		}
		h.writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toDocumentResponse(view))
}

func (h *Handler) DocumentTypes(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, typesResponse{Types: services.DocumentTypes()})
}

func (h *Handler) VerificationTemplates(w http.ResponseWriter, _ *http.Request) {
	tpls := services.VerificationTemplates()
	res := templatesResponse{Templates: make([]templateDTO, 0, len(tpls))}
	for _, t := range tpls {
		res.Templates = append(res.Templates, templateDTO{ID: t.ID, Name: t.Name, Checks: t.Checks})
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.documents.Create(r.Context(), services.CreateDocumentRequest{
		DocumentID:   req.DocumentID,
		DocumentType: req.DocumentType,
		Issuer:       req.Issuer,
		IssueDate:    req.IssueDate,
		ExpiryDate:   req.ExpiryDate,
		Status:       models.StoredStatus(req.Status),
		Metadata:     req.Metadata,
		Pin:          req.Pin,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "document registered", "document_id", view.DocumentID, "admin", AdminFromContext(r.Context()))
	httpx.WriteJSON(w, http.StatusCreated, toAdminResponse(view))
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	view, err := h.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdminResponse(view))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !h.decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.documents.UpdateStatus(r.Context(), id, models.StoredStatus(req.Status)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	view, err := h.documents.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAdminResponse(view))
}

func (h *Handler) RotateDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	newID, err := h.documents.Rotate(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rotateResponse{DocumentID: newID, PreviousDocumentID: id})
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			httpx.WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	list, err := h.documents.Verifications(r.Context(), chi.URLParam(r, "id"), limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, verificationsResponse{Verifications: toVerificationDTOs(list)})
}

func (h *Handler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.attachments.CreateUploadURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, uploadResponse{Key: key, URL: url})
}

func (h *Handler) GetAttachment(w http.ResponseWriter, r *http.Request) {
	url, ttl, err := h.attachments.DownloadURL(r.Context(), chi.URLParam(r, "id"), r.Header.Get(common.PinHeaderName))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, downloadResponse{URL: url, ExpiresIn: int(ttl.Seconds())})
}

// decode reads a JSON body into dst and answers 400 on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		h.logger.Warn(r.Context(), "failed to decode request body",
			"error", err,
			"request_id", RequestIDFromContext(r.Context()),
		)
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service sentinels to HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		httpx.WriteError(w, http.StatusNotFound, common.MsgDocumentNotFound)
	case errors.Is(err, common.ErrorUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, common.MsgInvalidPin)
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorInvalidStatus):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, "document already exists")
	case errors.Is(err, context.DeadlineExceeded):
		httpx.WriteError(w, http.StatusGatewayTimeout, common.MsgTimeout)
	default:
		h.logger.Error(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
