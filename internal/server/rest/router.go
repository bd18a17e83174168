package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/server/health"
	"github.com/dmitrijs2005/docverifier/internal/server/metrics"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	AdminSecret    []byte
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter mounts the public API, the admin API, health probes and
// /metrics. m may be nil.
func NewRouter(h *Handler, hh *health.Handler, m *metrics.Metrics, logger logging.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recovery(logger))
	r.Use(Logger(logger, m))
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(Timeout(cfg.RequestTimeout))

	hh.Register(r)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		hh.Register(r)

		r.With(ContentTypeJSON).Post("/documents/verify", h.Verify)
		r.Get("/documents/verify", h.Verify)
		r.Get("/document-types", h.DocumentTypes)
		r.Get("/verification-templates", h.VerificationTemplates)
		r.Get("/documents/{id}/attachment", h.GetAttachment)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(cfg.AdminSecret, logger))
			r.Use(ContentTypeJSON)

			r.Post("/documents", h.CreateDocument)
			r.Get("/documents/{id}", h.GetDocument)
			r.Patch("/documents/{id}/status", h.UpdateStatus)
			r.Post("/documents/{id}/rotate", h.RotateDocument)
			r.Delete("/documents/{id}", h.DeleteDocument)
			r.Get("/documents/{id}/verifications", h.ListVerifications)
			r.Post("/documents/{id}/attachment", h.CreateAttachment)
		})
	})

	return r
}
