package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/docverifier/internal/client/config"
	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/logging"
)

// Client is the registry API used by the verifier.
type Client interface {
	Verify(ctx context.Context, documentID, pin string, opts ...CallOption) Outcome
	Fetch(ctx context.Context, documentID string, opts ...CallOption) Outcome
	DocumentTypes(ctx context.Context) ([]string, error)
	Templates(ctx context.Context) ([]models.Template, error)
	Ping(ctx context.Context) error
}

// PolicyFromConfig builds the retry policy described by cfg.
func PolicyFromConfig(cfg *config.Config) RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   cfg.MaxRetries,
		Initial:       cfg.InitialBackoff,
		Max:           cfg.MaxBackoff,
		JitterPercent: cfg.BackoffJitterPercent,
	}
}

// New returns the backend selected by cfg.Backend.
func New(cfg *config.Config, logger logging.Logger) (Client, error) {
	hc := &http.Client{Timeout: cfg.RequestTimeout}
	policy := PolicyFromConfig(cfg)

	switch cfg.Backend {
	case "", config.BackendREST:
		return NewRESTClient(cfg.APIBaseURL, hc, policy, logger), nil
	case config.BackendLegacy:
		return NewLegacyClient(cfg.APIBaseURL, cfg.VerifyPath, cfg.DocumentPath, hc, policy, logger), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
