package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/docverifier/internal/client/models"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/netx"
)

const (
	legacyStatusOK    = "ok"
	legacyStatusError = "error"
)

// LegacyClient implements Client against the envelope-style backend, which
// identifies documents by public_code and wraps every answer in
// {status, data|message}.
type LegacyClient struct {
	baseURL      string
	verifyPath   string
	documentPath string
	transport    *httpTransport
}

func NewLegacyClient(baseURL, verifyPath, documentPath string, hc netx.Doer, policy RetryPolicy, logger logging.Logger) *LegacyClient {
	return &LegacyClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		verifyPath:   verifyPath,
		documentPath: documentPath,
		transport:    &httpTransport{http: hc, policy: policy, logger: logger.With("module", "legacy_client")},
	}
}

type legacyEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type legacyDocument struct {
	PublicCode   string          `json:"public_code"`
	Status       string          `json:"status"`
	DocumentType string          `json:"document_type"`
	Issuer       string          `json:"issuer"`
	IssueDate    string          `json:"issue_date"`
	ExpiryDate   string          `json:"expiry_date"`
	Metadata     json.RawMessage `json:"metadata"`
}

func (c *LegacyClient) Verify(ctx context.Context, documentID, pin string, opts ...CallOption) Outcome {
	payload := map[string]string{"public_code": documentID}
	if pin != "" {
		payload["pin"] = pin
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return malformedOutcome(0, err)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.verifyPath, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		return req, nil
	}
	return c.transport.execute(ctx, "legacy_verify", build, classifyEnvelope, opts...)
}

func (c *LegacyClient) Fetch(ctx context.Context, documentID string, opts ...CallOption) Outcome {
	u := c.baseURL + c.documentPath + "?" + url.Values{"public_code": {documentID}}.Encode()
	return c.transport.execute(ctx, "legacy_fetch", getRequest(u), classifyEnvelope, opts...)
}

func (c *LegacyClient) DocumentTypes(context.Context) ([]string, error) {
	return nil, ErrNotSupported
}

func (c *LegacyClient) Templates(context.Context) ([]models.Template, error) {
	return nil, ErrNotSupported
}

func (c *LegacyClient) Ping(ctx context.Context) error {
	return netx.Probe(ctx, c.transport.http, c.baseURL+"/health")
}

// classifyEnvelope maps envelope answers. An "error" envelope is a completed
// lookup of something that is not a registry document.
func classifyEnvelope(code int, body []byte) Outcome {
	var env legacyEnvelope
	decodeErr := json.Unmarshal(body, &env)
	msg := orDefault(env.Message, env.Error)

	if code != http.StatusOK {
		return failureOutcome(code, msg, common.MsgNotADocument)
	}
	if decodeErr != nil {
		return malformedOutcome(code, decodeErr)
	}

	if env.Status != legacyStatusOK {
		return Outcome{Category: NotFound, Message: orDefault(msg, common.MsgNotADocument), StatusCode: code}
	}

	var ld legacyDocument
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &ld); err != nil {
			return malformedOutcome(code, err)
		}
	}
	return Outcome{Category: Success, Payload: ld.wire(), StatusCode: code}
}

func (ld legacyDocument) wire() *WireDocument {
	return &WireDocument{
		DocumentID:   ld.PublicCode,
		Status:       ld.Status,
		DocumentType: ld.DocumentType,
		Issuer:       ld.Issuer,
		IssueDate:    ld.IssueDate,
		ExpiryDate:   ld.ExpiryDate,
		Metadata:     decodeMetadata(ld.Metadata),
	}
}

// decodeMetadata accepts an object or a string holding a JSON object, as
// the backend may pass the stored column through verbatim.
func decodeMetadata(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if json.Unmarshal(raw, &m) == nil {
		return m
	}
	var s string
	if json.Unmarshal(raw, &s) == nil && json.Unmarshal([]byte(s), &m) == nil {
		return m
	}
	return nil
}
