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

// RESTClient implements Client against the /v1 registry API.
type RESTClient struct {
	baseURL   string
	transport *httpTransport
}

func NewRESTClient(baseURL string, hc netx.Doer, policy RetryPolicy, logger logging.Logger) *RESTClient {
	return &RESTClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: &httpTransport{http: hc, policy: policy, logger: logger.With("module", "rest_client")},
	}
}

func (c *RESTClient) Verify(ctx context.Context, documentID, pin string, opts ...CallOption) Outcome {
	body, err := json.Marshal(map[string]string{"document_id": documentID})
	if err != nil {
		return malformedOutcome(0, err)
	}

	build := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/verify", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if pin != "" {
			req.Header.Set(common.PinHeaderName, pin)
		}
		return req, nil
	}
	return c.transport.execute(ctx, "verify", build, classifyDocument, opts...)
}

func (c *RESTClient) Fetch(ctx context.Context, documentID string, opts ...CallOption) Outcome {
	u := c.baseURL + "/documents/verify?" + url.Values{"document_id": {documentID}}.Encode()
	return c.transport.execute(ctx, "fetch", getRequest(u), classifyDocument, opts...)
}

func (c *RESTClient) DocumentTypes(ctx context.Context) ([]string, error) {
	var res struct {
		Types []string `json:"types"`
	}
	out := c.transport.execute(ctx, "document_types", getRequest(c.baseURL+"/document-types"), decodeInto(&res, ""))
	if out.Category != Success {
		return nil, out.transportError()
	}
	return res.Types, nil
}

func (c *RESTClient) Templates(ctx context.Context) ([]models.Template, error) {
	var res struct {
		Templates []models.Template `json:"templates"`
	}
	out := c.transport.execute(ctx, "templates", getRequest(c.baseURL+"/verification-templates"), decodeInto(&res, ""))
	if out.Category != Success {
		return nil, out.transportError()
	}
	return res.Templates, nil
}

func (c *RESTClient) Ping(ctx context.Context) error {
	return netx.Probe(ctx, c.transport.http, c.baseURL+"/health")
}

// classifyDocument handles verify answers. 404 bodies carry the contract
// document, so their payload is kept.
func classifyDocument(code int, body []byte) Outcome {
	var doc WireDocument
	decodeErr := json.Unmarshal(body, &doc)

	if code == http.StatusOK {
		if decodeErr != nil {
			return malformedOutcome(code, decodeErr)
		}
		return Outcome{Category: Success, Payload: &doc, StatusCode: code}
	}

	out := failureOutcome(code, errorField(body), common.MsgDocumentNotFound)
	if out.Category == NotFound && decodeErr == nil {
		out.Payload = &doc
	}
	return out
}

func getRequest(u string) buildFunc {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}
}
