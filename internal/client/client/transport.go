package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/dmitrijs2005/docverifier/internal/netx"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
)

const maxBodySize = 1 << 20

type (
	buildFunc    func(ctx context.Context) (*http.Request, error)
	classifyFunc func(code int, body []byte) Outcome
)

// httpTransport runs one logical request as a series of attempts.
type httpTransport struct {
	http   netx.Doer
	policy RetryPolicy
	logger logging.Logger
}

func (t *httpTransport) execute(ctx context.Context, op string, build buildFunc, classify classifyFunc, opts ...CallOption) Outcome {
	policy := t.policy
	for _, o := range opts {
		o(&policy)
	}

	requestID := uuid.NewString()
	attempts := 0
	var out Outcome

	err := retry.Do(ctx, policy.backoff(), func(ctx context.Context) error {
		attempts++
		out = t.attempt(ctx, requestID, build, classify)
		if out.Category != Transient {
			return nil
		}
		t.logger.Warn(ctx, "request attempt failed",
			"op", op,
			"attempt", attempts,
			"request_id", requestID,
			"message", out.Message,
			"error", out.Cause,
		)
		return retry.RetryableError(out.transportError())
	})
	if err != nil && ctx.Err() != nil {
		out = canceledOutcome(ctx.Err())
	}
	out.Attempts = attempts

	t.logger.Debug(ctx, "request finished",
		"op", op,
		"request_id", requestID,
		"category", out.Category.String(),
		"status_code", out.StatusCode,
		"attempts", attempts,
	)
	return out
}

func (t *httpTransport) attempt(ctx context.Context, requestID string, build buildFunc, classify classifyFunc) Outcome {
	req, err := build(ctx)
	if err != nil {
		return Outcome{Category: Transient, Message: common.MsgConnection, Cause: err}
	}
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return classifyTransportError(ctx, err)
	}
	return classify(resp.StatusCode, body)
}

func classifyTransportError(ctx context.Context, err error) Outcome {
	if ctx.Err() != nil {
		return canceledOutcome(err)
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return Outcome{Category: Transient, Message: common.MsgTimeout, Cause: err}
	}
	return Outcome{Category: Transient, Message: common.MsgConnection, Cause: err}
}

func canceledOutcome(err error) Outcome {
	return Outcome{Category: Canceled, Message: common.MsgCanceled, Cause: err}
}

func malformedOutcome(code int, err error) Outcome {
	return Outcome{Category: Malformed, Message: common.MsgMalformed, StatusCode: code, Cause: err}
}

// failureOutcome maps a non-200 status. msg is the server's own message and
// wins over the defaults when present.
func failureOutcome(code int, msg, notFoundMsg string) Outcome {
	switch code {
	case http.StatusNotFound:
		return Outcome{Category: NotFound, Message: orDefault(msg, notFoundMsg), StatusCode: code}
	case http.StatusUnauthorized, http.StatusForbidden:
		return Outcome{Category: Unauthorized, Message: orDefault(msg, common.MsgAuthFailed), StatusCode: code}
	}
	return Outcome{
		Category:   Transient,
		Message:    fmt.Sprintf(common.MsgServerErrorFmt, code),
		StatusCode: code,
		Cause:      fmt.Errorf("unexpected status %d", code),
	}
}

// decodeInto returns a classifier that unmarshals a 200 body into dst.
func decodeInto(dst any, notFoundMsg string) classifyFunc {
	return func(code int, body []byte) Outcome {
		if code != http.StatusOK {
			return failureOutcome(code, errorField(body), notFoundMsg)
		}
		if err := json.Unmarshal(body, dst); err != nil {
			return malformedOutcome(code, err)
		}
		return Outcome{Category: Success, StatusCode: code}
	}
}

// errorField extracts "error" or "message" from a JSON error body.
func errorField(body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) != nil {
		return ""
	}
	return orDefault(e.Error, e.Message)
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
