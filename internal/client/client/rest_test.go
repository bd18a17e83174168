package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, Initial: time.Millisecond, Max: 5 * time.Millisecond}
}

func newTestREST(t *testing.T, h http.HandlerFunc, policy RetryPolicy) (*RESTClient, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewRESTClient(ts.URL+"/v1/", ts.Client(), policy, logging.NewNop()), ts
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRESTVerify_Success(t *testing.T) {
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/documents/verify", r.URL.Path)
		assert.Equal(t, "1234", r.Header.Get(common.PinHeaderName))
		assert.NotEmpty(t, r.Header.Get(common.RequestIDHeaderName))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "DOC001", body["document_id"])

		writeJSON(w, http.StatusOK, map[string]any{
			"document_id":   "DOC001",
			"status":        "valid",
			"document_type": "Справка",
			"issuer":        "Министерство образования",
			"expiry_date":   "2026-01-10",
		})
	}, fastPolicy(3))

	out := c.Verify(context.Background(), "DOC001", "1234")

	require.Equal(t, Success, out.Category)
	require.NoError(t, out.Err())
	require.NotNil(t, out.Payload)
	assert.Equal(t, "valid", out.Payload.Status)
	assert.Equal(t, "Справка", out.Payload.DocumentType)
	assert.Equal(t, "2026-01-10", out.Payload.ExpiryDate)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, http.StatusOK, out.StatusCode)
}

func TestRESTVerify_NotFoundIsTerminal(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, map[string]any{
			"document_id": "DOC999", "status": "invalid", "error": common.MsgDocumentNotFound,
		})
	}, fastPolicy(3))

	out := c.Verify(context.Background(), "DOC999", "")

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, NotFound, out.Category)
	assert.Equal(t, common.MsgDocumentNotFound, out.Message)
	assert.True(t, out.Completed())
	assert.NoError(t, out.Err())
	require.NotNil(t, out.Payload)
	assert.Equal(t, "DOC999", out.Payload.DocumentID)
}

func TestRESTVerify_Unauthorized(t *testing.T) {
	tests := []struct {
		name string
		code int
		body string
		want string
	}{
		{name: "401 with message", code: http.StatusUnauthorized, body: `{"error":"Неверный PIN-код"}`, want: common.MsgInvalidPin},
		{name: "401 empty body", code: http.StatusUnauthorized, body: ``, want: common.MsgAuthFailed},
		{name: "403", code: http.StatusForbidden, body: `{}`, want: common.MsgAuthFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			}, fastPolicy(3))

			out := c.Verify(context.Background(), "PIN001", "0000")

			assert.Equal(t, Unauthorized, out.Category)
			assert.Equal(t, tt.want, out.Message)
			assert.Equal(t, int32(1), calls.Load())
			assert.NoError(t, out.Err())
		})
	}
}

func TestRESTVerify_RetriesTransientWithSameRequestID(t *testing.T) {
	var (
		mu  sync.Mutex
		ids []string
	)
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ids = append(ids, r.Header.Get(common.RequestIDHeaderName))
		n := len(ids)
		mu.Unlock()
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"document_id": "DOC002", "status": "warning"})
	}, fastPolicy(3))

	var delays []time.Duration
	var attempts []int
	c.transport.policy.OnBackoff = func(attempt int, d time.Duration) {
		attempts = append(attempts, attempt)
		delays = append(delays, d)
	}

	out := c.Verify(context.Background(), "DOC002", "")

	require.Equal(t, Success, out.Category)
	assert.Equal(t, 3, out.Attempts)
	require.Len(t, ids, 3)
	assert.Equal(t, ids[0], ids[1])
	assert.Equal(t, ids[1], ids[2])
	assert.Equal(t, []int{2, 3}, attempts)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
}

func TestRESTVerify_ExhaustedServerError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}, fastPolicy(3))

	out := c.Verify(context.Background(), "DOC001", "")

	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, Transient, out.Category)
	assert.Equal(t, "Ошибка сервера: 503", out.Message)
	assert.Equal(t, 3, out.Attempts)

	err := out.Err()
	require.Error(t, err)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusServiceUnavailable, te.StatusCode)
	assert.True(t, IsRetryable(err))
}

func TestRESTVerify_TooManyRequestsIsTransient(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}, fastPolicy(2))

	out := c.Verify(context.Background(), "DOC001", "")

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, Transient, out.Category)
}

func TestRESTVerify_SingleAttemptOverride(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, fastPolicy(3))

	out := c.Verify(context.Background(), "DOC001", "", WithMaxAttempts(1))

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, Transient, out.Category)
}

func TestRESTVerify_MalformedBody(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}, fastPolicy(3))

	out := c.Verify(context.Background(), "DOC001", "")

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Malformed, out.Category)
	assert.Equal(t, common.MsgMalformed, out.Message)
	assert.Equal(t, Malformed, CategoryOf(out.Err()))
}

func TestRESTVerify_CanceledBeforeStart(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}, fastPolicy(3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := c.Verify(ctx, "DOC001", "")

	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, Canceled, out.Category)
	assert.Equal(t, common.MsgCanceled, out.Message)
	assert.Equal(t, 0, out.Attempts)
	assert.Equal(t, Canceled, CategoryOf(out.Err()))
}

func TestRESTVerify_CanceledDuringBackoff(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, RetryPolicy{MaxAttempts: 3, Initial: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.transport.policy.OnBackoff = func(int, time.Duration) { cancel() }

	start := time.Now()
	out := c.Verify(ctx, "DOC001", "")

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Canceled, out.Category)
	assert.Equal(t, 1, out.Attempts)
}

func TestRESTVerify_ConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewRESTClient(url, http.DefaultClient, fastPolicy(2), logging.NewNop())
	out := c.Verify(context.Background(), "DOC001", "")

	assert.Equal(t, Transient, out.Category)
	assert.Equal(t, common.MsgConnection, out.Message)
	assert.Equal(t, 2, out.Attempts)
}

func TestRESTVerify_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	hc := &http.Client{Timeout: 30 * time.Millisecond}
	c := NewRESTClient(ts.URL, hc, fastPolicy(2), logging.NewNop())
	out := c.Verify(context.Background(), "DOC001", "")

	assert.Equal(t, Transient, out.Category)
	assert.Equal(t, common.MsgTimeout, out.Message)
	assert.Equal(t, 2, out.Attempts)
}

func TestRESTFetch(t *testing.T) {
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/documents/verify", r.URL.Path)
		assert.Equal(t, "DOC 1", r.URL.Query().Get("document_id"))
		writeJSON(w, http.StatusOK, map[string]any{"document_id": "DOC 1", "status": "valid"})
	}, fastPolicy(1))

	out := c.Fetch(context.Background(), "DOC 1")
	require.Equal(t, Success, out.Category)
	assert.Equal(t, "DOC 1", out.Payload.DocumentID)
}

func TestRESTCatalogs(t *testing.T) {
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/document-types":
			writeJSON(w, http.StatusOK, map[string]any{"types": []string{"Справка", "Диплом"}})
		case "/v1/verification-templates":
			writeJSON(w, http.StatusOK, map[string]any{"templates": []map[string]any{
				{"id": "standard", "name": "Стандартная проверка", "checks": []string{"status"}},
			}})
		case "/v1/health":
			writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, fastPolicy(1))

	types, err := c.DocumentTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Справка", "Диплом"}, types)

	tpls, err := c.Templates(context.Background())
	require.NoError(t, err)
	require.Len(t, tpls, 1)
	assert.Equal(t, "standard", tpls[0].ID)
	assert.Equal(t, []string{"status"}, tpls[0].Checks)

	require.NoError(t, c.Ping(context.Background()))
}

func TestRESTCatalogs_Failure(t *testing.T) {
	c, _ := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, fastPolicy(2))

	_, err := c.DocumentTypes(context.Background())
	require.Error(t, err)
	assert.Equal(t, Transient, CategoryOf(err))

	require.Error(t, c.Ping(context.Background()))
}
