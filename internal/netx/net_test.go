package netx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestProbe(t *testing.T) {
	t.Run("2xx is healthy", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/health" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer ts.Close()

		if err := Probe(context.Background(), ts.Client(), ts.URL+"/health"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("503 is an error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		if err := Probe(context.Background(), ts.Client(), ts.URL); err == nil {
			t.Fatal("expected error for 503")
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := Probe(ctx, http.DefaultClient, url); err == nil {
			t.Fatal("expected error for closed server")
		}
	})

	t.Run("bad url", func(t *testing.T) {
		if err := Probe(context.Background(), http.DefaultClient, "://bad"); err == nil {
			t.Fatal("expected error for malformed url")
		}
	})
}
