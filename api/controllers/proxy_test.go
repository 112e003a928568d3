package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/choppi/admin-web/pkg/config"
)

func newProxy(t *testing.T, handler http.HandlerFunc) http.HandlerFunc {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.BackendConfig{URL: srv.URL}
	return Proxy(cfg, srv.Client(), nil, nil)
}

func TestProxyForwardsMethodPathAndQuery(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotBody, gotHost, gotAuth string
	proxy := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotHost = r.Host
		gotAuth = r.Header.Get("Authorization")
		payload, _ := io.ReadAll(r.Body)
		gotBody = string(payload)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"s1"}`))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/choppi/stores?page=2&q=bodega", strings.NewReader(`{"name":"Bodega"}`))
	req.Header.Set("Authorization", "Bearer tok1")
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if gotMethod != http.MethodPost || gotPath != "/stores" {
		t.Fatalf("forwarded %s %s", gotMethod, gotPath)
	}
	if gotQuery != "page=2&q=bodega" {
		t.Fatalf("forwarded query %q", gotQuery)
	}
	if gotBody != `{"name":"Bodega"}` {
		t.Fatalf("forwarded body %q", gotBody)
	}
	if gotAuth != "Bearer tok1" {
		t.Fatalf("forwarded auth %q", gotAuth)
	}
	if gotHost == "" || gotHost == "example.com" {
		t.Fatalf("host should be rewritten to the backend, got %q", gotHost)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected upstream status, got %d", rec.Code)
	}
	if rec.Body.String() != `{"id":"s1"}` {
		t.Fatalf("expected upstream body, got %q", rec.Body.String())
	}
}

func TestProxyStripsUpstreamFramingHeaders(t *testing.T) {
	proxy := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("X-Upstream", "yes")
		w.Write([]byte("plain"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/choppi/stores", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "" {
		t.Fatalf("content-encoding should be stripped, got %q", got)
	}
	if got := rec.Header().Get("X-Upstream"); got != "yes" {
		t.Fatalf("expected upstream header to pass through, got %q", got)
	}
}

func TestProxyAddsCORSHeaders(t *testing.T) {
	proxy := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/choppi/products/p1", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	header := rec.Header()
	if header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing allow-origin, headers %v", header)
	}
	if header.Get("Access-Control-Allow-Methods") != "GET,POST,PUT,PATCH,DELETE,OPTIONS" {
		t.Fatalf("unexpected allow-methods %q", header.Get("Access-Control-Allow-Methods"))
	}
	if header.Get("Access-Control-Allow-Headers") != "Content-Type, Authorization" {
		t.Fatalf("unexpected allow-headers %q", header.Get("Access-Control-Allow-Headers"))
	}
}

func TestProxyPreflightShortCircuits(t *testing.T) {
	proxy := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the backend")
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/choppi/stores", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("preflight response missing CORS headers")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("preflight body should be empty, got %q", rec.Body.String())
	}
}

func TestProxyReportsUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	proxy := Proxy(config.BackendConfig{URL: srv.URL}, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/choppi/stores", nil)
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("error response missing CORS headers")
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["message"] != "Proxy error" {
		t.Fatalf("unexpected message %q", body["message"])
	}
	if body["error"] == "" {
		t.Fatal("expected error detail")
	}
}

func TestProxyOmitsBodyForGet(t *testing.T) {
	proxy := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		if len(payload) != 0 {
			t.Fatalf("GET must not carry a body, got %q", payload)
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/choppi/stores", strings.NewReader("ignored"))
	rec := httptest.NewRecorder()
	proxy.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
