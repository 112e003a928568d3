package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/choppi/admin-web/pkg/config"
	"github.com/choppi/admin-web/pkg/logger"
	"github.com/choppi/admin-web/pkg/metrics"
)

var proxyCORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
}

// Proxy relays any method and sub-path to the backend origin so browser calls
// share an origin with the frontend. Each request is handled independently
// and statelessly; a failed upstream call is reported, never retried.
func Proxy(cfg config.BackendConfig, httpc *http.Client, m *metrics.ProxyMetrics, logg *logger.Logger) http.HandlerFunc {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	backendHost := cfg.Host()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			setProxyCORS(w.Header())
			w.WriteHeader(http.StatusNoContent)
			return
		}

		target := cfg.URL
		if path := proxyPath(r); path != "" {
			target += "/" + path
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		var body io.Reader
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			body = r.Body
		}

		outbound, err := http.NewRequestWithContext(r.Context(), r.Method, target, body)
		if err != nil {
			writeProxyError(w, err)
			return
		}
		copyProxyHeaders(outbound.Header, r.Header)
		outbound.Host = backendHost

		start := time.Now()
		upstream, err := httpc.Do(outbound)
		if err != nil {
			m.IncFailure(r.Method)
			if logg != nil {
				logg.Error(r.Context(), "proxy.upstream_unreachable", err)
			}
			writeProxyError(w, err)
			return
		}
		defer upstream.Body.Close()
		m.ObserveRequest(r.Method, upstream.StatusCode, time.Since(start))

		header := w.Header()
		for key, values := range upstream.Header {
			// re-framed by this transport, so upstream framing must not leak
			if http.CanonicalHeaderKey(key) == "Content-Encoding" || http.CanonicalHeaderKey(key) == "Content-Length" {
				continue
			}
			for _, value := range values {
				header.Add(key, value)
			}
		}
		setProxyCORS(header)

		w.WriteHeader(upstream.StatusCode)
		if _, err := io.Copy(w, upstream.Body); err != nil && logg != nil {
			logg.Warn(r.Context(), "proxy.body_copy_interrupted")
		}
	}
}

// proxyPath extracts the wildcard sub-path, dropping empty segments.
func proxyPath(r *http.Request) string {
	raw := chi.URLParam(r, "*")
	if raw == "" {
		raw = strings.TrimPrefix(r.URL.Path, "/api/choppi")
	}
	segments := strings.Split(raw, "/")
	kept := segments[:0]
	for _, segment := range segments {
		if segment != "" {
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, "/")
}

func copyProxyHeaders(dst, src http.Header) {
	for key, values := range src {
		canonical := http.CanonicalHeaderKey(key)
		if canonical == "Host" || canonical == "Content-Length" {
			continue
		}
		for _, value := range values {
			dst.Add(key, value)
		}
	}
}

func setProxyCORS(header http.Header) {
	for key, value := range proxyCORSHeaders {
		header.Set(key, value)
	}
}

func writeProxyError(w http.ResponseWriter, err error) {
	header := w.Header()
	setProxyCORS(header)
	header.Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Proxy error",
		"error":   err.Error(),
	})
}
