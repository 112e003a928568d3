package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/choppi/admin-web/api/middleware"
	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/internal/session"
	"github.com/choppi/admin-web/pkg/config"
	"github.com/choppi/admin-web/web"
)

// newBackendClient points a resource client at a fake backend.
func newBackendClient(t *testing.T, handler http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.NewClient(config.BackendConfig{URL: srv.URL})
}

func newTestRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	rnd, err := web.NewRenderer(nil)
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	return rnd
}

func newTestSessionManager(t *testing.T, handler http.HandlerFunc) *session.Manager {
	t.Helper()
	client := newBackendClient(t, handler)
	cfg := config.SessionConfig{CookieName: "choppiAccessToken", CookieMaxAge: 168 * time.Hour}
	return session.NewManager(cfg, backend.NewAuthAPI(client), nil, nil)
}

// asUser seeds the request context with an authenticated session.
func asUser(req *http.Request, token, email string) *http.Request {
	sess := session.Session{Token: token, User: &backend.User{ID: "u1", Email: email}}
	return req.WithContext(middleware.WithSession(req.Context(), sess))
}
