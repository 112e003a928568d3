package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/internal/session"
	"github.com/choppi/admin-web/pkg/config"
)

func newSessionManager(t *testing.T, handler http.HandlerFunc) *session.Manager {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.NewClient(config.BackendConfig{URL: srv.URL})
	cfg := config.SessionConfig{CookieName: "choppiAccessToken", CookieMaxAge: 168 * time.Hour}
	return session.NewManager(cfg, backend.NewAuthAPI(client), nil, nil)
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	handler := RequireSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for anonymous visitors")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin?tab=stores", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login?next=%2Fadmin%3Ftab%3Dstores" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

func TestRequireSessionPassesAuthenticated(t *testing.T) {
	called := false
	handler := RequireSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(WithSession(req.Context(), session.Session{Token: "tok1"}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to run")
	}
}

func TestLoadSessionSeedsContext(t *testing.T) {
	manager := newSessionManager(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.Profile{UserID: "u1", Email: "a@b.com"})
	})

	var got session.Session
	handler := LoadSession(manager, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/stores", nil)
	req.AddCookie(&http.Cookie{Name: "choppiAccessToken", Value: "tok1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !got.Authenticated() || got.User == nil || got.User.Email != "a@b.com" {
		t.Fatalf("expected seeded session, got %+v", got)
	}
}

func TestLoadSessionClearsCookieOnRejectedToken(t *testing.T) {
	manager := newSessionManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"expired"}`))
	})

	var got session.Session
	handler := LoadSession(manager, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/stores", nil)
	req.AddCookie(&http.Cookie{Name: "choppiAccessToken", Value: "stale"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got.Authenticated() {
		t.Fatal("expected anonymous session after rejected token")
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "choppiAccessToken" && c.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected session cookie to be cleared")
	}
}
