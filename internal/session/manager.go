package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/pkg/config"
	pkgerrors "github.com/choppi/admin-web/pkg/errors"
	"github.com/choppi/admin-web/pkg/logger"
	"github.com/choppi/admin-web/pkg/redis"
)

// Session is the authentication state derived for one request. User is only
// ever non-nil alongside a token.
type Session struct {
	Token string
	User  *backend.User
}

// Authenticated reports whether the request carries an access token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Cache is the profile cache surface; satisfied by pkg/redis.Client.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(tokenHash string) string
}

// Manager owns the session lifecycle: constructed once at the application
// root and injected wherever authentication state is needed.
type Manager struct {
	cfg   config.SessionConfig
	auth  backend.AuthAPI
	cache Cache
	logg  *logger.Logger
}

// NewManager wires the session manager. cache may be nil, in which case every
// resolve without a cached profile costs a profile fetch.
func NewManager(cfg config.SessionConfig, auth backend.AuthAPI, cache Cache, logg *logger.Logger) *Manager {
	return &Manager{cfg: cfg, auth: auth, cache: cache, logg: logg}
}

// Login authenticates against the backend, sets the session cookie and caches
// the returned profile.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, input backend.LoginInput) (*backend.AuthResponse, error) {
	resp, err := m.auth.Login(ctx, input)
	if err != nil {
		return nil, err
	}
	m.setCookie(w, resp.AccessToken)
	m.cacheUser(ctx, resp.AccessToken, resp.User)
	return resp, nil
}

// Logout clears the cookie and evicts the cached profile.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, token string) error {
	m.ClearCookie(w)
	return m.evict(ctx, token)
}

// Resolve derives the session for a request. A missing cookie yields an empty
// session and no error. An invalid token yields an UNAUTHORIZED error after
// evicting the stale cache entry; the caller decides whether to clear the
// cookie and redirect.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, nil
	}
	token := cookie.Value

	if user, ok := m.cachedUser(ctx, token); ok {
		return Session{Token: token, User: user}, nil
	}

	user, err := m.Refresh(ctx, token)
	if err != nil {
		return Session{Token: token}, err
	}
	return Session{Token: token, User: user}, nil
}

// Refresh re-fetches the profile for a token and re-caches it. Any failure
// invalidates the cached entry: a session must never outlive a rejected
// profile fetch.
func (m *Manager) Refresh(ctx context.Context, token string) (*backend.User, error) {
	profile, err := m.auth.Profile(backend.WithToken(ctx, token))
	if err != nil {
		if evictErr := m.evict(ctx, token); evictErr != nil && m.logg != nil {
			m.logg.Warn(m.logg.WithField(ctx, "error", evictErr.Error()), "session.cache_evict_failed")
		}
		if pkgerrors.IsUnauthorized(err) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "refresh profile")
	}
	user := &backend.User{ID: profile.UserID, Email: profile.Email}
	m.cacheUser(ctx, token, *user)
	return user, nil
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.cookieTTL(token).Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// cookieTTL clamps the configured max-age to the token's own expiry when the
// token is a parseable JWT. Verification stays with the backend; only the exp
// claim is inspected here.
func (m *Manager) cookieTTL(token string) time.Duration {
	ttl := m.cfg.CookieMaxAge
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ttl
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ttl
	}
	remaining := time.Until(exp.Time)
	if remaining > 0 && remaining < ttl {
		return remaining
	}
	return ttl
}

func (m *Manager) cacheUser(ctx context.Context, token string, user backend.User) {
	if m.cache == nil {
		return
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return
	}
	key := m.cache.SessionKey(hashToken(token))
	if err := m.cache.Set(ctx, key, string(encoded), m.cfg.CacheTTL); err != nil && m.logg != nil {
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "session.cache_write_failed")
	}
}

func (m *Manager) cachedUser(ctx context.Context, token string) (*backend.User, bool) {
	if m.cache == nil {
		return nil, false
	}
	raw, err := m.cache.Get(ctx, m.cache.SessionKey(hashToken(token)))
	if err != nil {
		return nil, false
	}
	var user backend.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (m *Manager) evict(ctx context.Context, token string) error {
	if m.cache == nil || token == "" {
		return nil
	}
	err := m.cache.Del(ctx, m.cache.SessionKey(hashToken(token)))
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
