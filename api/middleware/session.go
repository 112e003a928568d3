package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/choppi/admin-web/internal/session"
	"github.com/choppi/admin-web/pkg/logger"
)

type sessionCtxKey struct{}

// WithSession seeds a context with a resolved session, used by handlers and
// tests.
func WithSession(ctx context.Context, sess session.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sess)
}

// SessionFromContext returns the session resolved for this request, empty
// when the middleware did not run or the visitor is anonymous.
func SessionFromContext(ctx context.Context) session.Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(session.Session)
	return sess
}

// LoadSession resolves the session from the cookie on every request and seeds
// the context. A rejected token clears the cookie; the request continues as
// anonymous.
func LoadSession(manager *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.Resolve(r.Context(), r)
			if err != nil {
				manager.ClearCookie(w)
				if logg != nil {
					logg.Warn(r.Context(), "session.invalidated")
				}
				sess = session.Session{}
			}

			ctx := WithSession(r.Context(), sess)
			if logg != nil && sess.User != nil {
				ctx = logg.WithUserID(ctx, sess.User.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession gates a route group: unauthenticated visitors are redirected
// to the login screen with the original path preserved.
func RequireSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())
			if !sess.Authenticated() {
				target := "/login"
				if r.URL.Path != "/" {
					target += "?next=" + url.QueryEscape(r.URL.RequestURI())
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
