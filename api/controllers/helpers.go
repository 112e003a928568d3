package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/choppi/admin-web/api/middleware"
	"github.com/choppi/admin-web/internal/backend"
	pkgerrors "github.com/choppi/admin-web/pkg/errors"
	"github.com/choppi/admin-web/web"
)

// baseView assembles the layout fields shared by every page: the signed-in
// email from the resolved session and a one-shot toast carried in the query.
func baseView(r *http.Request, title string) web.Base {
	base := web.Base{Title: title, Flash: r.URL.Query().Get("toast")}
	if sess := middleware.SessionFromContext(r.Context()); sess.User != nil {
		base.UserEmail = sess.User.Email
	}
	return base
}

// authContext attaches the session token so backend calls go out
// authenticated.
func authContext(r *http.Request) context.Context {
	ctx := r.Context()
	if sess := middleware.SessionFromContext(ctx); sess.Token != "" {
		ctx = backend.WithToken(ctx, sess.Token)
	}
	return ctx
}

// publicError maps a backend failure to the status and message shown to the
// user.
func publicError(err error) (int, string) {
	tagged := pkgerrors.As(err)
	meta := pkgerrors.MetadataFor(tagged.Code())
	message := tagged.Message()
	if message == "" {
		message = meta.PublicMessage
	}
	return meta.HTTPStatus, message
}

// NotFound renders the generic error page for unknown routes.
func NotFound(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.Render(w, r, http.StatusNotFound, "error", web.ErrorView{
			Base:    baseView(r, "No encontrado"),
			Status:  http.StatusNotFound,
			Message: "La página solicitada no existe.",
		})
	}
}

// safeNext keeps post-login redirects on this origin. Anything that is not a
// local path falls back to the stores list.
func safeNext(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return "/stores"
}
