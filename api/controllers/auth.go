package controllers

import (
	"net/http"

	"github.com/choppi/admin-web/api/middleware"
	"github.com/choppi/admin-web/api/validators"
	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/internal/session"
	"github.com/choppi/admin-web/pkg/logger"
	"github.com/choppi/admin-web/web"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

// LoginPage renders the login screen. Visitors who already hold a session are
// sent straight to their destination.
func LoginPage(rnd *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if middleware.SessionFromContext(r.Context()).Authenticated() {
			http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusSeeOther)
			return
		}
		rnd.Render(w, r, http.StatusOK, "login", web.LoginView{
			Base: baseView(r, "Iniciar sesión"),
			Next: r.URL.Query().Get("next"),
		})
	}
}

// LoginSubmit validates the credentials form, authenticates against the
// backend and redirects to the preserved destination. Failures re-render the
// form with the submitted email intact.
func LoginSubmit(manager *session.Manager, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		form := loginForm{
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
		}
		next := r.PostFormValue("next")

		view := web.LoginView{
			Base:  baseView(r, "Iniciar sesión"),
			Email: form.Email,
			Next:  next,
		}
		if fields := validators.CheckForm(form); fields != nil {
			view.FieldErrors = fields
			rnd.Render(w, r, http.StatusUnprocessableEntity, "login", view)
			return
		}

		_, err := manager.Login(r.Context(), w, backend.LoginInput{
			Email:    form.Email,
			Password: form.Password,
		})
		if err != nil {
			status, message := publicError(err)
			if logg != nil {
				logg.Warn(logg.WithField(r.Context(), "email", form.Email), "login.rejected")
			}
			view.ErrorMessage = message
			rnd.Render(w, r, status, "login", view)
			return
		}

		http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
	}
}

// Logout drops the session cookie and cached profile, then returns to the
// login screen.
func Logout(manager *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if err := manager.Logout(r.Context(), w, sess.Token); err != nil && logg != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "logout.cache_evict_failed")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
