package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/stitch-smart/auth"
	"github.com/rs/zerolog/log"
)

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")

		if err := s.validator.ValidateUserCredentials(email, password); err != nil {
			redirectWithErrorAndEmail(w, r, RouteLogin, validationMessage(err), email)
			return
		}

		token, ok, err := s.manager.SignIn(r.Context(), email, password)
		if err != nil {
			log.Err(err).Msg("Login failed")
			redirectWithErrorAndEmail(w, r, RouteLogin, "Something went wrong, please try again", email)
			return
		}
		if !ok {
			redirectWithErrorAndEmail(w, r, RouteLogin, "Invalid email or password", email)
			return
		}

		s.setSessionCookie(w, token, sessionCookieMaxAge)
		redirectSuccess(w, r, RouteHome)
	}
}

// LogoutHandler ends the session if this visitor holds it, then returns to
// the home page
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.manager.EndSession(r.Context(), visitorToken(r))
		s.setSessionCookie(w, "", -1) // Delete cookie
		redirectSuccess(w, r, RouteHome)
	}
}

func validationMessage(err error) string {
	switch err {
	case auth.EmailRequiredErr, auth.PasswordRequiredErr:
		return "Email and password are required"
	case auth.InvalidEmailFormatErr:
		return "Enter a valid email address"
	default:
		return "Invalid email or password"
	}
}

func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func redirectWithErrorAndEmail(w http.ResponseWriter, r *http.Request, path, errorMsg, email string) {
	query := url.Values{}
	query.Set("error", errorMsg)
	if email != "" {
		query.Set("email", email)
	}
	redirectSuccess(w, r, path+"?"+query.Encode())
}
