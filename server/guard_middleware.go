package server

import (
	"net/http"

	"github.com/jrsteele09/stitch-smart/guard"
	"github.com/jrsteele09/stitch-smart/users"
)

const (
	// sessionCookieName holds the visitor token the signed-in session is bound to
	sessionCookieName   = "stitchSessionId"
	sessionCookieMaxAge = 30 * 24 * 3600 // 30 days
)

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.env == "PROD", // Only secure in production
		SameSite: http.SameSiteLaxMode,
	})
}

func visitorToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// permissions are the session's permissions if this request carries its
// visitor token, otherwise those of a signed-out visitor
func (s *Server) permissions(r *http.Request) guard.Permissions {
	return s.manager.PermissionsFor(visitorToken(r))
}

func (s *Server) currentUser(r *http.Request) (users.User, bool) {
	return s.manager.SessionFor(visitorToken(r))
}

// RequireRoute is middleware for HTML routes. Visitors the guard turns away
// are redirected with 303 See Other.
func (s *Server) RequireRoute(class guard.RouteClass) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			switch guard.Decide(class, s.permissions(r)) {
			case guard.Allow:
				next(w, r)
			case guard.RedirectHome:
				http.Redirect(w, r, RouteHome, http.StatusSeeOther)
			default:
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			}
		}
	}
}

// RequireAPIRoute is middleware for JSON routes. It answers 401 without a
// session and 403 when the session lacks the role.
func (s *Server) RequireAPIRoute(class guard.RouteClass) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			perms := s.permissions(r)
			if guard.Decide(class, perms) == guard.Allow {
				next(w, r)
				return
			}
			if !perms.IsAuthenticated {
				writeJSONError(w, "unauthorized", "Sign in required", http.StatusUnauthorized)
				return
			}
			writeJSONError(w, "forbidden", "Administrator role required", http.StatusForbidden)
		}
	}
}
