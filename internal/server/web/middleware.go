package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"shelflog/internal/common"
	"shelflog/internal/server/models"
)

type ctxKey int

const (
	_ ctxKey = iota
	ctxSessionKey
)

// currentSession returns the authenticated session, or nil.
func currentSession(ctx context.Context) *models.Session {
	session, _ := ctx.Value(ctxSessionKey).(*models.Session)
	return session
}

// withSession resolves the session cookie, if any, and stores the session in
// the request context. Requests with a missing or invalid cookie proceed
// unauthenticated.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil {
			session, err := s.sessions.Resolve(r.Context(), cookie.Value)
			if err == nil {
				ctx := context.WithValue(r.Context(), ctxSessionKey, session)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requirePathUser guards the /users/{username} subtree. Anonymous requests
// are redirected to the login page, a username that names nobody is a 404,
// and authenticated requests for another user's pages are rejected.
func (s *Server) requirePathUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := currentSession(r.Context())
		if session == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		username := mux.Vars(r)["username"]
		if _, err := s.users.GetByUsername(r.Context(), username); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			s.internalError(w, r, err)
			return
		}

		if session.Username != username {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionValidity.Seconds()),
		Secure:   s.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
