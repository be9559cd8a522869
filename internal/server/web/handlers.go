package web

import (
	"errors"
	"net/http"

	"shelflog/internal/common"
	"shelflog/internal/server/models"
	"shelflog/internal/validatex"
)

// pageData is the value every template renders against. Unused fields stay
// zero.
type pageData struct {
	Session    *models.Session
	Username   string
	Form       any
	Errors     validatex.FieldErrors
	Books      []*models.Book
	Book       *models.Book
	BookID     string
	YearCounts []*models.YearCount
}

func (s *Server) newPageData(r *http.Request) pageData {
	return pageData{Session: currentSession(r.Context())}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, name, data); err != nil {
		s.logger.Error(r.Context(), "render error", "template", name, "error", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// serviceError translates service-layer errors into HTTP responses.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, common.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		s.internalError(w, r, err)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())
	if session == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users/"+session.Username+"/books", http.StatusSeeOther)
}
