package web

import (
	"fmt"
	"net/http"

	"shelflog/internal/validatex"
)

// uploads larger than this are rejected outright
const maxImportSize = 10 << 20

func (s *Server) handleBookImportCSVForm(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())

	data := s.newPageData(r)
	data.Username = session.Username
	s.render(w, r, "book_import_csv_form.html", data)
}

func (s *Server) handleBookImportCSV(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		s.renderImportError(w, r, session.Username, "file is required")
		return
	}
	defer file.Close()

	if _, err := s.books.ImportCSV(r.Context(), session.UserID, file); err != nil {
		s.renderImportError(w, r, session.Username, err.Error())
		return
	}

	http.Redirect(w, r, "/users/"+session.Username+"/books", http.StatusSeeOther)
}

func (s *Server) renderImportError(w http.ResponseWriter, r *http.Request, username, msg string) {
	data := s.newPageData(r)
	data.Username = username
	data.Errors = validatex.FieldErrors{}
	data.Errors.Add("base", msg)
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.render(w, r, "book_import_csv_form.html", data)
}

func (s *Server) handleBookExportCSV(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-books.csv", session.Username))

	if err := s.books.ExportCSV(r.Context(), session.UserID, w); err != nil {
		s.logger.Error(r.Context(), "CSV export error", "error", err)
	}
}
