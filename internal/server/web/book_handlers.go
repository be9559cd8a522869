package web

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// bookIDParam extracts the {id} path variable. Book IDs are UUIDs, so a
// malformed value cannot name an existing book; rejecting it here also keeps
// garbage out of the uuid-typed query parameter.
func bookIDParam(r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func (s *Server) handleBookIndex(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())

	books, err := s.books.List(r.Context(), session.UserID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Username = session.Username
	data.Books = books
	s.render(w, r, "book_index.html", data)
}

func (s *Server) handleBookNew(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())

	data := s.newPageData(r)
	data.Username = session.Username
	data.Form = BookForm{Media: "book"}
	s.render(w, r, "book_new.html", data)
}

func (s *Server) handleBookCreate(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())
	form := parseBookForm(r)

	attrs, ferrs := form.Attrs()
	if ferrs == nil {
		_, err := s.books.Create(r.Context(), session.UserID, attrs)
		if err != nil && !errors.As(err, &ferrs) {
			s.internalError(w, r, err)
			return
		}
		if err == nil {
			http.Redirect(w, r, "/users/"+session.Username+"/books", http.StatusSeeOther)
			return
		}
	}

	data := s.newPageData(r)
	data.Username = session.Username
	data.Form = form
	data.Errors = ferrs
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.render(w, r, "book_new.html", data)
}

func (s *Server) handleBookShow(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())
	bookID, ok := bookIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	book, err := s.books.Get(r.Context(), session.UserID, bookID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Username = session.Username
	data.Book = book
	s.render(w, r, "book_show.html", data)
}

func (s *Server) handleBookEdit(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())
	bookID, ok := bookIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	book, err := s.books.Get(r.Context(), session.UserID, bookID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Username = session.Username
	data.BookID = book.ID
	data.Form = bookFormFromModel(book)
	s.render(w, r, "book_edit.html", data)
}

func (s *Server) handleBookUpdate(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())
	bookID, ok := bookIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	form := parseBookForm(r)

	attrs, ferrs := form.Attrs()
	if ferrs == nil {
		_, err := s.books.Update(r.Context(), session.UserID, bookID, attrs)
		if err != nil && !errors.As(err, &ferrs) {
			s.serviceError(w, r, err)
			return
		}
		if err == nil {
			http.Redirect(w, r, "/users/"+session.Username+"/books/"+bookID, http.StatusSeeOther)
			return
		}
	}

	data := s.newPageData(r)
	data.Username = session.Username
	data.BookID = bookID
	data.Form = form
	data.Errors = ferrs
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.render(w, r, "book_edit.html", data)
}

func (s *Server) handleBookConfirmDelete(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())
	bookID, ok := bookIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	book, err := s.books.Get(r.Context(), session.UserID, bookID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Username = session.Username
	data.Book = book
	s.render(w, r, "book_confirm_delete.html", data)
}

func (s *Server) handleBookDelete(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())
	bookID, ok := bookIDParam(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.books.Delete(r.Context(), session.UserID, bookID); err != nil {
		s.serviceError(w, r, err)
		return
	}

	http.Redirect(w, r, "/users/"+session.Username+"/books", http.StatusSeeOther)
}
