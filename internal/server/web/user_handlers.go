package web

import (
	"errors"
	"net/http"

	"shelflog/internal/common"
	"shelflog/internal/server/services"
	"shelflog/internal/validatex"
)

func (s *Server) handleRegistrationForm(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)
	data.Form = CredentialsForm{}
	s.render(w, r, "user_registration.html", data)
}

func (s *Server) handleRegistrationCreate(w http.ResponseWriter, r *http.Request) {
	form := parseCredentialsForm(r)

	user, err := s.users.Register(r.Context(), services.Credentials{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		data := s.newPageData(r)
		data.Form = CredentialsForm{Username: form.Username}

		var ferrs validatex.FieldErrors
		switch {
		case errors.As(err, &ferrs):
			data.Errors = ferrs
		case errors.Is(err, common.ErrDuplicateUsername):
			data.Errors = validatex.FieldErrors{}
			data.Errors.Add("username", "is already taken")
		default:
			s.internalError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, r, "user_registration.html", data)
		return
	}

	// registration logs the user in
	token, err := s.sessions.Open(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.setSessionCookie(w, token)

	http.Redirect(w, r, "/users/"+user.Username+"/books", http.StatusSeeOther)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData(r)
	data.Form = CredentialsForm{}
	s.render(w, r, "login.html", data)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := parseCredentialsForm(r)

	user, err := s.users.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			data := s.newPageData(r)
			data.Form = CredentialsForm{Username: form.Username}
			data.Errors = validatex.FieldErrors{}
			data.Errors.Add("base", "incorrect username or password")

			w.WriteHeader(http.StatusUnprocessableEntity)
			s.render(w, r, "login.html", data)
			return
		}
		s.internalError(w, r, err)
		return
	}

	token, err := s.sessions.Open(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	s.setSessionCookie(w, token)

	http.Redirect(w, r, "/users/"+user.Username+"/books", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := s.sessions.Close(r.Context(), cookie.Value); err != nil {
			s.internalError(w, r, err)
			return
		}
	}

	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleUserHome(w http.ResponseWriter, r *http.Request) {
	session := currentSession(r.Context())

	counts, err := s.books.Stats(r.Context(), session.UserID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	data := s.newPageData(r)
	data.Username = session.Username
	data.YearCounts = counts
	s.render(w, r, "user_home.html", data)
}
