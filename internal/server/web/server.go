// Package web exposes the application over HTTP: routing, session cookies,
// form handling, and HTML rendering.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"shelflog/internal/logging"
	"shelflog/internal/server/services"
	"shelflog/internal/server/web/view"
)

const sessionCookieName = "shelflog-session"

type Server struct {
	address         string
	logger          logging.Logger
	users           *services.UserService
	sessions        *services.SessionService
	books           *services.BookService
	renderer        *view.Renderer
	router          *mux.Router
	secureCookies   bool
	sessionValidity time.Duration
}

func NewServer(
	address string,
	l logging.Logger,
	us *services.UserService,
	ss *services.SessionService,
	bs *services.BookService,
	secureCookies bool,
	sessionValidity time.Duration,
) (*Server, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		address:         address,
		logger:          l.With("module", "web_server"),
		users:           us,
		sessions:        ss,
		books:           bs,
		renderer:        renderer,
		secureCookies:   secureCookies,
		sessionValidity: sessionValidity,
	}
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.withSession)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	r.HandleFunc("/user_registration/new", s.handleRegistrationForm).Methods(http.MethodGet)
	r.HandleFunc("/user_registration", s.handleRegistrationCreate).Methods(http.MethodPost)

	r.HandleFunc("/login", s.handleLoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login/handle", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)

	u := r.PathPrefix("/users/{username}").Subrouter()
	u.Use(s.requirePathUser)
	u.HandleFunc("", s.handleUserHome).Methods(http.MethodGet)
	u.HandleFunc("/books", s.handleBookIndex).Methods(http.MethodGet)
	u.HandleFunc("/books", s.handleBookCreate).Methods(http.MethodPost)
	u.HandleFunc("/books/new", s.handleBookNew).Methods(http.MethodGet)
	u.HandleFunc("/books.csv", s.handleBookExportCSV).Methods(http.MethodGet)
	u.HandleFunc("/books/import_csv/form", s.handleBookImportCSVForm).Methods(http.MethodGet)
	u.HandleFunc("/books/import_csv", s.handleBookImportCSV).Methods(http.MethodPost)
	u.HandleFunc("/books/{id}", s.handleBookShow).Methods(http.MethodGet)
	u.HandleFunc("/books/{id}", s.handleBookUpdate).Methods(http.MethodPost)
	u.HandleFunc("/books/{id}/edit", s.handleBookEdit).Methods(http.MethodGet)
	u.HandleFunc("/books/{id}/confirm_delete", s.handleBookConfirmDelete).Methods(http.MethodGet)
	u.HandleFunc("/books/{id}/delete", s.handleBookDelete).Methods(http.MethodPost)

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
