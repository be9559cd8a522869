package web

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"shelflog/internal/common"
	"shelflog/internal/dbx"
	"shelflog/internal/logging"
	"shelflog/internal/server/auth"
	"shelflog/internal/server/models"
	booksrepo "shelflog/internal/server/repositories/books"
	sessionsrepo "shelflog/internal/server/repositories/sessions"
	usersrepo "shelflog/internal/server/repositories/users"
	"shelflog/internal/server/services"
)

const testSecret = "test-secret"

// in-memory repositories backing the handler tests

type memUsersRepo struct {
	byUsername map[string]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byUsername: map[string]*models.User{}}
}

func (m *memUsersRepo) Create(ctx context.Context, username string, digest []byte) (*models.User, error) {
	if _, ok := m.byUsername[username]; ok {
		return nil, common.ErrDuplicateUsername
	}
	u := &models.User{
		ID:             "u-" + username,
		Username:       username,
		PasswordDigest: digest,
		CreatedAt:      time.Now(),
	}
	m.byUsername[username] = u
	return u, nil
}

func (m *memUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (m *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type memSessionsRepo struct {
	byID  map[string]*models.Session
	owner *memUsersRepo
}

func newMemSessionsRepo(users *memUsersRepo) *memSessionsRepo {
	return &memSessionsRepo{byID: map[string]*models.Session{}, owner: users}
}

func (m *memSessionsRepo) Create(ctx context.Context, userID string) (*models.Session, error) {
	s := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	m.byID[s.ID] = s
	return s, nil
}

func (m *memSessionsRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u, err := m.owner.GetByID(context.Background(), s.UserID)
	if err != nil {
		return nil, common.ErrNotFound
	}
	out := *s
	out.Username = u.Username
	return &out, nil
}

func (m *memSessionsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memBooksRepo struct {
	byID  map[string]*models.Book
	order []string
}

func newMemBooksRepo() *memBooksRepo {
	return &memBooksRepo{byID: map[string]*models.Book{}}
}

func (m *memBooksRepo) Create(ctx context.Context, userID string, attrs *models.BookAttrs) (*models.Book, error) {
	now := time.Now()
	b := &models.Book{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      attrs.Title,
		Author:     attrs.Author,
		FinishDate: attrs.FinishDate,
		Media:      attrs.Media,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.byID[b.ID] = b
	m.order = append(m.order, b.ID)
	return b, nil
}

func (m *memBooksRepo) Get(ctx context.Context, id string) (*models.Book, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return b, nil
}

func (m *memBooksRepo) Update(ctx context.Context, id string, attrs *models.BookAttrs) (*models.Book, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	b.Title = attrs.Title
	b.Author = attrs.Author
	b.FinishDate = attrs.FinishDate
	b.Media = attrs.Media
	b.UpdatedAt = time.Now()
	return b, nil
}

func (m *memBooksRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrNotFound
	}
	delete(m.byID, id)
	for i, bid := range m.order {
		if bid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memBooksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Book, error) {
	var out []*models.Book
	for _, id := range m.order {
		if b := m.byID[id]; b != nil && b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBooksRepo) CountByYear(ctx context.Context, userID string) ([]*models.YearCount, error) {
	counts := map[int]int{}
	for _, b := range m.byID {
		if b.UserID == userID {
			counts[b.FinishDate.Year()]++
		}
	}
	var years []int
	for y := range counts {
		years = append(years, y)
	}
	// most recent year first
	for i := 0; i < len(years); i++ {
		for j := i + 1; j < len(years); j++ {
			if years[j] > years[i] {
				years[i], years[j] = years[j], years[i]
			}
		}
	}
	var out []*models.YearCount
	for _, y := range years {
		out = append(out, &models.YearCount{Year: y, Count: counts[y]})
	}
	return out, nil
}

type memRepoManager struct {
	u *memUsersRepo
	s *memSessionsRepo
	b *memBooksRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *memRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }
func (m *memRepoManager) Books(db dbx.DBTX) booksrepo.Repository       { return m.b }

type testEnv struct {
	server *Server
	rm     *memRepoManager
	mock   sqlmock.Sqlmock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := newMemUsersRepo()
	rm := &memRepoManager{
		u: users,
		s: newMemSessionsRepo(users),
		b: newMemBooksRepo(),
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us := services.NewUserService(db, rm)
	ss := services.NewSessionService(db, rm, testSecret, time.Hour)
	bs := services.NewBookService(db, rm)

	srv, err := NewServer("127.0.0.1:0", logger, us, ss, bs, false, time.Hour)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	return &testEnv{server: srv, rm: rm, mock: mock}
}

// registerUser creates an account directly and returns a session cookie for
// it.
func (e *testEnv) registerUser(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	digest, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	user, err := e.rm.u.Create(context.Background(), username, digest)
	if err != nil {
		t.Fatalf("Create user error: %v", err)
	}

	session, err := e.rm.s.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Create session error: %v", err)
	}
	token, err := auth.GenerateSessionToken(session.ID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func (e *testEnv) do(t *testing.T, method, path string, form string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != "" {
		body = strings.NewReader(form)
	}
	req := httptest.NewRequest(method, path, body)
	if form != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}
