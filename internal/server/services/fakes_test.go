package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"shelflog/internal/dbx"
	"shelflog/internal/server/models"
	booksrepo "shelflog/internal/server/repositories/books"
	sessionsrepo "shelflog/internal/server/repositories/sessions"
	usersrepo "shelflog/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, username string, digest []byte) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeSessionsRepo struct {
	createOut *models.Session
	createErr error

	getOut *models.Session
	getErr error

	delErr    error
	deletedID string
}

func (f *fakeSessionsRepo) Create(ctx context.Context, userID string) (*models.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}
func (f *fakeSessionsRepo) Get(ctx context.Context, id string) (*models.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.delErr
}

type fakeBooksRepo struct {
	createOut *models.Book
	createErr error
	createdIn []*models.BookAttrs
	getOut    *models.Book
	getErr    error
	updateOut *models.Book
	updateErr error
	delErr    error
	deletedID string
	listOut   []*models.Book
	listErr   error
	countsOut []*models.YearCount
	countsErr error
}

func (f *fakeBooksRepo) Create(ctx context.Context, userID string, attrs *models.BookAttrs) (*models.Book, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdIn = append(f.createdIn, attrs)
	return f.createOut, nil
}
func (f *fakeBooksRepo) Get(ctx context.Context, id string) (*models.Book, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeBooksRepo) Update(ctx context.Context, id string, attrs *models.BookAttrs) (*models.Book, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}
func (f *fakeBooksRepo) Delete(ctx context.Context, id string) error {
	f.deletedID = id
	return f.delErr
}
func (f *fakeBooksRepo) ListByUser(ctx context.Context, userID string) ([]*models.Book, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}
func (f *fakeBooksRepo) CountByYear(ctx context.Context, userID string) ([]*models.YearCount, error) {
	if f.countsErr != nil {
		return nil, f.countsErr
	}
	return f.countsOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
	b *fakeBooksRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }
func (m *fakeRepoManager) Books(db dbx.DBTX) booksrepo.Repository       { return m.b }
