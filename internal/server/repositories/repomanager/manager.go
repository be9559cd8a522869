package repomanager

import (
	"context"
	"database/sql"

	"shelflog/internal/dbx"
	"shelflog/internal/server/repositories/books"
	"shelflog/internal/server/repositories/sessions"
	"shelflog/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Books(db dbx.DBTX) books.Repository
}
