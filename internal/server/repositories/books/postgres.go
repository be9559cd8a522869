package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shelflog/internal/common"
	"shelflog/internal/dbx"
	"shelflog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, attrs *models.BookAttrs) (*models.Book, error) {

	query :=
		`INSERT INTO books (user_id, title, author, finish_date, media)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	book := &models.Book{
		UserID:     userID,
		Title:      attrs.Title,
		Author:     attrs.Author,
		FinishDate: attrs.FinishDate,
		Media:      attrs.Media,
	}

	err := r.db.QueryRowContext(ctx, query,
		userID, attrs.Title, attrs.Author, attrs.FinishDate, attrs.Media).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Book, error) {
	query :=
		`SELECT id, user_id, title, author, finish_date, media, created_at, updated_at
		 FROM books
		 WHERE id = $1
		 `

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&book.ID, &book.UserID, &book.Title, &book.Author,
			&book.FinishDate, &book.Media, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, attrs *models.BookAttrs) (*models.Book, error) {
	query :=
		`UPDATE books
		 SET title = $2, author = $3, finish_date = $4, media = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING id, user_id, title, author, finish_date, media, created_at, updated_at
		 `

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query,
		id, attrs.Title, attrs.Author, attrs.FinishDate, attrs.Media).
		Scan(&book.ID, &book.UserID, &book.Title, &book.Author,
			&book.FinishDate, &book.Media, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM books
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

// ListByUser returns the user's books in the order they were recorded.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Book, error) {
	query :=
		`SELECT id, user_id, title, author, finish_date, media, created_at, updated_at
		 FROM books
		 WHERE user_id = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Book
	for rows.Next() {
		book := &models.Book{}
		err := rows.Scan(&book.ID, &book.UserID, &book.Title, &book.Author,
			&book.FinishDate, &book.Media, &book.CreatedAt, &book.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// CountByYear returns per-year totals of finished books, most recent year
// first.
func (r *PostgresRepository) CountByYear(ctx context.Context, userID string) ([]*models.YearCount, error) {
	query :=
		`SELECT extract(year from finish_date)::int AS year, count(*)::int
		 FROM books
		 WHERE user_id = $1
		 GROUP BY year
		 ORDER BY year DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.YearCount
	for rows.Next() {
		yc := &models.YearCount{}
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, yc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
