package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"shelflog/internal/common"
	"shelflog/internal/dbx"
	"shelflog/internal/server/models"
	"shelflog/internal/server/repositories/repomanager"
	"shelflog/internal/validatex"
)

const csvDateFormat = "2006-01-02"

// BookService manages a user's reading log. Every operation that names an
// existing book verifies that it belongs to the acting user; a mismatch
// yields common.ErrForbidden.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager) *BookService {
	return &BookService{db: db, repomanager: m}
}

// validateAttrs runs the tag validations plus the checks tags cannot express.
func validateAttrs(attrs *models.BookAttrs) validatex.FieldErrors {
	ferrs := validatex.Struct(attrs)
	if !attrs.FinishDate.IsZero() && attrs.FinishDate.After(time.Now()) {
		if ferrs == nil {
			ferrs = validatex.FieldErrors{}
		}
		ferrs.Add("finishDate", "cannot be in the future")
	}
	return ferrs
}

// Create validates attrs and records a new book for the user.
func (s *BookService) Create(ctx context.Context, userID string, attrs *models.BookAttrs) (*models.Book, error) {
	if ferrs := validateAttrs(attrs); ferrs != nil {
		return nil, ferrs
	}

	repo := s.repomanager.Books(s.db)
	book, err := repo.Create(ctx, userID, attrs)
	if err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	return book, nil
}

// Get returns the book if it exists and belongs to the user.
func (s *BookService) Get(ctx context.Context, userID, bookID string) (*models.Book, error) {
	repo := s.repomanager.Books(s.db)

	book, err := repo.Get(ctx, bookID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	if book.UserID != userID {
		return nil, common.ErrForbidden
	}

	return book, nil
}

// Update validates attrs and rewrites the book's editable fields. The book
// must belong to the user.
func (s *BookService) Update(ctx context.Context, userID, bookID string, attrs *models.BookAttrs) (*models.Book, error) {
	if _, err := s.Get(ctx, userID, bookID); err != nil {
		return nil, err
	}

	if ferrs := validateAttrs(attrs); ferrs != nil {
		return nil, ferrs
	}

	repo := s.repomanager.Books(s.db)
	book, err := repo.Update(ctx, bookID, attrs)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error updating book: %w", err)
	}

	return book, nil
}

// Delete removes the book. The book must belong to the user.
func (s *BookService) Delete(ctx context.Context, userID, bookID string) error {
	if _, err := s.Get(ctx, userID, bookID); err != nil {
		return err
	}

	repo := s.repomanager.Books(s.db)
	if err := repo.Delete(ctx, bookID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("error deleting book: %w", err)
	}

	return nil
}

// List returns the user's books in the order they were recorded.
func (s *BookService) List(ctx context.Context, userID string) ([]*models.Book, error) {
	repo := s.repomanager.Books(s.db)

	books, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}

	return books, nil
}

// Stats returns per-year totals of finished books, most recent year first.
func (s *BookService) Stats(ctx context.Context, userID string) ([]*models.YearCount, error) {
	repo := s.repomanager.Books(s.db)

	counts, err := repo.CountByYear(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting books: %w", err)
	}

	return counts, nil
}

// ImportCSV reads books from r and inserts them for the user inside a single
// transaction: either every row is imported or none are. The expected format
// is a header row followed by title,author,finish_date,media records. It
// returns the number of books imported.
func (s *BookService) ImportCSV(ctx context.Context, userID string, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("error parsing CSV: %w", err)
	}
	if len(records) < 2 {
		return 0, errors.New("CSV must have at least 2 rows")
	}

	attrs := make([]*models.BookAttrs, 0, len(records)-1)
	for i, record := range records[1:] {
		rowNum := i + 2
		if len(record) < 4 {
			return 0, fmt.Errorf("row %d: expected at least 4 columns, got %d", rowNum, len(record))
		}

		finishDate, err := time.Parse(csvDateFormat, strings.TrimSpace(record[2]))
		if err != nil {
			return 0, fmt.Errorf("row %d: invalid finish date %q", rowNum, record[2])
		}

		a := &models.BookAttrs{
			Title:      strings.TrimSpace(record[0]),
			Author:     strings.TrimSpace(record[1]),
			FinishDate: finishDate,
			Media:      strings.TrimSpace(record[3]),
		}
		if ferrs := validateAttrs(a); ferrs != nil {
			return 0, fmt.Errorf("row %d: %w", rowNum, ferrs)
		}

		attrs = append(attrs, a)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Books(tx)
		for i, a := range attrs {
			if _, err := repo.Create(ctx, userID, a); err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(attrs), nil
}

// ExportCSV writes the user's books to w as title,author,finish_date,media
// records, header row included, in the same order as List.
func (s *BookService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	books, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"title", "author", "finish_date", "media"}); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	for _, b := range books {
		record := []string{b.Title, b.Author, b.FinishDate.Format(csvDateFormat), b.Media}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing CSV: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}

	return nil
}
