package books

import (
	"context"

	"shelflog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, attrs *models.BookAttrs) (*models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
	Update(ctx context.Context, id string, attrs *models.BookAttrs) (*models.Book, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Book, error)
	CountByYear(ctx context.Context, userID string) ([]*models.YearCount, error)
}
