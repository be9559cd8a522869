package sessions

import (
	"context"

	"shelflog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string) (*models.Session, error)
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}
