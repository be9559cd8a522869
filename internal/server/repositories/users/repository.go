package users

import (
	"context"

	"shelflog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, username string, passwordDigest []byte) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
