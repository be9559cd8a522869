package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shelflog/internal/common"
	"shelflog/internal/server/auth"
	"shelflog/internal/server/models"
	"shelflog/internal/server/repositories/repomanager"
)

// SessionService issues and resolves login sessions. A session is a row in
// user_sessions referenced by a signed token; the row decides validity, the
// token only names it.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secretKey   string
	validity    time.Duration
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, secretKey string, validity time.Duration) *SessionService {
	return &SessionService{db: db, repomanager: m, secretKey: secretKey, validity: validity}
}

// Open creates a session row for the user and returns the signed token that
// names it.
func (s *SessionService) Open(ctx context.Context, userID string) (string, error) {
	repo := s.repomanager.Sessions(s.db)

	session, err := repo.Create(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateSessionToken(session.ID, s.secretKey, s.validity)
	if err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}

	return token, nil
}

// Resolve validates the token and loads the session it names. A valid token
// whose row has been deleted resolves to common.ErrInvalidToken, so logout
// works even before the token expires.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	sessionID, err := auth.GetSessionIDFromToken(token, s.secretKey)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	repo := s.repomanager.Sessions(s.db)
	session, err := repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrInternal
	}

	return session, nil
}

// Close deletes the session row named by the token. Closing an already
// invalid session is not an error.
func (s *SessionService) Close(ctx context.Context, token string) error {
	sessionID, err := auth.GetSessionIDFromToken(token, s.secretKey)
	if err != nil {
		return nil
	}

	repo := s.repomanager.Sessions(s.db)
	if err := repo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}
