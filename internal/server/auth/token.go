package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shelflog/internal/common"
)

// Claims is the JWT payload carried by session cookies. SessionID refers to
// a row in user_sessions; the row is the source of truth, so deleting it
// invalidates the token before it expires.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// GenerateSessionToken signs a token for the given session ID, valid for the
// given duration.
func GenerateSessionToken(sessionID string, secretKey string, validity time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// GetSessionIDFromToken validates the token signature and expiry and returns
// the embedded session ID. Returns common.ErrInvalidToken for any token that
// fails validation.
func GetSessionIDFromToken(tokenString string, secretKey string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.SessionID, nil
}
