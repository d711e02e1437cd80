package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the username across requests; the jti claim makes
// each issued token identifiable in diagnostic logs.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// GenerateToken issues a signed, time-bounded token embedding the username.
func GenerateToken(username string, secret []byte, lifetime time.Duration) (string, string, error) {
	now := time.Now()
	tokenID := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		Username: username,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", "", fmt.Errorf("error signing token: %w", err)
	}
	return signed, tokenID, nil
}

// ParseToken checks signature and expiry and returns the embedded username.
func ParseToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}
