package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"taskman/auth"
	"taskman/db"
	"taskman/models"
)

type AuthService struct {
	users         db.UserRepositoryInterface
	jwtSecret     []byte
	tokenLifetime time.Duration
}

func NewAuthService(users db.UserRepositoryInterface, jwtSecret []byte, tokenLifetime time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		tokenLifetime: tokenLifetime,
	}
}

// SignUp hashes the password with a fresh salt and persists the user.
// The returned user carries identity only; hash and salt are blanked.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (*models.User, error) {
	salt, err := auth.GenerateSalt()
	if err != nil {
		log.Printf("Failed to generate salt for user %q: %v", username, err)
		return nil, ErrInternal
	}

	user := &models.User{
		Username:  username,
		Password:  auth.HashPassword(password, salt),
		Salt:      salt,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, fmt.Errorf("username already exists: %w", ErrConflict)
		}
		log.Printf("Failed to create user %q: %v", username, err)
		return nil, ErrInternal
	}

	user.Password = ""
	user.Salt = ""
	return user, nil
}

// SignIn verifies the credentials and issues an access token. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		log.Printf("Failed to look up user %q: %v", username, err)
		return "", ErrInternal
	}

	if !auth.VerifyPassword(password, user.Salt, user.Password) {
		return "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	token, tokenID, err := auth.GenerateToken(user.Username, s.jwtSecret, s.tokenLifetime)
	if err != nil {
		log.Printf("Failed to generate token for user %q: %v", username, err)
		return "", ErrInternal
	}

	log.Printf("Issued token %s for user %q", tokenID, user.Username)
	return token, nil
}
