package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskman/models"
)

func TestUserRepository_Create_Get(t *testing.T) {
	conn := setupDB(t)
	repo := NewUserRepository(conn)

	user := &models.User{
		Username:  "alice",
		Password:  "hashed-password",
		Salt:      "salty",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("UserRepository.Create: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected generated id to be filled in")
	}

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("UserRepository.GetByUsername: %v", err)
	}
	if got.ID != user.ID || got.Username != "alice" || got.Password != "hashed-password" || got.Salt != "salty" {
		t.Errorf("GetByUsername mismatch: %#v", got)
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	conn := setupDB(t)
	repo := NewUserRepository(conn)

	first := &models.User{Username: "alice", Password: "h1", Salt: "s1", CreatedAt: time.Now().UTC()}
	if err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	second := &models.User{Username: "alice", Password: "h2", Salt: "s2", CreatedAt: time.Now().UTC()}
	err := repo.Create(context.Background(), second)
	if err == nil {
		t.Fatal("expected error for duplicate username, got nil")
	}
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	conn := setupDB(t)
	repo := NewUserRepository(conn)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	if err == nil {
		t.Fatal("expected error for unknown username, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
