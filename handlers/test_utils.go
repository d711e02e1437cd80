package handlers

import (
	"context"
	"net/http"
	"time"

	"taskman/models"
	"taskman/services"
)

var testSecret = []byte("super_secret_key_for_tests_0123456789")

// newTestHandler wires a Handler over in-memory mock repositories.
func newTestHandler() (*Handler, *services.MockUserRepository, *services.MockTaskRepository) {
	users := services.NewMockUserRepository()
	tasks := services.NewMockTaskRepository()
	h := &Handler{
		Users:     users,
		Auth:      services.NewAuthService(users, testSecret, time.Hour),
		Tasks:     services.NewTaskService(tasks),
		Hub:       NewWSHub(),
		JWTSecret: testSecret,
	}
	return h, users, tasks
}

// withUser attaches an authenticated user to the request context, the way
// AuthMiddleware does.
func withUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}
