package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"taskman/auth"
	"taskman/models"
	"taskman/shared"
)

type contextKey string

const userContextKey contextKey = "user"

/*
Verify the bearer token, resolve the full user record by the embedded
username and attach it to the request context. Task handlers trust only
this resolved user for ownership scoping.
*/
func (h *Handler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.SendError(w, "Missing Authorization header", http.StatusUnauthorized)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := auth.ParseToken(tokenString, h.JWTSecret)
		if err != nil {
			shared.SendError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, err := h.Users.GetByUsername(r.Context(), username)
		if err != nil {
			log.Printf("Failed to resolve token user %q: %v", username, err)
			shared.SendError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// userFromContext returns the user resolved by AuthMiddleware.
func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
