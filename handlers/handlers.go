package handlers

import (
	"errors"
	"mime"
	"net/http"
	"sync"
	"time"

	"taskman/db"
	"taskman/services"
	"taskman/shared"
)

type Handler struct {
	Users       db.UserRepositoryInterface
	Auth        *services.AuthService
	Tasks       *services.TaskService
	RateLimiter *RateLimiter
	Hub         *WSHub
	JWTSecret   []byte
}

// sendServiceError maps a service error kind to a status with a stable,
// non-leaking message.
func sendServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrConflict):
		shared.SendError(w, "Username already exists", http.StatusConflict)
	case errors.Is(err, services.ErrUnauthorized):
		shared.SendError(w, "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, services.ErrNotFound):
		shared.SendError(w, "Task not found", http.StatusNotFound)
	case errors.Is(err, services.ErrBadRequest):
		shared.SendError(w, "Invalid request", http.StatusBadRequest)
	default:
		shared.SendError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func isJSONContentType(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

type RateLimiter struct {
	attempts map[string]int
	limit    int
	mutex    sync.Mutex
	window   time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts: make(map[string]int),
		limit:    limit,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	count, exists := rl.attempts[ip]
	if !exists {
		rl.attempts[ip] = 1
		return true
	}
	if count >= rl.limit {
		return false
	}
	rl.attempts[ip]++
	return true
}

// reset the attempts map every window duration
func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(rl.window)
		rl.mutex.Lock()
		rl.attempts = make(map[string]int)
		rl.mutex.Unlock()
	}
}
