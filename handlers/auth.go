package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"taskman/shared"
)

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		shared.SendError(w, "Use POST method", http.StatusMethodNotAllowed)
		return
	}

	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		log.Printf("Rate limit exceeded for IP: %s", clientIP)
		shared.SendError(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	input, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := h.Auth.SignUp(r.Context(), input.Username, input.Password)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	log.Printf("User registered: %s", user.Username)
	shared.SendJSON(w, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	}, http.StatusCreated)
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		shared.SendError(w, "Use POST method", http.StatusMethodNotAllowed)
		return
	}

	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		log.Printf("Rate limit exceeded for IP: %s", clientIP)
		shared.SendError(w, "Too many login attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	input, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.Auth.SignIn(r.Context(), input.Username, input.Password)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	shared.SendJSON(w, map[string]any{"access_token": token}, http.StatusOK)
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var input credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		shared.SendError(w, "Bad JSON", http.StatusBadRequest)
		return input, false
	}
	if len(input.Username) < 3 || len(input.Username) > 30 {
		shared.SendError(w, "Username must be 3-30 characters long", http.StatusBadRequest)
		return input, false
	}
	if input.Password == "" {
		shared.SendError(w, "Password is required", http.StatusBadRequest)
		return input, false
	}
	return input, true
}
