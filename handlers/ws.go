package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"taskman/models"
	"taskman/shared"
)

// WSHub pushes task-change events to each owner's open connections.
type WSHub struct {
	connections map[int64]map[*websocket.Conn]bool
	mutex       sync.Mutex
}

func NewWSHub() *WSHub {
	return &WSHub{connections: make(map[int64]map[*websocket.Conn]bool)}
}

// BroadcastTaskEvent sends a task event to every connection of the task's owner.
func (hub *WSHub) BroadcastTaskEvent(event string, task *models.Task) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	conns, exists := hub.connections[task.UserID]
	if !exists {
		return
	}

	message, err := json.Marshal(map[string]any{
		"event":   event,
		"task_id": task.ID,
		"title":   task.Title,
		"status":  task.Status,
	})
	if err != nil {
		log.Printf("Failed to marshal task event: %v", err)
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Failed to send WebSocket message: %v", err)
			delete(conns, conn)
			conn.Close()
		}
	}
}

func (hub *WSHub) register(userID int64, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	if hub.connections[userID] == nil {
		hub.connections[userID] = make(map[*websocket.Conn]bool)
	}
	hub.connections[userID][conn] = true
}

func (hub *WSHub) unregister(userID int64, conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.connections[userID], conn)
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		shared.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	clientIP := r.RemoteAddr
	if h.RateLimiter != nil && !h.RateLimiter.Allow(clientIP) {
		shared.SendError(w, "Too many WebSocket connection attempts", http.StatusTooManyRequests)
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // TODO: restrict origins before exposing this publicly
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.Hub.register(user.ID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Hub.unregister(user.ID, conn)
			conn.Close()
			return
		}
	}
}
