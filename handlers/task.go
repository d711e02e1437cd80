package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"taskman/models"
	"taskman/shared"
)

/*
handles routes:
- GET /tasks?status={status}&search={text} - list the caller's tasks
- POST /tasks - create a new task
*/
func (h *Handler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTasks(w, r)
	case http.MethodPost:
		h.createTask(w, r)
	default:
		shared.SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		shared.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var status *models.TaskStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := models.ParseTaskStatus(raw)
		if err != nil {
			shared.SendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		status = &parsed
	}
	search := r.URL.Query().Get("search")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	tasks, err := h.Tasks.FindAll(ctx, status, search, user)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	shared.SendJSON(w, tasks, http.StatusOK)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	if user == nil {
		shared.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !isJSONContentType(r) {
		shared.SendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	var input struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		shared.SendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		shared.SendError(w, "title is required", http.StatusBadRequest)
		return
	}
	if len(title) > 200 {
		shared.SendError(w, "title too long (max 200 chars)", http.StatusBadRequest)
		return
	}
	description := strings.TrimSpace(input.Description)
	if len(description) > 1000 {
		shared.SendError(w, "description too long (max 1000 chars)", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	task, err := h.Tasks.Create(ctx, title, description, user)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	h.Hub.BroadcastTaskEvent("task_created", task)
	w.Header().Set("Location", "/tasks/"+strconv.FormatInt(task.ID, 10))
	shared.SendJSON(w, task, http.StatusCreated)
}

/*
routes:
- GET /tasks/{id}
- PATCH /tasks/{id}/status
- DELETE /tasks/{id}
*/
func (h *Handler) HandleTaskByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/tasks/")
	if rest == "" {
		shared.SendError(w, "task id is required", http.StatusBadRequest)
		return
	}

	idStr, sub, _ := strings.Cut(rest, "/")
	taskID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		shared.SendError(w, "task id must be an integer", http.StatusBadRequest)
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.getTaskByID(w, r, taskID)
	case sub == "" && r.Method == http.MethodDelete:
		h.deleteTaskByID(w, r, taskID)
	case sub == "status" && (r.Method == http.MethodPatch || r.Method == http.MethodPut):
		h.updateTaskStatus(w, r, taskID)
	case sub != "" && sub != "status":
		shared.SendError(w, "Not found", http.StatusNotFound)
	default:
		shared.SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) getTaskByID(w http.ResponseWriter, r *http.Request, taskID int64) {
	user := userFromContext(r.Context())
	if user == nil {
		shared.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	task, err := h.Tasks.FindOne(ctx, taskID, user)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	shared.SendJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTaskStatus(w http.ResponseWriter, r *http.Request, taskID int64) {
	user := userFromContext(r.Context())
	if user == nil {
		shared.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !isJSONContentType(r) {
		shared.SendError(w, "Content-Type must be application/json", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		shared.SendError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	status, err := models.ParseTaskStatus(input.Status)
	if err != nil {
		shared.SendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	task, err := h.Tasks.UpdateStatus(ctx, taskID, status, user)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	h.Hub.BroadcastTaskEvent("task_updated", task)
	shared.SendJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTaskByID(w http.ResponseWriter, r *http.Request, taskID int64) {
	user := userFromContext(r.Context())
	if user == nil {
		shared.SendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	task, err := h.Tasks.FindOne(ctx, taskID, user)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	if err := h.Tasks.Remove(ctx, taskID, user); err != nil {
		sendServiceError(w, err)
		return
	}

	h.Hub.BroadcastTaskEvent("task_deleted", task)
	w.WriteHeader(http.StatusNoContent)
}
