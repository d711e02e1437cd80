package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"taskman/db"
	"taskman/models"
)

type TaskService struct {
	tasks db.TaskRepositoryInterface
}

func NewTaskService(tasks db.TaskRepositoryInterface) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create persists a new task owned by user; status starts as OPEN.
func (s *TaskService) Create(ctx context.Context, title, description string, user *models.User) (*models.Task, error) {
	task := &models.Task{
		Title:       title,
		Description: description,
		Status:      models.TaskStatusOpen,
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Printf("Failed to create task for user %q (title %q): %v", user.Username, title, err)
		return nil, ErrInternal
	}
	return task, nil
}

// FindOne looks a task up by (id, owner). A task owned by someone else is
// indistinguishable from a nonexistent one.
func (s *TaskService) FindOne(ctx context.Context, id int64, user *models.User) (*models.Task, error) {
	task, err := s.tasks.GetByIDAndOwner(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("task #%d not found: %w", id, ErrNotFound)
		}
		log.Printf("Failed to get task %d for user %q: %v", id, user.Username, err)
		return nil, ErrInternal
	}
	return task, nil
}

// FindAll returns the user's tasks, optionally filtered by status equality
// and a substring search over title or description.
func (s *TaskService) FindAll(ctx context.Context, status *models.TaskStatus, search string, user *models.User) ([]*models.Task, error) {
	tasks, err := s.tasks.ListByOwner(ctx, user.ID, status, search)
	if err != nil {
		statusFilter := ""
		if status != nil {
			statusFilter = string(*status)
		}
		log.Printf("Failed to list tasks for user %q (status=%q, search=%q): %v",
			user.Username, statusFilter, search, err)
		return nil, ErrInternal
	}
	return tasks, nil
}

// UpdateStatus runs the preload/save pattern through the store, scoped to
// the owner.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus, user *models.User) (*models.Task, error) {
	task, err := s.tasks.UpdateStatus(ctx, id, user.ID, status)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("task #%d not found: %w", id, ErrNotFound)
		}
		log.Printf("Failed to update task %d for user %q: %v", id, user.Username, err)
		return nil, ErrInternal
	}
	return task, nil
}

// Remove deletes the task permanently; zero affected rows means the task
// does not exist for this user.
func (s *TaskService) Remove(ctx context.Context, id int64, user *models.User) error {
	affected, err := s.tasks.DeleteByIDAndOwner(ctx, id, user.ID)
	if err != nil {
		log.Printf("Failed to delete task %d for user %q: %v", id, user.Username, err)
		return ErrInternal
	}
	if affected == 0 {
		return fmt.Errorf("task #%d not found: %w", id, ErrNotFound)
	}
	return nil
}
