package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskman/db"
	"taskman/models"
)

type MockUserRepository struct {
	users     map[string]*models.User
	nextID    int64
	createErr error
	getErr    error
	mutex     sync.Mutex
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*models.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.users[user.Username]; exists {
		return fmt.Errorf("user %q: %w", user.Username, db.ErrDuplicate)
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	user, exists := m.users[username]
	if !exists {
		return nil, fmt.Errorf("user %q: %w", username, db.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

type MockTaskRepository struct {
	tasks     map[int64]*models.Task
	nextID    int64
	createErr error
	listErr   error
	mutex     sync.Mutex
}

func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{tasks: make(map[int64]*models.Task)}
}

func (m *MockTaskRepository) Create(ctx context.Context, task *models.Task) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	task.ID = m.nextID
	stored := *task
	m.tasks[task.ID] = &stored
	return nil
}

func (m *MockTaskRepository) GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Task, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.getLocked(id, userID)
}

func (m *MockTaskRepository) getLocked(id, userID int64) (*models.Task, error) {
	task, exists := m.tasks[id]
	if !exists || task.UserID != userID {
		return nil, fmt.Errorf("task %d: %w", id, db.ErrNotFound)
	}
	clone := *task
	return &clone, nil
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id, userID int64, status models.TaskStatus) (*models.Task, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, err := m.getLocked(id, userID); err != nil {
		return nil, err
	}
	m.tasks[id].Status = status
	clone := *m.tasks[id]
	return &clone, nil
}

func (m *MockTaskRepository) DeleteByIDAndOwner(ctx context.Context, id, userID int64) (int64, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	task, exists := m.tasks[id]
	if !exists || task.UserID != userID {
		return 0, nil
	}
	delete(m.tasks, id)
	return 1, nil
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, userID int64, status *models.TaskStatus, search string) ([]*models.Task, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	var tasks []*models.Task
	for _, task := range m.tasks {
		if task.UserID != userID {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(task.Title), needle) &&
				!strings.Contains(strings.ToLower(task.Description), needle) {
				continue
			}
		}
		clone := *task
		tasks = append(tasks, &clone)
	}
	return tasks, nil
}
