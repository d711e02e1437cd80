package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"taskman/models"
)

// defines methods for task db operations; every lookup and mutation is
// scoped to the owning user
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Task, error)
	UpdateStatus(ctx context.Context, id, userID int64, status models.TaskStatus) (*models.Task, error)
	DeleteByIDAndOwner(ctx context.Context, id, userID int64) (int64, error)
	ListByOwner(ctx context.Context, userID int64, status *models.TaskStatus, search string) ([]*models.Task, error)
}

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (title, description, status, user_id, created_at)
	 VALUES ($1, $2, $3, $4, $5) RETURNING id`

	return r.db.QueryRowContext(
		ctx, query, task.Title, task.Description, task.Status, task.UserID, task.CreatedAt,
	).Scan(&task.ID)
}

func (r *TaskRepository) GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Task, error) {
	query := `SELECT id, title, description, status, user_id, created_at
	 FROM tasks WHERE id = $1 AND user_id = $2`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.UserID, &task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

// UpdateStatus loads the task, overlays the new status and persists the
// merged row. The preload is owner-scoped, so another user's task behaves
// exactly like a missing one.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id, userID int64, status models.TaskStatus) (*models.Task, error) {
	task, err := r.GetByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	query := `UPDATE tasks SET status = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, task.Status, task.ID); err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) DeleteByIDAndOwner(ctx context.Context, id, userID int64) (int64, error) {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListByOwner builds a conjunctive filter: owner equality always, status
// equality when given, and a case-insensitive substring match over title
// OR description when search is non-empty.
func (r *TaskRepository) ListByOwner(ctx context.Context, userID int64, status *models.TaskStatus, search string) ([]*models.Task, error) {
	var (
		conditions = []string{"user_id = $1"}
		args       = []any{userID}
	)
	if status != nil {
		args = append(args, *status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if search != "" {
		args = append(args, "%"+strings.ToLower(search)+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)", n, n))
	}

	query := `SELECT id, title, description, status, user_id, created_at FROM tasks WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.Title, &task.Description, &task.Status, &task.UserID, &task.CreatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
