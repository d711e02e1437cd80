package models

import (
	"fmt"
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// ParseTaskStatus converts user input to a TaskStatus.
// Input is case-insensitive; anything outside the enum is rejected.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case TaskStatusOpen:
		return TaskStatusOpen, nil
	case TaskStatusInProgress:
		return TaskStatusInProgress, nil
	case TaskStatusDone:
		return TaskStatusDone, nil
	default:
		return "", fmt.Errorf("%q is an invalid status", s)
	}
}

type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      int64      `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}
