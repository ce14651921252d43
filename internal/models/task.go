package models

import "time"

const (
	TaskStatusActive    = "active"
	TaskStatusCompleted = "completed"
	TaskStatusArchived  = "archived"
)

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusActive, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

type Task struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DocumentURL string    `json:"documentUrl,omitempty"`
	Status      string    `json:"status"`
	AssignedTo  string    `json:"assignedTo,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
