package models

import "time"

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusReviewed = "reviewed"
)

// Submission is a user's answer to a task. At most one submission
// exists per (task, user) pair; auto-save upserts on that key.
type Submission struct {
	ID         string    `json:"id,omitempty"`
	TaskID     string    `json:"taskId"`
	UserID     string    `json:"userId"`
	Content    string    `json:"content"`
	Score      *float64  `json:"score,omitempty"`
	Status     string    `json:"status"`
	ReviewedBy string    `json:"reviewedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
