package domain

import (
	"strings"
	"time"
)

// Priority represents an optional client-side task priority.
// The backend is not guaranteed to persist it.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid checks if the priority is one of the known values.
// The empty priority is valid because the field is optional.
func (p Priority) IsValid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents a task owned by the signed-in user.
// The backend owns the record; the client caches it.
type Task struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != ""
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// Matches reports whether the task matches a case-insensitive substring
// search over title and description. An empty term matches everything.
func (t Task) Matches(term string) bool {
	if term == "" {
		return true
	}
	lowered := strings.ToLower(term)
	if strings.Contains(strings.ToLower(t.Title), lowered) {
		return true
	}
	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), lowered)
}

// TaskCreate holds the fields a client may set when creating a task.
type TaskCreate struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// TaskUpdate holds a partial update. Nil fields are left unchanged
// and are omitted from the request body.
type TaskUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}
