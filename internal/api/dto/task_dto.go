package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTaskRequest payload for task creation.
type CreateTaskRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       domain.TaskPriority `json:"priority"`
	Tags           []string            `json:"tags"`
	AssignedTo     *string             `json:"assigned_to"`
	TicketID       *string             `json:"ticket_id"`
	Deadline       *time.Time          `json:"deadline"`
	EstimatedHours float64             `json:"estimated_hours"`
}

// UpdateTaskRequest payload for descriptive edits. Absent fields are
// left unchanged.
type UpdateTaskRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Priority       *domain.TaskPriority `json:"priority"`
	Tags           []string             `json:"tags"`
	Deadline       *time.Time           `json:"deadline"`
	EstimatedHours *float64             `json:"estimated_hours"`
}

// AssignTaskRequest payload for assignment.
type AssignTaskRequest struct {
	UserID string `json:"user_id"`
}

// UpdateTaskStatusRequest payload for status changes.
type UpdateTaskStatusRequest struct {
	Status domain.TaskStatus `json:"status"`
}

// TaskResponse is the full task view.
type TaskResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description,omitempty"`
	Status         domain.TaskStatus   `json:"status"`
	Priority       domain.TaskPriority `json:"priority"`
	Tags           []string            `json:"tags,omitempty"`
	CreatedBy      string              `json:"created_by"`
	AssignedTo     *string             `json:"assigned_to,omitempty"`
	TicketID       *string             `json:"ticket_id,omitempty"`
	Deadline       *time.Time          `json:"deadline,omitempty"`
	EstimatedHours float64             `json:"estimated_hours"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
