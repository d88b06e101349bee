package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks. This is the canonical
// vocabulary; records carrying other strings are tolerated by read paths
// but never written.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// ActiveTaskStatuses are the states that count toward a user's workload.
var ActiveTaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusReview,
}

// TaskPriority reuses the ticket urgency vocabulary.
type TaskPriority string

const (
	TaskPriorityUrgent TaskPriority = "urgent"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Task is a unit of work, optionally linked to a ticket.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	Tags        []string

	CreatedBy  string
	AssignedTo *string
	TicketID   *string

	Deadline       *time.Time
	EstimatedHours float64

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
