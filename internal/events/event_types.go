package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers. The values double as
// the pub/sub channel names for the real-time fan-out.
type EventType string

const (
	EventTicketCreated       EventType = "ticket:created"
	EventTicketAssigned      EventType = "ticket:assigned"
	EventTicketStatusChanged EventType = "ticket:status_changed"
	EventTicketResolved      EventType = "ticket:resolved"
	EventTicketDeleted       EventType = "ticket:deleted"
	EventTaskCreated         EventType = "task:created"
	EventTaskAssigned        EventType = "task:assigned"
	EventTaskStatusChanged   EventType = "task:status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID      string                `json:"ticket_id"`
	Number        string                `json:"number"`
	Subject       string                `json:"subject"`
	Priority      domain.TicketPriority `json:"priority"`
	Status        domain.TicketStatus   `json:"status"`
	ReporterEmail string                `json:"reporter_email,omitempty"`
	AssignedTo    *string               `json:"assigned_to,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	TicketID   string                `json:"ticket_id"`
	Number     string                `json:"number"`
	Subject    string                `json:"subject"`
	Priority   domain.TicketPriority `json:"priority"`
	AssignedTo string                `json:"assigned_to"`
	AssignedBy string                `json:"assigned_by"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	Number    string              `json:"number"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketResolvedPayload payload.
type TicketResolvedPayload struct {
	TicketID        string  `json:"ticket_id"`
	Number          string  `json:"number"`
	ResolvedBy      string  `json:"resolved_by"`
	ResolutionHours float64 `json:"resolution_hours"`
	ResolutionNotes string  `json:"resolution_notes,omitempty"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	TicketID  string  `json:"ticket_id"`
	Number    string  `json:"number"`
	DeletedBy *string `json:"deleted_by,omitempty"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID     string              `json:"task_id"`
	Title      string              `json:"title"`
	Priority   domain.TaskPriority `json:"priority"`
	TicketID   *string             `json:"ticket_id,omitempty"`
	AssignedTo *string             `json:"assigned_to,omitempty"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	TaskID     string `json:"task_id"`
	Title      string `json:"title"`
	AssignedTo string `json:"assigned_to"`
	AssignedBy string `json:"assigned_by"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	TaskID    string            `json:"task_id"`
	Title     string            `json:"title"`
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}
