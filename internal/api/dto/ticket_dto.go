package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ReporterPayload mirrors the reporter contact block.
type ReporterPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CreateTicketRequest payload for ticket creation.
type CreateTicketRequest struct {
	Subject                 string                `json:"subject"`
	Description             string                `json:"description"`
	Priority                domain.TicketPriority `json:"priority"`
	Category                domain.TicketCategory `json:"category"`
	Tags                    []string              `json:"tags"`
	Reporter                ReporterPayload       `json:"reporter"`
	AssignedTo              *string               `json:"assigned_to"`
	DueDate                 *time.Time            `json:"due_date"`
	EstimatedResolutionTime *float64              `json:"estimated_resolution_time"`
}

// UpdateTicketRequest payload for descriptive edits. Absent fields are
// left unchanged.
type UpdateTicketRequest struct {
	Subject     *string                `json:"subject"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	Category    *domain.TicketCategory `json:"category"`
	Tags        []string               `json:"tags"`
	DueDate     *time.Time             `json:"due_date"`
}

// AssignTicketRequest payload for assignment.
type AssignTicketRequest struct {
	UserID string `json:"user_id"`
}

// UpdateTicketStatusRequest payload for status changes.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// ResolveTicketRequest payload for resolution.
type ResolveTicketRequest struct {
	Notes string `json:"notes"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID                      string                `json:"id"`
	Number                  string                `json:"number"`
	Subject                 string                `json:"subject"`
	Description             string                `json:"description,omitempty"`
	Status                  domain.TicketStatus   `json:"status"`
	Priority                domain.TicketPriority `json:"priority"`
	Category                domain.TicketCategory `json:"category"`
	Tags                    []string              `json:"tags,omitempty"`
	Reporter                ReporterPayload       `json:"reporter"`
	AssignedTo              *string               `json:"assigned_to,omitempty"`
	AssignedBy              *string               `json:"assigned_by,omitempty"`
	AssignedAt              *time.Time            `json:"assigned_at,omitempty"`
	ResolvedBy              *string               `json:"resolved_by,omitempty"`
	ResolvedAt              *time.Time            `json:"resolved_at,omitempty"`
	ResolutionNotes         string                `json:"resolution_notes,omitempty"`
	DueDate                 *time.Time            `json:"due_date,omitempty"`
	EstimatedResolutionTime *float64              `json:"estimated_resolution_time,omitempty"`
	ActualResolutionTime    *float64              `json:"actual_resolution_time,omitempty"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
}
