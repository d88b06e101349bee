package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusAssigned   TicketStatus = "assigned"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ActiveTicketStatuses are the states that count toward a user's workload.
var ActiveTicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusAssigned,
	TicketStatusInProgress,
}

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityUrgent TicketPriority = "urgent"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityLow    TicketPriority = "low"
)

// TicketCategory classifies the nature of a request.
type TicketCategory string

const (
	TicketCategoryBug           TicketCategory = "bug"
	TicketCategoryFeature       TicketCategory = "feature"
	TicketCategorySupport       TicketCategory = "support"
	TicketCategoryIncident      TicketCategory = "incident"
	TicketCategoryChangeRequest TicketCategory = "change_request"
	TicketCategoryOther         TicketCategory = "other"
)

// Reporter holds contact details for the person who raised the ticket.
// Reporters are not necessarily users of the system.
type Reporter struct {
	Name  string
	Email string
	Phone string
}

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          string
	Number      string
	Subject     string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	Category    TicketCategory
	Tags        []string
	Reporter    Reporter

	AssignedTo *string
	AssignedBy *string
	AssignedAt *time.Time

	ResolvedBy      *string
	ResolvedAt      *time.Time
	ResolutionNotes string

	// SLA timing. DueDate is the deadline the SLA state is derived from;
	// EstimatedResolutionTime and ActualResolutionTime are in hours.
	DueDate                 *time.Time
	EstimatedResolutionTime *float64
	ActualResolutionTime    *float64

	IsDeleted bool
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
