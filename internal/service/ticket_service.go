package service

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/workload"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// slaHoursByPriority is the default resolution window applied when a ticket
// arrives without a due date or estimate.
var slaHoursByPriority = map[domain.TicketPriority]float64{
	domain.TicketPriorityUrgent: 4,
	domain.TicketPriorityHigh:   24,
	domain.TicketPriorityMedium: 72,
	domain.TicketPriorityLow:    168,
}

var allowedTicketTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusAssigned, domain.TicketStatusClosed},
	domain.TicketStatusAssigned:   {domain.TicketStatusInProgress, domain.TicketStatusOpen},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusAssigned},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed, domain.TicketStatusInProgress},
	// closed tickets can be reopened
	domain.TicketStatusClosed: {domain.TicketStatusOpen},
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	policy     workload.Policy
	now        func() time.Time
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Policy     workload.Policy
	Now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	svc := &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		policy:     deps.Policy,
		now:        deps.Now,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject                 string
	Description             string
	Priority                domain.TicketPriority
	Category                domain.TicketCategory
	Tags                    []string
	Reporter                domain.Reporter
	AssignedTo              *string
	DueDate                 *time.Time
	EstimatedResolutionTime *float64
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	AssignedTo    *string
	ReporterEmail *string
	Statuses      []domain.TicketStatus
	Priorities    []domain.TicketPriority
	Categories    []domain.TicketCategory
	SearchTerm    *string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	SLAState      *workload.SLAState
	Limit         int
	Offset        int
}

// TicketSLACounts tallies the SLA states across all tickets, resolved ones
// included.
type TicketSLACounts struct {
	Met      int `json:"met"`
	Breached int `json:"breached"`
	AtRisk   int `json:"at_risk"`
	OnTrack  int `json:"on_track"`
	Unknown  int `json:"unknown"`
}

// TicketStats summarizes ticket state for dashboards.
type TicketStats struct {
	StatusCounts      map[domain.TicketStatus]int `json:"status_counts"`
	SLACounts         TicketSLACounts             `json:"sla"`
	AvgResolutionTime float64                     `json:"avg_resolution_time"`
}

// CreateTicket validates input, applies SLA defaults and persists the ticket.
func (s *TicketService) CreateTicket(ctx context.Context, actorID string, input TicketCreateInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, apperrors.NewValidationError("ticket subject is required", nil)
	}
	if input.Reporter.Email == "" {
		return nil, apperrors.NewValidationError("reporter email is required", nil)
	}
	if _, err := mail.ParseAddress(input.Reporter.Email); err != nil {
		return nil, apperrors.NewValidationError("invalid reporter email", nil)
	}

	ticket := &domain.Ticket{
		Number:                  generateTicketNumber(),
		Subject:                 subject,
		Description:             strings.TrimSpace(input.Description),
		Status:                  domain.TicketStatusOpen,
		Priority:                input.Priority,
		Category:                input.Category,
		Tags:                    input.Tags,
		Reporter:                input.Reporter,
		DueDate:                 input.DueDate,
		EstimatedResolutionTime: input.EstimatedResolutionTime,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Category == "" {
		ticket.Category = domain.TicketCategoryOther
	}

	// SLA defaulting: only when neither a due date nor an estimate was given.
	if ticket.DueDate == nil && ticket.EstimatedResolutionTime == nil {
		hours := slaHoursByPriority[ticket.Priority]
		if hours == 0 {
			hours = slaHoursByPriority[domain.TicketPriorityMedium]
		}
		due := s.now().Add(time.Duration(hours * float64(time.Hour)))
		ticket.DueDate = &due
		ticket.EstimatedResolutionTime = &hours
	}

	if input.AssignedTo != nil {
		if _, err := s.users.GetByID(ctx, *input.AssignedTo); err != nil {
			return nil, apperrors.MapError(err)
		}
		now := s.now()
		ticket.AssignedTo = input.AssignedTo
		ticket.AssignedBy = &actorID
		ticket.AssignedAt = &now
		ticket.Status = domain.TicketStatusAssigned
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, actorID, events.EventTicketCreated, events.TicketCreatedPayload{
		TicketID:      ticket.ID,
		Number:        ticket.Number,
		Subject:       ticket.Subject,
		Priority:      ticket.Priority,
		Status:        ticket.Status,
		ReporterEmail: ticket.Reporter.Email,
		AssignedTo:    ticket.AssignedTo,
	})
	return ticket, nil
}

// GetTicket fetches a ticket by ID.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// GetTicketByNumber fetches a ticket by its human-facing number.
func (s *TicketService) GetTicketByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns tickets matching the filter. When an SLA state is
// requested the classification runs in-process after the fetch.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		AssignedTo:    filter.AssignedTo,
		ReporterEmail: filter.ReporterEmail,
		Statuses:      filter.Statuses,
		Priorities:    filter.Priorities,
		Categories:    filter.Categories,
		SearchTerm:    filter.SearchTerm,
		CreatedFrom:   filter.CreatedFrom,
		CreatedTo:     filter.CreatedTo,
		Limit:         filter.Limit,
		Offset:        filter.Offset,
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if filter.SLAState == nil {
		return tickets, nil
	}

	now := s.now()
	filtered := make([]domain.Ticket, 0, len(tickets))
	for i := range tickets {
		if workload.ClassifySLA(&tickets[i], now, s.policy) == *filter.SLAState {
			filtered = append(filtered, tickets[i])
		}
	}
	return filtered, nil
}

// TicketUpdateInput carries the mutable descriptive fields. Nil fields are
// left untouched; identity, timestamps and workflow state have their own
// operations.
type TicketUpdateInput struct {
	Subject     *string
	Description *string
	Priority    *domain.TicketPriority
	Category    *domain.TicketCategory
	Tags        []string
	DueDate     *time.Time
}

// UpdateTicket applies descriptive edits to a ticket.
func (s *TicketService) UpdateTicket(ctx context.Context, actorID, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Subject != nil {
		subject := strings.TrimSpace(*input.Subject)
		if subject == "" {
			return nil, apperrors.NewValidationError("ticket subject must not be blank", nil)
		}
		ticket.Subject = subject
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.Category != nil {
		ticket.Category = *input.Category
	}
	if input.Tags != nil {
		ticket.Tags = input.Tags
	}
	if input.DueDate != nil {
		ticket.DueDate = input.DueDate
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// AssignTicket assigns the ticket to a user and moves it to assigned.
func (s *TicketService) AssignTicket(ctx context.Context, ticketID, userID, assignedBy string) (*domain.Ticket, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, apperrors.MapError(err)
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Status == domain.TicketStatusResolved || ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket is no longer active", nil)
	}

	now := s.now()
	ticket.AssignedTo = &userID
	ticket.AssignedBy = &assignedBy
	ticket.AssignedAt = &now
	ticket.Status = domain.TicketStatusAssigned
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, assignedBy, events.EventTicketAssigned, events.TicketAssignedPayload{
		TicketID:   ticket.ID,
		Number:     ticket.Number,
		Subject:    ticket.Subject,
		Priority:   ticket.Priority,
		AssignedTo: userID,
		AssignedBy: assignedBy,
	})
	return ticket, nil
}

// UpdateStatus moves a ticket along the allowed transition table.
func (s *TicketService) UpdateStatus(ctx context.Context, actorID, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !isValidTicketTransition(ticket.Status, newStatus) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid status transition from %s to %s", ticket.Status, newStatus), nil)
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusOpen {
		// reopening clears resolution state
		ticket.ResolvedBy = nil
		ticket.ResolvedAt = nil
		ticket.ActualResolutionTime = nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, actorID, events.EventTicketStatusChanged, events.TicketStatusChangedPayload{
		TicketID:  ticket.ID,
		Number:    ticket.Number,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	})
	return ticket, nil
}

// ResolveTicket marks the ticket resolved and records the actual resolution
// time in whole hours from creation.
func (s *TicketService) ResolveTicket(ctx context.Context, ticketID, resolvedBy, notes string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Status == domain.TicketStatusResolved || ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("ticket already resolved", nil)
	}

	now := s.now()
	hours := math.Round(now.Sub(ticket.CreatedAt).Hours())
	ticket.Status = domain.TicketStatusResolved
	ticket.ResolvedBy = &resolvedBy
	ticket.ResolvedAt = &now
	ticket.ResolutionNotes = strings.TrimSpace(notes)
	ticket.ActualResolutionTime = &hours
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, resolvedBy, events.EventTicketResolved, events.TicketResolvedPayload{
		TicketID:        ticket.ID,
		Number:          ticket.Number,
		ResolvedBy:      resolvedBy,
		ResolutionHours: hours,
		ResolutionNotes: ticket.ResolutionNotes,
	})
	return ticket, nil
}

// DeleteTicket soft-deletes a ticket.
func (s *TicketService) DeleteTicket(ctx context.Context, ticketID string, deletedBy *string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.tickets.SoftDelete(ctx, ticketID, deletedBy); err != nil {
		return apperrors.MapError(err)
	}

	actorID := ""
	if deletedBy != nil {
		actorID = *deletedBy
	}
	s.publishEvent(ctx, actorID, events.EventTicketDeleted, events.TicketDeletedPayload{
		TicketID:  ticket.ID,
		Number:    ticket.Number,
		DeletedBy: deletedBy,
	})
	return nil
}

// Stats aggregates status counts, the average resolution time of resolved
// tickets, and SLA states over the active set.
func (s *TicketService) Stats(ctx context.Context) (*TicketStats, error) {
	counts, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	stats := &TicketStats{StatusCounts: map[domain.TicketStatus]int{
		domain.TicketStatusOpen:       0,
		domain.TicketStatusAssigned:   0,
		domain.TicketStatusInProgress: 0,
		domain.TicketStatusResolved:   0,
		domain.TicketStatusClosed:     0,
	}}
	for _, sc := range counts {
		stats.StatusCounts[sc.Status] = sc.Count
	}

	active, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: domain.ActiveTicketStatuses,
		Limit:    10000,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	for i := range active {
		switch workload.ClassifySLA(&active[i], now, s.policy) {
		case workload.SLABreached:
			stats.SLACounts.Breached++
		case workload.SLAAtRisk:
			stats.SLACounts.AtRisk++
		case workload.SLAOnTrack:
			stats.SLACounts.OnTrack++
		default:
			stats.SLACounts.Unknown++
		}
	}

	resolved, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: []domain.TicketStatus{domain.TicketStatusResolved, domain.TicketStatusClosed},
		Limit:    10000,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	stats.SLACounts.Met = len(resolved)
	var resolvedHours float64
	var resolvedCount int
	for i := range resolved {
		if resolved[i].ActualResolutionTime != nil {
			resolvedHours += *resolved[i].ActualResolutionTime
			resolvedCount++
		}
	}
	if resolvedCount > 0 {
		stats.AvgResolutionTime = math.Round(resolvedHours/float64(resolvedCount)*100) / 100
	}
	return stats, nil
}

func (s *TicketService) publishEvent(ctx context.Context, actorID string, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func generateTicketNumber() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func isValidTicketTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTicketTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
