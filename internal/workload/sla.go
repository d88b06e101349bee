package workload

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SLAState is the derived deadline-risk classification of a ticket. It is
// computed at read time from (status, due date, now) and never persisted.
type SLAState string

const (
	SLAMet      SLAState = "met"
	SLABreached SLAState = "breached"
	SLAAtRisk   SLAState = "at_risk"
	SLAOnTrack  SLAState = "on_track"
	SLAUnknown  SLAState = "unknown"
)

// ClassifySLA maps a ticket to its SLA state as of now. Resolved and closed
// tickets are always met, regardless of due date.
func ClassifySLA(ticket *domain.Ticket, now time.Time, policy Policy) SLAState {
	if ticket.Status == domain.TicketStatusResolved || ticket.Status == domain.TicketStatusClosed {
		return SLAMet
	}
	if ticket.DueDate == nil {
		return SLAUnknown
	}
	remaining := ticket.DueDate.Sub(now)
	switch {
	case remaining < 0:
		return SLABreached
	case remaining < policy.AtRiskWindow:
		return SLAAtRisk
	default:
		return SLAOnTrack
	}
}
