package workload

import (
	"testing"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func ticketWithDue(status domain.TicketStatus, due *time.Time) *domain.Ticket {
	return &domain.Ticket{
		ID:       "t-1",
		Status:   status,
		Priority: domain.TicketPriorityMedium,
		DueDate:  due,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestClassifySLAResolvedAlwaysMet(t *testing.T) {
	policy := DefaultPolicy()
	pastDue := timePtr(testNow.Add(-48 * time.Hour))

	cases := []struct {
		name   string
		status domain.TicketStatus
		due    *time.Time
	}{
		{"resolved with past due date", domain.TicketStatusResolved, pastDue},
		{"closed with past due date", domain.TicketStatusClosed, pastDue},
		{"resolved without due date", domain.TicketStatusResolved, nil},
		{"closed without due date", domain.TicketStatusClosed, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifySLA(ticketWithDue(tc.status, tc.due), testNow, policy); got != SLAMet {
				t.Fatalf("got %q, want %q", got, SLAMet)
			}
		})
	}
}

func TestClassifySLAActiveStates(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		name string
		due  *time.Time
		want SLAState
	}{
		{"no due date", nil, SLAUnknown},
		{"due 1ms ago", timePtr(testNow.Add(-time.Millisecond)), SLABreached},
		{"due exactly now", timePtr(testNow), SLAAtRisk},
		{"due in 4h minus 1ms", timePtr(testNow.Add(4*time.Hour - time.Millisecond)), SLAAtRisk},
		{"due in exactly 4h", timePtr(testNow.Add(4 * time.Hour)), SLAOnTrack},
		{"due next week", timePtr(testNow.Add(7 * 24 * time.Hour)), SLAOnTrack},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket := ticketWithDue(domain.TicketStatusOpen, tc.due)
			if got := ClassifySLA(ticket, testNow, policy); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestClassifySLAHonorsPolicyWindow(t *testing.T) {
	policy := DefaultPolicy()
	policy.AtRiskWindow = 8 * time.Hour

	ticket := ticketWithDue(domain.TicketStatusOpen, timePtr(testNow.Add(6*time.Hour)))
	if got := ClassifySLA(ticket, testNow, policy); got != SLAAtRisk {
		t.Fatalf("got %q, want %q with widened window", got, SLAAtRisk)
	}
}
